package shop

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// TokenGuard protects routes by requiring a signed bearer token in the
// Authorization header. Validated claims are stored in request locals
// under the configured context key.
type TokenGuard struct {
	issuer       TokenIssuer
	contextKey   string
	authScheme   string
	Logger       Logger
	ErrorHandler func(c router.Context, err error) error
}

func NewTokenGuard(issuer TokenIssuer, cfg Config) *TokenGuard {
	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = "user"
	}

	authScheme := cfg.GetAuthScheme()
	if authScheme == "" {
		authScheme = "Bearer"
	}

	g := &TokenGuard{
		issuer:     issuer,
		contextKey: contextKey,
		authScheme: authScheme,
		Logger:     defLogger{},
	}

	g.ErrorHandler = g.defaultErrHandler

	return g
}

func (g *TokenGuard) ContextKey() string {
	return g.contextKey
}

func (g *TokenGuard) ProtectedRoute(errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = g.ErrorHandler
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			token, err := g.tokenFromHeader(ctx)
			if err != nil {
				return errorHandler(ctx, err)
			}

			claims, err := g.issuer.Validate(token)
			if err != nil {
				return errorHandler(ctx, err)
			}

			ctx.Locals(g.contextKey, claims)

			return hf(ctx)
		}
	}
}

func (g *TokenGuard) tokenFromHeader(ctx router.Context) (string, error) {
	header := ctx.Header("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header", errors.CategoryAuth).
			WithTextCode("MISSING_AUTH_HEADER").
			WithCode(errors.CodeUnauthorized)
	}

	prefix := g.authScheme + " "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", errors.New("malformed authorization header", errors.CategoryAuth).
			WithTextCode("MALFORMED_AUTH_HEADER").
			WithCode(errors.CodeUnauthorized)
	}

	return header[len(prefix):], nil
}

// ClaimsFromContext retrieves previously validated claims, nil if the
// guard did not run for this request.
func ClaimsFromContext(ctx router.Context, contextKey string) AuthClaims {
	claims, ok := ctx.Locals(contextKey).(AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

func (g *TokenGuard) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error

	if IsTokenExpiredError(err) {
		richErr = ErrTokenExpired
	} else if IsMalformedError(err) {
		richErr = ErrTokenMalformed
	} else if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "invalid authentication token").
			WithCode(errors.CodeUnauthorized)
	}

	g.Logger.Info(
		"Rejected request",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
	)

	return c.JSON(http.StatusUnauthorized, map[string]any{
		"result": false,
		"errors": []string{richErr.Message},
	})
}
