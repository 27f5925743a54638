package shop

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore is the subsystem of record for user identity. It owns
// password hashing, password verification, and confirmation-code issuance
// and redemption. Callers never inspect or re-derive confirmation codes.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	// Create persists a new unconfirmed user. Password-policy violations
	// are returned verbatim alongside ErrCredentialCreation.
	Create(ctx context.Context, email, password string) (*User, []string, error)
	CheckPassword(ctx context.Context, user *User, password string) error
	// GenerateConfirmationCode mints a fresh single-use code for the user,
	// replacing any previously issued one.
	GenerateConfirmationCode(ctx context.Context, user *User) ([]byte, error)
	// ConfirmEmail redeems a code. Succeeds at most once per generation.
	ConfirmEmail(ctx context.Context, user *User, code []byte) error
}

// Authenticator exchanges a verified email/password pair for a signed token
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	TokenIssuer() TokenIssuer
}

// TokenIssuer produces and validates signed bearer tokens
type TokenIssuer interface {
	Issue(user *User) (string, error)
	Validate(token string) (AuthClaims, error)
}

// Mailer dispatches a single message. Implementations must be safe for
// concurrent use; the workflow never retries a failed dispatch.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetContextKey() string
	GetAuthScheme() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SHOP "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SHOP "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SHOP "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SHOP "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
