package shop

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther authenticates credentials and issues bearer tokens
type Auther struct {
	store  CredentialStore
	issuer TokenIssuer
	logger Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(store CredentialStore, issuer TokenIssuer) *Auther {
	return &Auther{
		store:  store,
		issuer: issuer,
		logger: defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenIssuer returns the TokenIssuer instance used by this Auther
func (s *Auther) TokenIssuer() TokenIssuer {
	return s.issuer
}

// Login verifies the email/password pair and returns a signed token. Each
// check returns before token issuance; a token can never be produced for a
// failed check. Unknown email and wrong password collapse into the same
// error so callers cannot probe which addresses are registered.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login lookup error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return "", ErrEmailNotConfirmed
	}

	if err := s.store.CheckPassword(ctx, user, password); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login password check error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to verify password")
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", err
	}

	return token, nil
}
