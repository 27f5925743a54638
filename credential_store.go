package shop

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// credentialStore backs the CredentialStore contract with the users
// repository, bcrypt hashing, and the configured password policy.
type credentialStore struct {
	repo             RepositoryManager
	policy           PasswordPolicy
	logger           Logger
	deterministicIDs bool
}

type CredentialStoreOption func(*credentialStore)

func NewCredentialStore(repo RepositoryManager, opts ...CredentialStoreOption) CredentialStore {
	store := &credentialStore{
		repo:   repo,
		policy: DefaultPasswordPolicy(),
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store
}

func WithPasswordPolicy(policy PasswordPolicy) CredentialStoreOption {
	return func(s *credentialStore) {
		s.policy = policy
	}
}

func WithCredentialLogger(logger Logger) CredentialStoreOption {
	return func(s *credentialStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDeterministicIDs derives user IDs from the email address instead of
// generating random ones. Useful for fixtures and cross-system imports.
func WithDeterministicIDs() CredentialStoreOption {
	return func(s *credentialStore) {
		s.deterministicIDs = true
	}
}

func (s *credentialStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.Users().GetByEmail(ctx, email)
}

func (s *credentialStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.repo.Users().GetByID(ctx, id)
}

func (s *credentialStore) Create(ctx context.Context, email, password string) (*User, []string, error) {
	if violations := s.policy.Validate(password); len(violations) > 0 {
		return nil, violations, ErrCredentialCreation
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
	}

	if s.deterministicIDs {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	created, err := s.repo.Users().Register(ctx, user)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return created, nil, nil
}

func (s *credentialStore) CheckPassword(ctx context.Context, user *User, password string) error {
	if user == nil {
		return ErrMismatchedHashAndPassword
	}
	return ComparePasswordAndHash(password, user.PasswordHash)
}

func (s *credentialStore) GenerateConfirmationCode(ctx context.Context, user *User) ([]byte, error) {
	code, err := NewConfirmationCode()
	if err != nil {
		return nil, err
	}

	encoded := EncodeConfirmationCode(code)
	if err := s.repo.Users().SetConfirmationCode(ctx, user.ID, encoded); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store confirmation code")
	}

	user.ConfirmationHash = encoded

	return code, nil
}

func (s *credentialStore) ConfirmEmail(ctx context.Context, user *User, code []byte) error {
	if user == nil {
		return ErrAccountNotFound
	}

	if len(code) == 0 {
		return ErrInvalidConfirmationCode
	}

	if err := s.repo.Users().RedeemConfirmationCode(ctx, user.ID, EncodeConfirmationCode(code)); err != nil {
		return err
	}

	user.IsEmailVerified = true
	user.ConfirmationHash = ""

	return nil
}
