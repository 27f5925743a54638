package shop_test

import (
	"context"

	"github.com/goliatone/go-shop"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore implements shop.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*shop.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*shop.User)
	return user, args.Error(1)
}

func (m *MockCredentialStore) FindByID(ctx context.Context, id string) (*shop.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*shop.User)
	return user, args.Error(1)
}

func (m *MockCredentialStore) Create(ctx context.Context, email, password string) (*shop.User, []string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*shop.User)
	violations, _ := args.Get(1).([]string)
	return user, violations, args.Error(2)
}

func (m *MockCredentialStore) CheckPassword(ctx context.Context, user *shop.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockCredentialStore) GenerateConfirmationCode(ctx context.Context, user *shop.User) ([]byte, error) {
	args := m.Called(ctx, user)
	code, _ := args.Get(0).([]byte)
	return code, args.Error(1)
}

func (m *MockCredentialStore) ConfirmEmail(ctx context.Context, user *shop.User, code []byte) error {
	args := m.Called(ctx, user, code)
	return args.Error(0)
}

// MockTokenIssuer implements shop.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *shop.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Validate(token string) (shop.AuthClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(shop.AuthClaims)
	return claims, args.Error(1)
}

// MockAuthenticator implements shop.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) TokenIssuer() shop.TokenIssuer {
	args := m.Called()
	issuer, _ := args.Get(0).(shop.TokenIssuer)
	return issuer
}

// MockMailer implements shop.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// testLogger swallows output during tests
type testLogger struct{}

func (testLogger) Debug(format string, args ...any) {}
func (testLogger) Info(format string, args ...any)  {}
func (testLogger) Warn(format string, args ...any)  {}
func (testLogger) Error(format string, args ...any) {}
