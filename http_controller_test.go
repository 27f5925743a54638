package shop_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-shop"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAccountController(t *testing.T, store shop.CredentialStore) *shop.AccountController {
	t.Helper()

	return shop.NewAccountController(
		shop.WithControllerStore(store),
		shop.WithControllerAuthenticator(new(MockAuthenticator)),
		shop.WithControllerMailer(makeConfirmationMailer(t, new(MockMailer))),
		shop.WithControllerLogger(testLogger{}),
	)
}

func TestNewAccountController_RequiresCollaborators(t *testing.T) {
	store := new(MockCredentialStore)
	auther := new(MockAuthenticator)
	mailer := makeConfirmationMailer(t, new(MockMailer))

	assert.Panics(t, func() {
		shop.NewAccountController(
			shop.WithControllerAuthenticator(auther),
			shop.WithControllerMailer(mailer),
		)
	})

	assert.Panics(t, func() {
		shop.NewAccountController(
			shop.WithControllerStore(store),
			shop.WithControllerMailer(mailer),
		)
	})

	assert.Panics(t, func() {
		shop.NewAccountController(
			shop.WithControllerStore(store),
			shop.WithControllerAuthenticator(auther),
		)
	})

	assert.NotPanics(t, func() {
		shop.NewAccountController(
			shop.WithControllerStore(store),
			shop.WithControllerAuthenticator(auther),
			shop.WithControllerMailer(mailer),
		)
	})
}

func TestConfirmEmailGet_SuccessIncludesStatus(t *testing.T) {
	store := new(MockCredentialStore)

	user := &shop.User{ID: uuid.New(), Email: "peter@example.com"}
	code := []byte("0123456789abcdef0123456789abcdef")

	store.On("FindByID", mock.Anything, user.ID.String()).Return(user, nil)
	store.On("ConfirmEmail", mock.Anything, user, code).Return(nil)

	controller := newTestAccountController(t, store)

	ctx := router.NewMockContext()
	ctx.QueriesM["userId"] = user.ID.String()
	ctx.QueriesM["code"] = shop.EncodeConfirmationCode(code)
	ctx.On("Context").Return(context.Background())

	var resp shop.AccountResponse
	ctx.On("JSON", http.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		resp = args.Get(1).(shop.AccountResponse)
	}).Return(nil)

	require.NoError(t, controller.ConfirmEmailGet(ctx))

	assert.True(t, resp.Result)
	assert.Equal(t, "email address confirmed", resp.Status)
	assert.Empty(t, resp.Errors)
	ctx.AssertExpectations(t)
}

func TestConfirmEmailGet_InvalidLink(t *testing.T) {
	store := new(MockCredentialStore)
	controller := newTestAccountController(t, store)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())

	var resp shop.AccountResponse
	ctx.On("JSON", http.StatusBadRequest, mock.Anything).Run(func(args mock.Arguments) {
		resp = args.Get(1).(shop.AccountResponse)
	}).Return(nil)

	require.NoError(t, controller.ConfirmEmailGet(ctx))

	assert.False(t, resp.Result)
	assert.Empty(t, resp.Status)
	assert.Contains(t, resp.Errors, shop.ErrInvalidLink.Message)
	store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload shop.RegisterRequest
		wantErr bool
	}{
		{"valid", shop.RegisterRequest{Email: "peter@example.com", Password: "Sup3rSecret"}, false},
		{"missing email", shop.RegisterRequest{Password: "Sup3rSecret"}, true},
		{"bad email", shop.RegisterRequest{Email: "not-an-email", Password: "Sup3rSecret"}, true},
		{"missing password", shop.RegisterRequest{Email: "peter@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := shop.LoginRequest{Email: "peter@example.com", Password: "Sup3rSecret"}
	assert.NoError(t, valid.Validate())

	invalid := shop.LoginRequest{Email: "nope"}
	assert.Error(t, invalid.Validate())
}

func TestClientPayload_Validate(t *testing.T) {
	valid := shop.ClientPayload{
		FirstName: "Petra",
		LastName:  "Example",
		Email:     "petra@example.com",
		Phone:     "+12025550123",
	}
	assert.NoError(t, valid.Validate())

	noPhone := valid
	noPhone.Phone = ""
	assert.NoError(t, noPhone.Validate())

	badPhone := valid
	badPhone.Phone = "not-a-phone"
	assert.Error(t, badPhone.Validate())

	missingName := valid
	missingName.FirstName = ""
	assert.Error(t, missingName.Validate())
}

func TestFormatValidationErrors(t *testing.T) {
	assert.Nil(t, shop.FormatValidationErrors(nil))

	payload := shop.RegisterRequest{}
	err := payload.Validate()
	require.Error(t, err)

	out := shop.FormatValidationErrors(err)
	require.Len(t, out, 2)

	// stable field order
	assert.Contains(t, out[0], "email:")
	assert.Contains(t, out[1], "password:")
}
