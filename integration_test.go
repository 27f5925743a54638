package shop_test

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingMailer keeps dispatched messages in memory
type capturingMailer struct {
	bodies []string
}

func (m *capturingMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.bodies = append(m.bodies, htmlBody)
	return nil
}

var linkPattern = regexp.MustCompile(`http://[^"'\s<]+`)

func (m *capturingMailer) lastConfirmationLink(t *testing.T) *url.URL {
	t.Helper()

	require.NotEmpty(t, m.bodies)

	raw := linkPattern.FindString(m.bodies[len(m.bodies)-1])
	require.NotEmpty(t, raw)

	parsed, err := url.Parse(strings.ReplaceAll(raw, "&amp;", "&"))
	require.NoError(t, err)

	return parsed
}

func TestAccountWorkflow_EndToEnd(t *testing.T) {
	ctx := context.Background()

	repo := shop.NewRepositoryManager(setupTestDB(t))
	require.NoError(t, repo.Validate())

	store := shop.NewCredentialStore(repo, shop.WithCredentialLogger(testLogger{}))
	issuer := shop.NewTokenIssuer(testSigningKey, 1, "go-shop", jwt.ClaimStrings{"go-shop"}, testLogger{})
	auther := shop.NewAuthenticator(store, issuer).WithLogger(testLogger{})

	mailer := &capturingMailer{}

	renderer, err := shop.NewMailRenderer()
	require.NoError(t, err)

	confirmation := shop.NewConfirmationMailer(mailer, renderer, "http://localhost:8080")

	email := "peter@example.com"
	password := "Sup3rSecret"

	// register
	var regResp *shop.RegisterAccountResponse
	register := shop.NewRegisterAccountHandler(store, confirmation).WithLogger(testLogger{})
	require.NoError(t, register.Execute(ctx, shop.RegisterAccountMessage{
		Email:    email,
		Password: password,
		OnResponse: func(r *shop.RegisterAccountResponse) {
			regResp = r
		},
	}))
	require.NotNil(t, regResp)
	require.True(t, regResp.Success)

	// login is rejected until the email is confirmed
	_, err = auther.Login(ctx, email, password)
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrEmailNotConfirmed)

	// follow the emailed link
	link := mailer.lastConfirmationLink(t)
	assert.Equal(t, "/ConfirmEmail", link.Path)

	var confirmResp *shop.ConfirmEmailResponse
	confirm := shop.NewConfirmEmailHandler(store).WithLogger(testLogger{})
	require.NoError(t, confirm.Execute(ctx, shop.ConfirmEmailMessage{
		UserID: link.Query().Get("userId"),
		Code:   link.Query().Get("code"),
		OnResponse: func(r *shop.ConfirmEmailResponse) {
			confirmResp = r
		},
	}))
	require.NotNil(t, confirmResp)
	assert.True(t, confirmResp.Found)
	assert.True(t, confirmResp.Confirmed)

	// the wrong password still never yields a token
	token, err := auther.Login(ctx, email, "WrongPassword1")
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrInvalidCredentials)
	assert.Empty(t, token)

	// the right password does
	token, err = auther.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, regResp.UserID, claims.UserID())
	assert.Equal(t, email, claims.Email())

	// the link is single use
	var replayResp *shop.ConfirmEmailResponse
	require.NoError(t, confirm.Execute(ctx, shop.ConfirmEmailMessage{
		UserID: link.Query().Get("userId"),
		Code:   link.Query().Get("code"),
		OnResponse: func(r *shop.ConfirmEmailResponse) {
			replayResp = r
		},
	}))
	require.NotNil(t, replayResp)
	assert.True(t, replayResp.Found)
	assert.False(t, replayResp.Confirmed)
}

func TestAccountWorkflow_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()

	repo := shop.NewRepositoryManager(setupTestDB(t))
	store := shop.NewCredentialStore(repo, shop.WithCredentialLogger(testLogger{}))

	mailer := &capturingMailer{}
	renderer, err := shop.NewMailRenderer()
	require.NoError(t, err)

	confirmation := shop.NewConfirmationMailer(mailer, renderer, "http://localhost:8080")
	register := shop.NewRegisterAccountHandler(store, confirmation).WithLogger(testLogger{})

	var first *shop.RegisterAccountResponse
	require.NoError(t, register.Execute(ctx, shop.RegisterAccountMessage{
		Email:    "peter@example.com",
		Password: "Sup3rSecret",
		OnResponse: func(r *shop.RegisterAccountResponse) {
			first = r
		},
	}))
	require.True(t, first.Success)

	var second *shop.RegisterAccountResponse
	require.NoError(t, register.Execute(ctx, shop.RegisterAccountMessage{
		Email:    "peter@example.com",
		Password: "An0therSecret",
		OnResponse: func(r *shop.RegisterAccountResponse) {
			second = r
		},
	}))
	require.NotNil(t, second)
	assert.False(t, second.Success)
	assert.Contains(t, second.Errors, shop.ErrDuplicateEmail.Message)

	// only the first registration produced mail
	assert.Len(t, mailer.bodies, 1)
}
