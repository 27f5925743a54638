package shop

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type RegisterAccountMessage struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	OnResponse func(*RegisterAccountResponse)
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

type RegisterAccountResponse struct {
	Success bool     `json:"result"`
	UserID  string   `json:"user_id,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RegisterAccountHandler creates an unconfirmed account and dispatches the
// confirmation email. A dispatch failure is logged but does not roll back
// the account: the code stays on record and a fresh registration attempt
// from the user surfaces the duplicate-email error instead of losing data.
type RegisterAccountHandler struct {
	store  CredentialStore
	mail   *ConfirmationMailer
	logger Logger
}

func NewRegisterAccountHandler(store CredentialStore, mail *ConfirmationMailer) *RegisterAccountHandler {
	return &RegisterAccountHandler{
		store:  store,
		mail:   mail,
		logger: defLogger{},
	}
}

func (h *RegisterAccountHandler) WithLogger(logger Logger) *RegisterAccountHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) error {
	resp := &RegisterAccountResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	email := strings.TrimSpace(event.Email)
	if email == "" || event.Password == "" {
		resp.Errors = append(resp.Errors, "email and password are required")
		h.respond(event, resp)
		return nil
	}

	if _, err := h.store.FindByEmail(ctx, email); err == nil {
		// The message does not reveal whether the existing account is confirmed.
		resp.Errors = append(resp.Errors, ErrDuplicateEmail.Message)
		h.respond(event, resp)
		return nil
	} else if !goerrors.IsNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing account")
	}

	user, violations, err := h.store.Create(ctx, email, event.Password)
	if err != nil {
		if goerrors.Is(err, ErrCredentialCreation) {
			resp.Errors = append(resp.Errors, violations...)
			h.respond(event, resp)
			return nil
		}
		// A concurrent registration can slip in between the lookup above
		// and the insert. Report it as a duplicate, not a server error.
		if goerrors.Is(err, ErrDuplicateEmail) {
			resp.Errors = append(resp.Errors, ErrDuplicateEmail.Message)
			h.respond(event, resp)
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create account")
	}

	code, err := h.store.GenerateConfirmationCode(ctx, user)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate confirmation code")
	}

	if err := h.mail.SendConfirmation(ctx, user, EncodeConfirmationCode(code)); err != nil {
		h.logger.Warn("confirmation mail dispatch failed",
			"user_id", user.ID.String(),
			"error", err,
		)
	}

	resp.Success = true
	resp.UserID = user.ID.String()
	h.respond(event, resp)

	return nil
}

func (h *RegisterAccountHandler) respond(event RegisterAccountMessage, resp *RegisterAccountResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}
