package shop

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type ConfirmEmailMessage struct {
	UserID     string `json:"user_id"`
	Code       string `json:"code"`
	OnResponse func(*ConfirmEmailResponse)
}

func (e ConfirmEmailMessage) Type() string { return "account.confirm-email" }

type ConfirmEmailResponse struct {
	Found     bool   `json:"found"`
	Confirmed bool   `json:"confirmed"`
	Status    string `json:"status"`
}

// ConfirmEmailHandler redeems a confirmation code for a user. The store is
// authoritative on code validity; this handler only decodes the link
// parameter back into its original byte form.
type ConfirmEmailHandler struct {
	store  CredentialStore
	logger Logger
}

func NewConfirmEmailHandler(store CredentialStore) *ConfirmEmailHandler {
	return &ConfirmEmailHandler{
		store:  store,
		logger: defLogger{},
	}
}

func (h *ConfirmEmailHandler) WithLogger(logger Logger) *ConfirmEmailHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ConfirmEmailHandler) Execute(ctx context.Context, event ConfirmEmailMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled during email confirmation")
	default:
		return h.execute(ctx, event)
	}
}

func (h *ConfirmEmailHandler) execute(ctx context.Context, event ConfirmEmailMessage) error {
	resp := &ConfirmEmailResponse{}

	// Guard before touching the store.
	if strings.TrimSpace(event.UserID) == "" || strings.TrimSpace(event.Code) == "" {
		return ErrInvalidLink
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.store.FindByID(ctx, event.UserID)
	if err != nil {
		if goerrors.IsNotFound(err) {
			resp.Status = "account not found"
			h.respond(event, resp)
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account")
	}

	resp.Found = true

	code, err := DecodeConfirmationCode(event.Code)
	if err != nil {
		return ErrInvalidLink
	}

	if err := h.store.ConfirmEmail(ctx, user, code); err != nil {
		if goerrors.Is(err, ErrInvalidConfirmationCode) {
			resp.Status = "email confirmation failed: invalid or already used code"
			h.respond(event, resp)
			return nil
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to confirm email")
	}

	resp.Confirmed = true
	resp.Status = "email address confirmed"
	h.respond(event, resp)

	return nil
}

func (h *ConfirmEmailHandler) respond(event ConfirmEmailMessage, resp *ConfirmEmailResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}
