package shop

import (
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AccountResponse is the body returned by every account endpoint.
// Token is only present after a successful login, Status after a
// successful email confirmation.
type AccountResponse struct {
	Result bool     `json:"result"`
	Errors []string `json:"errors,omitempty"`
	Token  string   `json:"token,omitempty"`
	Status string   `json:"status,omitempty"`
}

func RegisterAccountRoutes[T any](app router.Router[T], opts ...AccountControllerOption) {
	controller := NewAccountController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("account.register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("account.login.post")

	app.Get(controller.Routes.ConfirmEmail, controller.ConfirmEmailGet).
		SetName("account.confirm-email.get")
}

type AccountControllerRoutes struct {
	Register     string
	Login        string
	ConfirmEmail string
}

type AccountController struct {
	Debug  bool
	Logger Logger
	Store  CredentialStore
	Auther Authenticator
	Mailer *ConfirmationMailer
	Routes *AccountControllerRoutes
}

type AccountControllerOption func(*AccountController) *AccountController

func NewAccountController(opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger: defLogger{},
		Routes: &AccountControllerRoutes{
			Register:     "/Register",
			Login:        "/Login",
			ConfirmEmail: "/ConfirmEmail",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing CredentialStore in account controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in account controller...")
	}

	if c.Mailer == nil {
		panic("Missing ConfirmationMailer in account controller...")
	}

	return c
}

func WithControllerStore(store CredentialStore) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Store = store
		return c
	}
}

func WithControllerAuthenticator(auther Authenticator) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Auther = auther
		return c
	}
}

func WithControllerMailer(mailer *ConfirmationMailer) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Mailer = mailer
		return c
	}
}

func WithControllerLogger(logger Logger) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerDebug(debug bool) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Debug = debug
		return c
	}
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AccountController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload: ", "error", err)
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: []string{"failed to parse request body"},
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload: ", "error", err)
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: FormatValidationErrors(err),
		})
	}

	if a.Debug {
		fmt.Println("======= ACCOUNT REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===============================")
	}

	var res *RegisterAccountResponse

	req := RegisterAccountMessage{
		Email:    payload.Email,
		Password: payload.Password,
		OnResponse: func(resp *RegisterAccountResponse) {
			res = resp
		},
	}

	handler := NewRegisterAccountHandler(a.Store, a.Mailer).WithLogger(a.Logger)
	if err := handler.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("register execute: ", "error", err)
		return ctx.JSON(http.StatusInternalServerError, AccountResponse{
			Errors: []string{"registration failed"},
		})
	}

	if !res.Success {
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: res.Errors,
		})
	}

	return ctx.JSON(http.StatusOK, AccountResponse{Result: true})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AccountController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: ", "error", err)
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: []string{"failed to parse request body"},
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: FormatValidationErrors(err),
		})
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login rejected", "email", payload.Email, "error", err)

		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category != errors.CategoryInternal {
			return ctx.JSON(http.StatusBadRequest, AccountResponse{
				Errors: []string{richErr.Message},
			})
		}

		return ctx.JSON(http.StatusInternalServerError, AccountResponse{
			Errors: []string{"login failed"},
		})
	}

	return ctx.JSON(http.StatusOK, AccountResponse{
		Result: true,
		Token:  token,
	})
}

func (a *AccountController) ConfirmEmailGet(ctx router.Context) error {
	userID := ctx.Query("userId", "")
	code := ctx.Query("code", "")

	var res *ConfirmEmailResponse

	req := ConfirmEmailMessage{
		UserID: userID,
		Code:   code,
		OnResponse: func(resp *ConfirmEmailResponse) {
			res = resp
		},
	}

	handler := NewConfirmEmailHandler(a.Store).WithLogger(a.Logger)
	if err := handler.Execute(ctx.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidLink) {
			return ctx.JSON(http.StatusBadRequest, AccountResponse{
				Errors: []string{ErrInvalidLink.Message},
			})
		}

		a.Logger.Error("confirm email execute: ", "error", err)
		return ctx.JSON(http.StatusInternalServerError, AccountResponse{
			Errors: []string{"email confirmation failed"},
		})
	}

	if !res.Found {
		return ctx.JSON(http.StatusNotFound, AccountResponse{
			Errors: []string{ErrAccountNotFound.Message},
		})
	}

	if !res.Confirmed {
		return ctx.JSON(http.StatusBadRequest, AccountResponse{
			Errors: []string{res.Status},
		})
	}

	return ctx.JSON(http.StatusOK, AccountResponse{
		Result: true,
		Status: res.Status,
	})
}

// FormatValidationErrors flattens ozzo validation errors into a stable,
// field-prefixed list.
func FormatValidationErrors(err error) []string {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(verrs))
	for _, field := range fields {
		out = append(out, fmt.Sprintf("%s: %s", field, verrs[field].Error()))
	}
	return out
}
