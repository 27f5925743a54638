package shop

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// ClientsController serves the client book behind the token guard.
type ClientsController struct {
	Debug  bool
	Logger Logger
	Repo   Clients
	Guard  *TokenGuard
}

func NewClientsController(repo Clients, guard *TokenGuard) *ClientsController {
	if repo == nil {
		panic("Missing Clients repository in clients controller...")
	}

	if guard == nil {
		panic("Missing TokenGuard in clients controller...")
	}

	return &ClientsController{
		Logger: defLogger{},
		Repo:   repo,
		Guard:  guard,
	}
}

func (c *ClientsController) WithLogger(logger Logger) *ClientsController {
	if logger != nil {
		c.Logger = logger
	}
	return c
}

func (c *ClientsController) WithDebug(debug bool) *ClientsController {
	c.Debug = debug
	return c
}

// RegisterRoutes mounts the CRUD surface. Every route requires a valid
// bearer token.
func (c *ClientsController) RegisterRoutes(group RouteRegistrar) {
	protected := c.Guard.ProtectedRoute(nil)

	group.Get("/Clients", c.List, protected)
	group.Post("/Clients", c.Create, protected)
	group.Get("/Clients/:id", c.Show, protected)
	group.Put("/Clients/:id", c.Update, protected)
	group.Delete("/Clients/:id", c.Destroy, protected)
}

// ClientPayload is the create/update body.
type ClientPayload struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone_number" json:"phone_number"`
	Address   string `form:"address" json:"address"`
	City      string `form:"city" json:"city"`
	Country   string `form:"country" json:"country"`
}

// Validate will run validation rules
func (r ClientPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Phone, validation.By(ValidatePhoneNumber)),
		validation.Field(&r.Address, validation.Length(0, 500)),
		validation.Field(&r.City, validation.Length(0, 200)),
		validation.Field(&r.Country, validation.Length(0, 200)),
	)
}

func (r ClientPayload) toRecord() *Client {
	record := &Client{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Address:   r.Address,
		City:      r.City,
		Country:   r.Country,
	}

	if r.Phone != "" {
		if num, err := phonenumbers.Parse(r.Phone, "US"); err == nil {
			record.Phone = phonenumbers.Format(num, phonenumbers.E164)
		} else {
			record.Phone = r.Phone
		}
	}

	return record
}

func (c *ClientsController) List(ctx router.Context) error {
	records, err := c.Repo.List(ctx.Context())
	if err != nil {
		c.Logger.Error("client list error: ", "error", err)
		return ctx.JSON(http.StatusInternalServerError, map[string]any{
			"result": false,
			"errors": []string{"failed to list clients"},
		})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"result":  true,
		"clients": records,
	})
}

func (c *ClientsController) Show(ctx router.Context) error {
	id, err := c.clientID(ctx)
	if err != nil {
		return c.badRequest(ctx, "invalid client id")
	}

	record, err := c.Repo.GetByID(ctx.Context(), id.String())
	if err != nil {
		return c.repoError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"result": true,
		"client": record,
	})
}

func (c *ClientsController) Create(ctx router.Context) error {
	payload := new(ClientPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("client create parse payload: ", "error", err)
		return c.badRequest(ctx, "failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"result": false,
			"errors": FormatValidationErrors(err),
		})
	}

	if c.Debug {
		fmt.Println("======= CLIENT CREATE ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	record, err := c.Repo.Create(ctx.Context(), payload.toRecord())
	if err != nil {
		return c.repoError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"result": true,
		"client": record,
	})
}

func (c *ClientsController) Update(ctx router.Context) error {
	id, err := c.clientID(ctx)
	if err != nil {
		return c.badRequest(ctx, "invalid client id")
	}

	payload := new(ClientPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("client update parse payload: ", "error", err)
		return c.badRequest(ctx, "failed to parse request body")
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]any{
			"result": false,
			"errors": FormatValidationErrors(err),
		})
	}

	record := payload.toRecord()
	record.ID = id

	updated, err := c.Repo.Update(ctx.Context(), record, repository.UpdateByID(id.String()))
	if err != nil {
		return c.repoError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"result": true,
		"client": updated,
	})
}

func (c *ClientsController) Destroy(ctx router.Context) error {
	id, err := c.clientID(ctx)
	if err != nil {
		return c.badRequest(ctx, "invalid client id")
	}

	if err := c.Repo.DeleteByID(ctx.Context(), id); err != nil {
		return c.repoError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (c *ClientsController) clientID(ctx router.Context) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param("id", ""))
}

func (c *ClientsController) badRequest(ctx router.Context, msg string) error {
	return ctx.JSON(http.StatusBadRequest, map[string]any{
		"result": false,
		"errors": []string{msg},
	})
}

func (c *ClientsController) repoError(ctx router.Context, err error) error {
	if repository.IsRecordNotFound(err) || goerrors.IsNotFound(err) {
		return ctx.JSON(http.StatusNotFound, map[string]any{
			"result": false,
			"errors": []string{"client not found"},
		})
	}

	c.Logger.Error("client repo error: ", "error", err)
	return ctx.JSON(http.StatusInternalServerError, map[string]any{
		"result": false,
		"errors": []string{"client operation failed"},
	})
}

// ValidatePhoneNumber accepts empty values and otherwise requires a
// parseable, valid number.
func ValidatePhoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "US")
	if err != nil {
		return fmt.Errorf("must be a valid phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("must be a valid phone number")
	}

	return nil
}
