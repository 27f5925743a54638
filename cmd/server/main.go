package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-shop"
	"github.com/goliatone/go-shop/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   shop.RepositoryManager
	store  shop.CredentialStore
	auth   shop.Authenticator
	mailer *shop.ConfirmationMailer
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("app"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(config.Default()).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	if err := cfg.Raw().Validate(); err != nil {
		panic(err)
	}

	if cfg.Raw().GetDebug() {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
		fmt.Println("============")
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithAuth(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	app.srv.Serve(app.Config().GetServer().GetAddr())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		return err
	}

	bunDB, err := shop.NewPersistence(ctx, app.Config().GetPersistence(), db, app.GetLogger("persistence"))
	if err != nil {
		return err
	}

	repo := shop.NewRepositoryManager(bunDB)
	if err := repo.Validate(); err != nil {
		return err
	}

	app.bunDB = bunDB
	app.repo = repo

	return nil
}

func WithAuth(ctx context.Context, app *App) error {
	authCfg := app.Config().GetAuth()

	store := shop.NewCredentialStore(
		app.repo,
		shop.WithCredentialLogger(app.GetLogger("auth:store")),
	)

	issuer := shop.NewTokenIssuer(
		[]byte(authCfg.GetSigningKey()),
		authCfg.GetTokenExpiration(),
		authCfg.GetIssuer(),
		authCfg.GetAudience(),
		app.GetLogger("auth:issuer"),
	)

	mailerCfg := app.Config().GetMailer()

	var mailer shop.Mailer
	if mailerCfg.GetEnabled() {
		mailer = shop.NewSMTPMailer(
			mailerCfg.GetHost(),
			mailerCfg.GetPort(),
			mailerCfg.GetUsername(),
			mailerCfg.GetPassword(),
			mailerCfg.GetFrom(),
		)
	} else {
		mailer = shop.NewLogMailer(app.GetLogger("mailer"))
	}

	renderer, err := shop.NewMailRenderer()
	if err != nil {
		return err
	}

	app.store = store
	app.auth = shop.NewAuthenticator(store, issuer).
		WithLogger(app.GetLogger("auth"))
	app.mailer = shop.NewConfirmationMailer(mailer, renderer, mailerCfg.GetBaseURL())

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: app.Config().GetDebug(),
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	shop.RegisterAccountRoutes(
		srv.Router(),
		shop.WithControllerStore(app.store),
		shop.WithControllerAuthenticator(app.auth),
		shop.WithControllerMailer(app.mailer),
		shop.WithControllerLogger(app.GetLogger("http:account")),
		shop.WithControllerDebug(app.Config().GetDebug()),
	)

	guard := shop.NewTokenGuard(app.auth.TokenIssuer(), app.Config().GetAuth())
	guard.Logger = app.GetLogger("http:guard")

	clients := shop.NewClientsController(app.repo.Clients(), guard).
		WithLogger(app.GetLogger("http:clients")).
		WithDebug(app.Config().GetDebug())

	clients.RegisterRoutes(srv.Router())

	app.srv = srv

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
