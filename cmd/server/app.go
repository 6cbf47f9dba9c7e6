package main

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/bankbot/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/bankbot/internal/ports"
	"github.com/seu-repo/bankbot/pkg/config"
)

type appDeps struct {
	cfg    *config.Config
	dialog ports.DialogService
	store  ports.AccountStore
	checks map[string]handlers.Pinger
	log    *zap.Logger
}

func newApp(d appDeps) *fiber.App {
	cfg := d.cfg

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(d.log),
	})

	app.Use(recover.New())
	if cfg.App.Environment != "test" {
		app.Use(fiberlogger.New())
	}
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	health := handlers.NewHealthHandler(d.checks, d.log)
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)

	if cfg.Prometheus.Enabled {
		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	v1 := app.Group("/api/v1", middleware.CallerAuth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience))
	if cfg.CircuitBreaker.Enabled {
		v1.Use(middleware.CircuitBreaker(middleware.BreakerSettings{
			Name:             "api-v1",
			MaxRequests:      uint32(cfg.CircuitBreaker.MaxRequests),
			Interval:         cfg.CircuitBreaker.Interval,
			Timeout:          cfg.CircuitBreaker.Timeout,
			MinRequests:      uint32(cfg.CircuitBreaker.MinRequests),
			FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
		}, d.log))
	}

	dialogHandler := handlers.NewDialogHandler(d.dialog, d.log)
	v1.Post("/dialog", dialogHandler.Handle)

	accountHandler := handlers.NewAccountHandler(d.store, d.log)
	v1.Get("/accounts/:userId", accountHandler.Get)
	v1.Post("/accounts/:userId/:accountType/adjust", accountHandler.Adjust)

	return app
}
