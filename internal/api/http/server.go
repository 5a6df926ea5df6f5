// Package http is the mock clinic API: a fiber server over the in-memory
// clinic and auth services, used for local development and by tests.
package http

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/api/http/middleware"
	"github.com/Alijeyrad/clinic_console/internal/api/http/router"
	"github.com/Alijeyrad/clinic_console/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Router    *router.Router
	Redis     *redis.Client           `optional:"true"`
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Router, p.Redis, p.OTel != nil)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.MockAPI.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			slog.Info("mock API listening", "addr", addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp assembles the fiber app without binding a port. rdb may be nil.
func NewApp(cfg *config.Config, r *router.Router, rdb *redis.Client, traced bool) *fiber.App {
	app := fiber.New()

	if traced && cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware())
	}

	configureGlobalMiddleware(app, cfg, rdb)

	r.Register(app)

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.MockAPI.RateLimit > 0 {
		app.Use(middleware.NewLimiter(rdb, cfg.MockAPI.RateLimit))
	}

	app.Use(logger.New(logger.Config{
		DisableColors: true,
		Format:        "${ip} - [${time}] [req_id=${respHeader:X-Request-Id}] ${method} ${url} ${status}\n",
	}))
}
