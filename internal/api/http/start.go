package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/api/http/router"
	"github.com/Alijeyrad/clinic_console/internal/app"
)

// Start runs the mock API until the process is signalled.
func Start(cfg *config.Config, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		fx.NopLogger,
		app.InfraModule,
		app.MockAPIModule,
		router.Module,
		Module,

		// NewServer registers the listen hook, so the app must be requested.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
	).Run()
}
