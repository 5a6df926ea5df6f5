package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/api/http/handler"
	"github.com/Alijeyrad/clinic_console/internal/api/http/middleware"
	"github.com/Alijeyrad/clinic_console/internal/service/auth"
	"github.com/Alijeyrad/clinic_console/internal/service/clinic"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg       *config.Config
	AuthSvc   auth.Service
	ClinicSvc clinic.Service
	Faults    *middleware.Faults `optional:"true"`
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Middlewares
	if r.p.Faults != nil {
		app.Use(r.p.Faults.Handler())
	}
	authRequired := middleware.AuthRequired(r.p.AuthSvc)

	// 3. Handlers
	authH := handler.NewAuthHandler(r.p.AuthSvc)
	clinicH := handler.NewClinicHandler(r.p.ClinicSvc)

	// 4. Delegate to sub-files
	r.registerAuthRoutes(app, authH, authRequired)
	r.registerClinicRoutes(app, clinicH, authRequired)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
