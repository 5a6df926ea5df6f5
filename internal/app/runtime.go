package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/notify"
	"github.com/Alijeyrad/clinic_console/internal/session"
	"github.com/Alijeyrad/clinic_console/internal/views"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

// Runtime is everything a command needs once the graph is started.
type Runtime struct {
	Config    *config.Config
	Logger    *slog.Logger
	Session   *session.Store
	API       *apiclient.Client
	Notifier  notify.Notifier
	Formatter views.Formatter
	Validator *forms.Validator
}

type RuntimeParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Session   *session.Store
	Base      *apiclient.Client
	Notifier  notify.Notifier
	Formatter views.Formatter
}

func NewRuntime(p RuntimeParams) *Runtime {
	return &Runtime{
		Config:    p.Config,
		Logger:    p.Logger,
		Session:   p.Session,
		API:       p.Base.WithTokenSource(p.Session),
		Notifier:  p.Notifier,
		Formatter: p.Formatter,
		Validator: forms.NewValidator(),
	}
}

func (r *Runtime) FormDeps() forms.Deps {
	return forms.Deps{API: r.API, Notifier: r.Notifier, Validator: r.Validator, Logger: r.Logger}
}

func (r *Runtime) ViewDeps() views.Deps {
	return views.Deps{API: r.API, Notifier: r.Notifier, Formatter: r.Formatter, Logger: r.Logger}
}

// Run starts the console graph, hands the runtime to fn and stops the
// graph again, whatever fn returns.
func Run(ctx context.Context, cfg *config.Config, fn func(context.Context, *Runtime) error, extra ...fx.Option) (err error) {
	var rt *Runtime
	opts := append([]fx.Option{
		fx.Supply(cfg),
		fx.NopLogger,
		InfraModule,
		ServiceModule,
		fx.Populate(&rt),
	}, extra...)

	fxApp := fx.New(opts...)
	if err := fxApp.Err(); err != nil {
		return fmt.Errorf("build runtime: %w", err)
	}
	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("start runtime: %w", err)
	}
	defer func() {
		if stopErr := fxApp.Stop(context.WithoutCancel(ctx)); stopErr != nil && err == nil {
			err = fmt.Errorf("stop runtime: %w", stopErr)
		}
	}()

	return fn(ctx, rt)
}
