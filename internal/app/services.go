package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/notify"
	"github.com/Alijeyrad/clinic_console/internal/session"
	"github.com/Alijeyrad/clinic_console/internal/views"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

// ServiceModule provides the console services built on top of InfraModule.
var ServiceModule = fx.Module("services",
	fx.Provide(ProvideAPIClient),
	fx.Provide(ProvideSessionStore),
	fx.Provide(ProvideNotifier),
	fx.Provide(ProvideFormatter),
	fx.Provide(NewRuntime),
)

// ProvideAPIClient returns the unauthenticated client. Authenticated calls
// go through Runtime.API, which adds the session's token.
func ProvideAPIClient(cfg *config.Config, hc *http.Client) *apiclient.Client {
	return apiclient.New(apiclient.FromCentralConfig(cfg.API), hc)
}

// ProvideSessionStore restores any persisted token before anything can
// issue a request.
func ProvideSessionStore(lc fx.Lifecycle, api *apiclient.Client, storage session.Storage, logger *slog.Logger) *session.Store {
	store := session.New(api, storage, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Init(ctx)
		},
	})
	return store
}

func ProvideNotifier(logger *slog.Logger) notify.Notifier {
	return notify.NewWriter(os.Stderr, logger)
}

func ProvideFormatter(cfg *config.Config) views.Formatter {
	return views.NewFormatter(cfg.Display)
}
