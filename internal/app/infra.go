package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/session"
	"github.com/Alijeyrad/clinic_console/pkg/crypto"
	"github.com/Alijeyrad/clinic_console/pkg/observability"
	redispkg "github.com/Alijeyrad/clinic_console/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideHTTPClient),
	fx.Provide(ProvideSessionStorage),
)

// ProvideLogger hands out the process logger installed by the root command.
func ProvideLogger() *slog.Logger {
	return slog.Default()
}

// ProvideRedis connects only when redis.addr is configured; otherwise the
// client is nil and consumers fall back to local state.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg.Observability))
	if err != nil {
		return nil, err
	}
	slog.Debug("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideHTTPClient returns the client used for API calls. With telemetry
// enabled every request carries the trace context.
func ProvideHTTPClient(cfg *config.Config, otel *observability.Provider) *http.Client {
	if otel == nil || !cfg.Observability.Tracing.Enabled {
		return &http.Client{}
	}
	return &http.Client{Transport: observability.Transport(http.DefaultTransport)}
}

func ProvideSessionStorage(cfg *config.Config, rdb *redis.Client) (session.Storage, error) {
	switch strings.ToLower(cfg.Session.Store) {
	case config.SessionStoreMemory:
		return &session.MemoryStorage{}, nil
	case config.SessionStoreRedis:
		if rdb == nil {
			return nil, fmt.Errorf("session store %q needs redis.addr", config.SessionStoreRedis)
		}
		return session.NewRedisStorage(rdb), nil
	default:
		path := cfg.Session.Path
		if path == "" {
			var err error
			if path, err = session.DefaultPath(); err != nil {
				return nil, err
			}
		}
		var sealer *crypto.Sealer
		if cfg.Session.EncryptionKey != "" {
			var err error
			if sealer, err = crypto.SealerFromHex(cfg.Session.EncryptionKey, session.SealPurpose); err != nil {
				return nil, fmt.Errorf("session.encryption_key: %w", err)
			}
		}
		return session.NewFileStorage(path, sealer), nil
	}
}
