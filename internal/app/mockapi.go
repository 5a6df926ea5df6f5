package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/service/auth"
	"github.com/Alijeyrad/clinic_console/internal/service/clinic"
	"github.com/Alijeyrad/clinic_console/pkg/util/password"
)

// MockAPIModule provides the in-memory services behind the mock API.
var MockAPIModule = fx.Module("mockapi",
	fx.Provide(ProvideAuthService),
	fx.Provide(clinic.New),
)

func ProvideAuthService(cfg *config.Config) auth.Service {
	return auth.New(password.FromCentralConfig(cfg.MockAPI))
}
