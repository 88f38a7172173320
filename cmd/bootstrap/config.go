package bootstrap

import (
	"go.uber.org/fx"

	"detailing-api/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
