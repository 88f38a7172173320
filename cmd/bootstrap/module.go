package bootstrap

import (
	"go.uber.org/fx"

	"detailing-api/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	StoresModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
