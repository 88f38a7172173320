package components

import (
	"go.uber.org/fx"

	"detailing-api/internal/handler"
	"detailing-api/internal/handler/api"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewContactHandler,
		api.NewEmailHandler,
	),
	fx.Invoke(handler.NewRouter),
)
