package components

import (
	"go.uber.org/fx"

	"detailing-api/internal/usecase"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewBookingUseCase,
		usecase.NewContactUseCase,
		usecase.NewEmailUseCase,
	),
)
