package usecase

import "go.uber.org/fx"

var Module = fx.Module("usecase",
	fx.Provide(NewSessionUsecase),
	fx.Provide(NewEnvelopeUsecase),
	fx.Provide(NewAuthUsecase),
	fx.Provide(NewDashboardUsecase),
)
