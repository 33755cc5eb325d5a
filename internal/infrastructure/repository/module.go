package repository

import "go.uber.org/fx"

var Module = fx.Module("repository",
	fx.Provide(NewSessionRepository),
	fx.Provide(NewEnvelopeRepository),
	fx.Provide(NewSendGateway),
	fx.Provide(NewAuthGateway),
	fx.Provide(NewDashboardGateway),
)
