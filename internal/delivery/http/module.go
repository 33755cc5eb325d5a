package http

import (
	"go.uber.org/fx"

	"signpubliq/internal/delivery/http/handler"
	"signpubliq/internal/delivery/http/router"
)

var Module = fx.Module("http",
	fx.Provide(
		handler.NewSessionHandler,
		handler.NewEnvelopeHandler,
		handler.NewAuthHandler,
		handler.NewDashboardHandler,
		handler.NewHealthHandler,
		router.NewRouter,
	),
)
