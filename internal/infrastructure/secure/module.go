package secure

import "go.uber.org/fx"

var Module = fx.Module("secure",
	fx.Provide(NewCodec),
)
