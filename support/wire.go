package support

import "github.com/google/wire"

var Live = wire.NewSet(
	Logger,
	AccessLogger,
	TracerProvider,
)
