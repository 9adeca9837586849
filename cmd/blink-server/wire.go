//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/wee-blink-go/blink"
	"github.com/weegigs/wee-blink-go/support"
)

func initialize(ctx context.Context, cfg support.Config) (*App, func(), error) {
	panic(wire.Build(
		support.Live,
		blink.Live,
		assets,
		newHandler,
		newBackend,
		wire.Struct(new(App), "*"),
	))
}
