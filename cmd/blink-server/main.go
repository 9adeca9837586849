package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("blink server stopped")
		os.Exit(1)
	}
}
