package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weegigs/wee-blink-go/support"
)

func newRootCmd() *cobra.Command {
	cfg := support.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "blink-server",
		Short:         "Serves the weeping angel page and its blink counter",
		Long:          "Serves index.html and the angel images, and counts blinks reported to /blinked.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := support.ApplyEnvironment(cmd.Flags(), os.LookupEnv); err != nil {
				return err
			}

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	return cmd
}

func run(parent context.Context, cfg support.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := initialize(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return app.Run(ctx)
}
