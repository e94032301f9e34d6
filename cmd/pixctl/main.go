package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pix_checkout/internal/config"
	"pix_checkout/internal/infrastructure/payments"
	"pix_checkout/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pixctl",
		Short:         "pixctl - create Pix charges and follow their payment status",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	// Add subcommands
	rootCmd.AddCommand(chargeCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}

// services is what every subcommand needs, built from the environment.
type services struct {
	cfg     *config.Config
	charges usecase.IChargeUseCase
	poller  usecase.IStatusPoller
	close   func()
}

func loadServices(cmd *cobra.Command) (*services, error) {
	cfg := config.NewConfig()

	gateway, err := payments.NewGateway(cfg.Gateway)
	if err != nil {
		return nil, err
	}
	replay, closeReplay, err := newReplayStore(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		cfg:     cfg,
		charges: usecase.NewChargeUseCase(gateway, replay, cfg.Idempotency.TTL),
		poller: usecase.NewStatusPoller(gateway, usecase.PollerConfig{
			Interval:               cfg.Polling.Interval,
			MaxDuration:            cfg.Polling.MaxDuration,
			MaxConsecutiveFailures: cfg.Polling.MaxConsecutiveFailures,
			FinishedRetention:      cfg.Polling.FinishedRetention,
		}, nil),
		close: closeReplay,
	}, nil
}
