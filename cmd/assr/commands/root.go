package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/assr-bot/assr/internal/app"
	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/logger"
)

var (
	walletsPath string
	bearersPath string
	appCtx      *app.App
)

// Execute runs the CLI. SIGINT/SIGTERM cancel the command context, which is
// the only way to stop a continuous run.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "assr",
		Short:         "Daily check-in bot for the Assisterr incentive program",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if walletsPath != "" {
				cfg.Files.Wallets = walletsPath
			}
			if bearersPath != "" {
				cfg.Files.Bearers = bearersPath
			}
			logger.SetLevel(cfg.App.LogLevel)

			a, err := app.New(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
		RunE: runInteractive,
	}

	root.PersistentFlags().StringVar(&walletsPath, "wallets", "", "wallets file (default $WALLETS_FILE or wallets.json)")
	root.PersistentFlags().StringVar(&bearersPath, "bearers", "", "bearers file (default $BEARERS_FILE or bearers.json)")

	root.AddCommand(checkInCmd(), authCmd(), accountsCmd(), verifyCmd())

	err := root.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Shutting down...")
		return nil
	}
	if err != nil {
		logger.Error("%v", err)
	}
	return err
}
