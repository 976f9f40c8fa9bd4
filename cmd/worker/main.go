/**
 * @description
 * Worker Entry Point.
 * Headless version of `assr checkin --continuous` for process supervisors:
 * 1. Authenticates every wallet and persists the bearer table.
 * 2. Runs the check-in pass, then repeats every CHECKIN_INTERVAL.
 * 3. Serves the status API when STATUS_PORT is set.
 *
 * @dependencies
 * - internal/config
 * - internal/app
 * - internal/logger
 */

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/assr-bot/assr/internal/app"
	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/logger"
)

func main() {
	logger.Info("Starting ASSR check-in worker...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, os.Stdout)
	if err != nil {
		logger.Fatal("Failed to start: %v", err)
	}
	defer a.Close()

	a.StartStatusServer(ctx)

	done := make(chan error, 1)
	go func() {
		bearers, err := a.Auth.AuthenticateAll(ctx, a.Accounts)
		if err != nil {
			done <- err
			return
		}
		done <- a.CheckIn.Run(ctx, &bearers, a.Accounts, true)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down worker...")
		cancel()
		<-done
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Check-in loop stopped: %v", err)
			a.Close()
			logger.Sync()
			os.Exit(1)
		}
	}

	logger.Info("Worker exited.")
	logger.Sync()
}
