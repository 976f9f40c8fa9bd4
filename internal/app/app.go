/**
 * @description
 * Application wiring.
 * Loads the wallets, connects the optional backends and builds the services
 * shared by every CLI command.
 *
 * @dependencies
 * - internal/config
 * - internal/db
 * - internal/events
 * - internal/services
 *
 * @notes
 * - Redis and Postgres are optional; a failed connection is logged and the
 *   bot carries on with bearers.json only.
 */

package app

import (
	"context"
	"io"
	"net"

	"github.com/assr-bot/assr/internal/api"
	"github.com/assr-bot/assr/internal/api/handlers"
	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/db"
	"github.com/assr-bot/assr/internal/events"
	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/logger"
	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/services"
	"github.com/assr-bot/assr/internal/store"
	"github.com/assr-bot/assr/internal/ui"
)

type App struct {
	Cfg      *config.Config
	Accounts []models.Account
	Store    store.BearerStore
	Console  *ui.Console
	Client   *incentive.Client

	Auth      *services.Authenticator
	CheckIn   *services.CheckInService
	Usernames *services.UsernameService
	Overview  *services.OverviewService
	History   *services.HistoryRecorder // nil without DATABASE_URL

	closers []func() error
}

// New loads wallets.json and builds the services. A wallet load failure is
// returned wrapped in store.ErrConfigLoad.
func New(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	accounts, err := store.LoadWallets(cfg.Files.Wallets)
	if err != nil {
		return nil, err
	}

	a := &App{
		Cfg:      cfg,
		Accounts: accounts,
		Console:  ui.NewConsole(out),
		Client:   incentive.NewClient(cfg),
	}

	bearerStore := &store.MultiBearerStore{Primary: store.NewFileBearerStore(cfg.Files.Bearers)}
	opts := services.CheckInOptions{
		Delay:    cfg.Schedule.CheckInDelay,
		Interval: cfg.Schedule.CheckInInterval,
	}

	if cfg.Redis.URL != "" {
		rdb, err := db.ConnectRedis(ctx, cfg)
		if err != nil {
			logger.Error("Redis unavailable, continuing without it: %v", err)
		} else {
			a.closers = append(a.closers, rdb.Close)
			bearerStore.Mirrors = append(bearerStore.Mirrors, store.NewRedisBearerStore(rdb))

			pub, err := events.NewRedisStreamPublisher(rdb)
			if err != nil {
				logger.Error("Event stream unavailable: %v", err)
			} else {
				a.closers = append(a.closers, pub.Close)
				opts.Publisher = pub
			}
		}
	}

	if cfg.DB.URL != "" {
		pg, err := db.ConnectPostgres(cfg)
		if err != nil {
			logger.Error("Postgres unavailable, history disabled: %v", err)
		} else {
			history := services.NewHistoryRecorder(pg)
			if err := history.Migrate(); err != nil {
				logger.Error("History migration failed, history disabled: %v", err)
			} else {
				opts.Recorder = history
				a.History = history
			}
			if sqlDB, err := pg.DB(); err == nil {
				a.closers = append(a.closers, sqlDB.Close)
			}
		}
	}

	a.Store = bearerStore
	clock := services.RealClock{}
	a.Auth = services.NewAuthenticator(a.Client, bearerStore, a.Console, clock, cfg.Schedule.AuthDelay)
	a.CheckIn = services.NewCheckInService(a.Client, a.Auth, a.Console, clock, opts)
	a.Usernames = services.NewUsernameService(a.Client, a.Console, clock, cfg.Schedule.UsernameDelay)
	a.Overview = services.NewOverviewService(a.Client)
	return a, nil
}

// LoadBearers returns the persisted table aligned to the account list
func (a *App) LoadBearers(ctx context.Context) (store.BearerTable, error) {
	table, err := a.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return table.Aligned(len(a.Accounts)), nil
}

// StartStatusServer serves the status API until ctx is done. No-op without STATUS_PORT.
func (a *App) StartStatusServer(ctx context.Context) {
	if a.Cfg.App.StatusPort == "" {
		return
	}
	var history handlers.HistorySource
	if a.History != nil {
		history = a.History
	}
	statusApp := api.NewApp(a.Cfg, a.CheckIn, history, a.Accounts)
	addr := net.JoinHostPort(a.Cfg.App.StatusHost, a.Cfg.App.StatusPort)

	go func() {
		logger.Info("Status API listening on %s", addr)
		if err := statusApp.Listen(addr); err != nil {
			logger.Error("Status API stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = statusApp.Shutdown()
	}()
}

// Close releases the optional backends
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Error("close: %v", err)
		}
	}
}
