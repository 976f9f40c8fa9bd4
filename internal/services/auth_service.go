/**
 * @description
 * Authentication Cycle.
 * Logs every wallet in with a signed server challenge and rewrites the bearer table.
 *
 * @dependencies
 * - internal/signer
 * - internal/store
 *
 * @notes
 * - Accounts are processed strictly one at a time with a fixed delay after each,
 *   to stay under the service's rate limits.
 * - A failing account gets "" in its slot; the batch always continues.
 */

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/assr-bot/assr/internal/logger"
	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/signer"
	"github.com/assr-bot/assr/internal/store"
)

type Authenticator struct {
	api      IncentiveAPI
	bearers  store.BearerStore
	reporter Reporter
	clock    Clock
	delay    time.Duration
}

func NewAuthenticator(api IncentiveAPI, bearers store.BearerStore, reporter Reporter, clock Clock, delay time.Duration) *Authenticator {
	if clock == nil {
		clock = RealClock{}
	}
	return &Authenticator{
		api:      api,
		bearers:  bearers,
		reporter: reporter,
		clock:    clock,
		delay:    delay,
	}
}

// AuthenticateAll returns a table with exactly one slot per account and persists it.
// If ctx is cancelled mid-pass the remaining slots are left empty, nothing is
// persisted, and ctx.Err() is returned alongside the table.
func (a *Authenticator) AuthenticateAll(ctx context.Context, accounts []models.Account) (store.BearerTable, error) {
	table := make(store.BearerTable, len(accounts))

	for i, acc := range accounts {
		a.reporter.Info("Authenticating Account %d: %s", acc.ID, acc.Wallet)

		token, err := a.authenticate(ctx, acc)
		if err != nil {
			a.reporter.Failure("Error authenticating Account %d: %v", acc.ID, err)
		} else {
			table[i] = token
		}

		if err := a.clock.Sleep(ctx, a.delay); err != nil {
			return table, err
		}
	}

	if err := a.bearers.Save(ctx, table); err != nil {
		a.reporter.Failure("Failed to write bearers: %v", err)
	} else {
		a.reporter.Success("All bearers updated (%d/%d authenticated)", countPresent(table), len(table))
	}

	return table, nil
}

func (a *Authenticator) authenticate(ctx context.Context, acc models.Account) (string, error) {
	message, err := a.api.GetLoginMessage(ctx)
	if err != nil {
		return "", fmt.Errorf("get login message: %w", err)
	}
	logger.Debug("account %d: challenge %q", acc.ID, message)

	signature, err := signer.Sign(acc.PrivateKey, message)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	token, err := a.api.Login(ctx, acc.Wallet, message, signature)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}

func countPresent(t store.BearerTable) int {
	n := 0
	for i := range t {
		if t.Present(i) {
			n++
		}
	}
	return n
}
