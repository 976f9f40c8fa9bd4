package services_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/services"
	"github.com/assr-bot/assr/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRecorder struct {
	mu      sync.Mutex
	results []models.CheckInResult
}

func (m *memoryRecorder) Record(ctx context.Context, res models.CheckInResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
	return nil
}

func (m *memoryRecorder) PublishCheckIn(ctx context.Context, res models.CheckInResult) error {
	return m.Record(ctx, res)
}

func newCheckIn(f *fixture, opts services.CheckInOptions) *services.CheckInService {
	if opts.Delay == 0 {
		opts.Delay = time.Second
	}
	if opts.Interval == 0 {
		opts.Interval = 24 * time.Hour
	}
	return services.NewCheckInService(f.api, f.auth, f.reporter, f.clock, opts)
}

func TestSinglePassChecksInEveryAccount(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(3)
	ctx := context.Background()
	bearers, err := f.auth.AuthenticateAll(ctx, accounts)
	require.NoError(t, err)

	rec := &memoryRecorder{}
	svc := newCheckIn(f, services.CheckInOptions{Recorder: rec})
	require.NoError(t, svc.Run(ctx, &bearers, accounts, false))

	for _, acc := range accounts {
		assert.Equal(t, 1, f.srv.User(acc.Wallet).CheckIns)
	}
	assert.Len(t, f.reporter.containing("success", "points are now 1.00"), 3)

	summary := svc.LastSummary()
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.Count(models.CheckInSuccess))
	assert.Len(t, rec.results, 3)
	assert.Equal(t, int64(100), *rec.results[0].Points)
	assert.Equal(t, 1, svc.Streak(0))
}

func TestStreaksReadableDuringPass(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(4)
	ctx := context.Background()
	bearers, err := f.auth.AuthenticateAll(ctx, accounts)
	require.NoError(t, err)
	svc := newCheckIn(f, services.CheckInOptions{})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				for i := range accounts {
					_ = svc.Streak(i)
				}
				_ = svc.LastSummary()
			}
		}
	}()

	svc.Pass(ctx, bearers, accounts, 1, true)
	svc.Pass(ctx, bearers, accounts, 2, true)
	close(done)
	wg.Wait()

	for i := range accounts {
		assert.Equal(t, 1, svc.Streak(i), "second pass is already-checked-in")
	}
}

func TestPassReportsAlreadyCheckedInAndContinues(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(3)
	ctx := context.Background()
	bearers, err := f.auth.AuthenticateAll(ctx, accounts)
	require.NoError(t, err)

	f.srv.SetForcedCode(accounts[0].Wallet, http.StatusBadRequest)

	svc := newCheckIn(f, services.CheckInOptions{})
	summary := svc.Pass(ctx, bearers, accounts, 1, false)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, models.CheckInAlreadyPerformed, summary.Results[0].Status)
	assert.Equal(t, models.CheckInSuccess, summary.Results[1].Status)
	assert.Equal(t, models.CheckInSuccess, summary.Results[2].Status)

	already := f.reporter.containing("warn", "already performed Check-In today")
	require.Len(t, already, 1)
	assert.Contains(t, already[0], "User 1")
	assert.Empty(t, f.reporter.messages("failure"))
}

func TestPassGenericFailureIsNotAlreadyCheckedIn(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(2)
	ctx := context.Background()
	bearers, err := f.auth.AuthenticateAll(ctx, accounts)
	require.NoError(t, err)

	f.srv.SetForcedCode(accounts[1].Wallet, http.StatusInternalServerError)

	svc := newCheckIn(f, services.CheckInOptions{})
	summary := svc.Pass(ctx, bearers, accounts, 1, false)

	assert.Equal(t, models.CheckInSuccess, summary.Results[0].Status)
	assert.Equal(t, models.CheckInFailed, summary.Results[1].Status)
	failures := f.reporter.messages("failure")
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "account 2")
	assert.Contains(t, failures[0], "status 500")
}

func TestPassMissingTokenSkipsRemote(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(2)
	ctx := context.Background()

	svc := newCheckIn(f, services.CheckInOptions{})
	summary := svc.Pass(ctx, store.BearerTable{"", ""}, accounts, 1, false)

	assert.Equal(t, 2, summary.Count(models.CheckInMissingToken))
	assert.Zero(t, f.srv.CountCalls("/incentive/users/me/daily_points/"))
	assert.Len(t, f.reporter.containing("failure", services.ErrMissingToken.Error()), 2)
	assert.Equal(t, 2, f.clock.count(time.Second), "delay applies to failures too")
}

func TestPassShortTableTreatedAsMissing(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(2)
	svc := newCheckIn(f, services.CheckInOptions{})

	summary := svc.Pass(context.Background(), store.BearerTable{}, accounts, 1, false)
	assert.Equal(t, 2, summary.Count(models.CheckInMissingToken))
}

func TestPassExpiredTokenWarnsWithoutReauth(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(1)
	expired := f.srv.IssueToken(accounts[0].Wallet, f.clock.Now().Add(-time.Minute))

	svc := newCheckIn(f, services.CheckInOptions{})
	svc.Pass(context.Background(), store.BearerTable{expired}, accounts, 1, false)

	assert.Len(t, f.reporter.containing("warn", "looks expired"), 1)
	assert.Zero(t, f.srv.CountCalls("/incentive/auth/login/"))
}

func TestContinuousModeReauthenticatesEachCycle(t *testing.T) {
	f := newFixture(t)
	accounts := f.srv.Seed(3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initial, err := f.auth.AuthenticateAll(ctx, accounts)
	require.NoError(t, err)
	bearers := append(store.BearerTable(nil), initial...)

	intervals := 0
	f.clock.onSleep = func(ctx context.Context, d time.Duration) error {
		if d != 24*time.Hour {
			return nil
		}
		intervals++
		f.srv.NewDay()
		if intervals == 2 {
			cancel()
		}
		return nil
	}

	svc := newCheckIn(f, services.CheckInOptions{})
	err = svc.Run(ctx, &bearers, accounts, true)
	assert.ErrorIs(t, err, context.Canceled)

	// cycle 1 used the initial tokens, cycle 2 fresh ones
	assert.Equal(t, 6, f.srv.CountCalls("/incentive/auth/login/"))
	require.Len(t, bearers, 3)
	for i := range bearers {
		assert.NotEmpty(t, bearers[i])
		assert.NotEqual(t, initial[i], bearers[i])
		assert.Equal(t, 2, svc.Streak(i))
	}

	// re-authentication happens between the two passes
	calls := f.srv.Calls()
	var checkIns, logins []int
	for i, c := range calls {
		switch c {
		case "POST /incentive/users/me/daily_points/":
			checkIns = append(checkIns, i)
		case "POST /incentive/auth/login/":
			logins = append(logins, i)
		}
	}
	require.Len(t, checkIns, 6)
	require.Len(t, logins, 6)
	assert.Greater(t, logins[3], checkIns[2])
	assert.Less(t, logins[5], checkIns[3])

	assert.Len(t, f.reporter.containing("success", "for 1 consecutive days"), 3)
	assert.Len(t, f.reporter.containing("success", "for 2 consecutive days"), 3)
	assert.Equal(t, 2, svc.LastSummary().Cycle)
	assert.Equal(t, 2, f.clock.count(24*time.Hour))
}
