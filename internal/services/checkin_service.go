/**
 * @description
 * Check-In Scheduler.
 * Runs the daily check-in across all accounts, once or on a 24h cycle that
 * re-authenticates before every pass after the first.
 *
 * @dependencies
 * - internal/incentive
 * - internal/store
 * - github.com/google/uuid
 *
 * @notes
 * - One account at a time, fixed delay after each one.
 * - HTTP 400 on daily_points is treated as "already checked in today".
 * - No re-authentication inside a pass; an expired token just fails.
 */

package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/logger"
	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/store"
	"github.com/google/uuid"
)

type CheckInService struct {
	api       IncentiveAPI
	auth      *Authenticator
	reporter  Reporter
	clock     Clock
	delay     time.Duration
	interval  time.Duration
	recorder  ResultRecorder
	publisher ResultPublisher

	// mu guards streaks and last; the status API reads them while a pass runs
	mu sync.RWMutex
	// streaks counts successful check-ins per account index, across cycles
	streaks map[int]int
	last    *models.PassSummary
}

// CheckInOptions carries the optional sinks
type CheckInOptions struct {
	Delay     time.Duration
	Interval  time.Duration
	Recorder  ResultRecorder
	Publisher ResultPublisher
}

func NewCheckInService(api IncentiveAPI, auth *Authenticator, reporter Reporter, clock Clock, opts CheckInOptions) *CheckInService {
	if clock == nil {
		clock = RealClock{}
	}
	return &CheckInService{
		api:       api,
		auth:      auth,
		reporter:  reporter,
		clock:     clock,
		delay:     opts.Delay,
		interval:  opts.Interval,
		recorder:  opts.Recorder,
		publisher: opts.Publisher,
		streaks:   make(map[int]int),
	}
}

// Run performs one pass, or with continuous set, a pass every interval forever.
// In continuous mode every cycle after the first re-authenticates all accounts
// and replaces *bearers before checking in.
func (s *CheckInService) Run(ctx context.Context, bearers *store.BearerTable, accounts []models.Account, continuous bool) error {
	if !continuous {
		s.Pass(ctx, *bearers, accounts, 1, false)
		return ctx.Err()
	}

	task := &RecurringTask{
		Interval: s.interval,
		Clock:    s.clock,
		Run: func(ctx context.Context, cycle int) error {
			if cycle > 1 {
				s.reporter.Info("Starting a new check-in cycle...")
				fresh, err := s.auth.AuthenticateAll(ctx, accounts)
				if err != nil {
					return err
				}
				*bearers = fresh
			}
			s.Pass(ctx, *bearers, accounts, cycle, true)
			return ctx.Err()
		},
		BeforeWait: func(next time.Time) {
			s.reporter.Info("Check-in completed. Next check-in at %s", next.Format(time.RFC1123))
		},
	}
	return task.Start(ctx)
}

// Pass checks in every account once, in order, and returns the summary.
func (s *CheckInService) Pass(ctx context.Context, bearers store.BearerTable, accounts []models.Account, cycle int, continuous bool) *models.PassSummary {
	summary := &models.PassSummary{
		RunID:     uuid.New(),
		Cycle:     cycle,
		StartedAt: s.clock.Now(),
	}

	for i, acc := range accounts {
		res := s.checkIn(ctx, summary.RunID, i, acc, bearers.Get(i), continuous)
		summary.Results = append(summary.Results, res)
		s.emit(ctx, res)

		if err := s.clock.Sleep(ctx, s.delay); err != nil {
			break
		}
	}

	summary.FinishedAt = s.clock.Now()
	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	logger.Info("check-in pass %s (cycle %d): %d ok, %d already, %d missing token, %d failed",
		summary.RunID, cycle,
		summary.Count(models.CheckInSuccess),
		summary.Count(models.CheckInAlreadyPerformed),
		summary.Count(models.CheckInMissingToken),
		summary.Count(models.CheckInFailed))
	return summary
}

// LastSummary returns the most recent pass, or nil before the first one
func (s *CheckInService) LastSummary() *models.PassSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Streak returns the success count of the account at index
func (s *CheckInService) Streak(index int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streaks[index]
}

func (s *CheckInService) checkIn(ctx context.Context, runID uuid.UUID, index int, acc models.Account, bearer string, continuous bool) models.CheckInResult {
	res := models.CheckInResult{
		RunID:     runID,
		Index:     index,
		AccountID: acc.ID,
		Wallet:    acc.Wallet,
		At:        s.clock.Now(),
	}

	if bearer == "" {
		res.Status = models.CheckInMissingToken
		res.Error = ErrMissingToken.Error()
		s.reporter.Failure("Error performing check-in for account %d: %v", acc.ID, ErrMissingToken)
		return res
	}

	if incentive.TokenExpired(bearer, s.clock.Now()) {
		s.reporter.Warn("Access token for account %d looks expired; trying anyway", acc.ID)
	}

	if _, err := s.api.DailyCheckIn(ctx, bearer); err != nil {
		if incentive.IsAlreadyCheckedIn(err) {
			res.Status = models.CheckInAlreadyPerformed
			res.Error = ErrAlreadyCheckedIn.Error()
			name := models.FallbackName(index)
			if profile, perr := s.api.GetUser(ctx, bearer); perr == nil {
				name = profile.DisplayName(index)
				res.Username = usernameOf(profile)
			}
			s.reporter.Warn("%s has already performed Check-In today. Please wait 24 hours and try again.", name)
			return res
		}

		res.Status = models.CheckInFailed
		res.Error = err.Error()
		s.reporter.Failure("Error performing check-in for account %d: %v", acc.ID, err)
		return res
	}

	res.Status = models.CheckInSuccess
	s.mu.Lock()
	s.streaks[index]++
	res.Streak = s.streaks[index]
	s.mu.Unlock()

	name := models.FallbackName(index)
	profile, err := s.api.GetUser(ctx, bearer)
	if err != nil {
		logger.Warn("account %d: profile fetch after check-in failed: %v", acc.ID, err)
	} else {
		name = profile.DisplayName(index)
		res.Username = usernameOf(profile)
		res.Points = profile.Points
	}

	points := FormatPoints(res.Points)
	if continuous {
		s.reporter.Success("%s performed Check-In for %d consecutive days - points are now %s", name, res.Streak, points)
	} else {
		s.reporter.Success("%s performed Check-In successfully - points are now %s", name, points)
	}
	return res
}

// emit forwards a result to the optional sinks; failures there never abort a pass.
func (s *CheckInService) emit(ctx context.Context, res models.CheckInResult) {
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, res); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("failed to record check-in for account %d: %v", res.AccountID, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishCheckIn(ctx, res); err != nil {
			logger.Error("failed to publish check-in for account %d: %v", res.AccountID, err)
		}
	}
}

func usernameOf(p *models.UserProfile) string {
	if p.HasUsername() {
		return *p.Username
	}
	return ""
}
