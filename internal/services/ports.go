/**
 * @description
 * Interfaces the services depend on, so tests can swap the remote API,
 * the console, the clock and the optional sinks.
 */

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/assr-bot/assr/internal/models"
)

// IncentiveAPI is the remote surface used by the services
type IncentiveAPI interface {
	GetLoginMessage(ctx context.Context) (string, error)
	Login(ctx context.Context, key, message, signature string) (string, error)
	GetUser(ctx context.Context, bearer string) (*models.UserProfile, error)
	DailyCheckIn(ctx context.Context, bearer string) (json.RawMessage, error)
	SetUserInfo(ctx context.Context, bearer, username string) (*models.UserProfile, error)
}

// Reporter receives the user-facing progress messages
type Reporter interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Failure(format string, args ...interface{})
}

// Prompter asks the operator questions during interactive flows
type Prompter interface {
	Input(title string) (string, error)
	Confirm(title string) (bool, error)
}

// ResultRecorder persists check-in results (history database)
type ResultRecorder interface {
	Record(ctx context.Context, res models.CheckInResult) error
}

// ResultPublisher announces check-in results (event stream)
type ResultPublisher interface {
	PublishCheckIn(ctx context.Context, res models.CheckInResult) error
}

// Clock abstracts wall time and sleeping so delays can be faked
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is the wall clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
