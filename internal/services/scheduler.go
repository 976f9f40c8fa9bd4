package services

import (
	"context"
	"time"
)

// RecurringTask runs Run immediately and then again every Interval, measured
// from the end of the previous run. There is no stop method: the loop ends only
// when ctx is cancelled, which the CLI wires to SIGINT/SIGTERM.
type RecurringTask struct {
	Interval time.Duration
	Clock    Clock
	// Run receives a 1-based cycle number.
	Run func(ctx context.Context, cycle int) error
	// BeforeWait is called after each run, before sleeping.
	BeforeWait func(next time.Time)
}

// Start blocks until ctx is done or Run returns an error.
func (t *RecurringTask) Start(ctx context.Context) error {
	clock := t.Clock
	if clock == nil {
		clock = RealClock{}
	}

	for cycle := 1; ; cycle++ {
		if err := t.Run(ctx, cycle); err != nil {
			return err
		}
		if t.BeforeWait != nil {
			t.BeforeWait(clock.Now().Add(t.Interval))
		}
		if err := clock.Sleep(ctx, t.Interval); err != nil {
			return err
		}
	}
}
