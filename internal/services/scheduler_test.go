package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assr-bot/assr/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestRecurringTaskRunsUntilCancelled(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cycles []int
	var nexts []time.Time
	task := &services.RecurringTask{
		Interval: time.Hour,
		Clock:    clock,
		Run: func(ctx context.Context, cycle int) error {
			cycles = append(cycles, cycle)
			if cycle == 3 {
				cancel()
			}
			return nil
		},
		BeforeWait: func(next time.Time) { nexts = append(nexts, next) },
	}

	err := task.Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{1, 2, 3}, cycles)
	assert.Equal(t, start.Add(time.Hour), nexts[0])
}

func TestRecurringTaskStopsOnRunError(t *testing.T) {
	boom := errors.New("boom")
	task := &services.RecurringTask{
		Interval: time.Hour,
		Clock:    newFakeClock(),
		Run:      func(ctx context.Context, cycle int) error { return boom },
	}
	assert.ErrorIs(t, task.Start(context.Background()), boom)
}

func TestRealClockSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := services.RealClock{}.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, services.RealClock{}.Sleep(context.Background(), time.Millisecond))
}
