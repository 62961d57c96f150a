package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScheduler(startHour, endHour int) *Scheduler {
	return New(10*time.Minute, startHour, endHour, time.UTC, 3)
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestInActiveHours(t *testing.T) {
	s := testScheduler(8, 20)

	assert.False(t, s.InActiveHours(at(7, 59)))
	assert.True(t, s.InActiveHours(at(8, 0)))
	assert.True(t, s.InActiveHours(at(13, 30)))
	assert.True(t, s.InActiveHours(at(19, 59)))
	assert.False(t, s.InActiveHours(at(20, 0)))
	assert.False(t, s.InActiveHours(at(23, 0)))
}

func TestInActiveHoursRespectsTimezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	s := New(time.Minute, 8, 20, berlin, 0)

	// 07:00 UTC is 08:00 or 09:00 in Berlin depending on DST; either way
	// inside the window. 23:00 UTC is past it.
	assert.True(t, s.InActiveHours(time.Date(2026, time.June, 1, 7, 0, 0, 0, time.UTC)))
	assert.False(t, s.InActiveHours(time.Date(2026, time.June, 1, 23, 0, 0, 0, time.UTC)))
}

func TestNextWindowStart(t *testing.T) {
	s := testScheduler(8, 20)

	// Before today's window: later the same day.
	next := s.NextWindowStart(at(6, 0))
	assert.Equal(t, at(8, 0), next)

	// Inside or past the window: tomorrow.
	next = s.NextWindowStart(at(21, 0))
	assert.Equal(t, at(8, 0).AddDate(0, 0, 1), next)

	next = s.NextWindowStart(at(8, 0))
	assert.Equal(t, at(8, 0).AddDate(0, 0, 1), next)
}

func TestBackoffDoublesAndCaps(t *testing.T) {
	s := testScheduler(8, 20)

	assert.Equal(t, 10*time.Minute, s.Backoff(1))
	assert.Equal(t, 20*time.Minute, s.Backoff(2))
	assert.Equal(t, 40*time.Minute, s.Backoff(3))
	assert.Equal(t, 80*time.Minute, s.Backoff(4))
	assert.Equal(t, 80*time.Minute, s.Backoff(5))
	assert.Equal(t, 80*time.Minute, s.Backoff(50))
}

func TestRunOutsideActiveHoursNeverInvokesCycle(t *testing.T) {
	s := testScheduler(8, 20)
	s.now = func() time.Time { return at(22, 0) }

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	calls := 0
	err := s.Run(ctx, func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, calls, "cycle must not run outside active hours")
}

func TestRunInvokesCycleInsideActiveHours(t *testing.T) {
	s := New(time.Hour, 8, 20, time.UTC, 0)
	s.now = func() time.Time { return at(12, 0) }

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := s.Run(ctx, func(context.Context) error {
		calls++
		cancel() // one cycle is enough for the test
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRunStopsAfterConsecutiveFailureCeiling(t *testing.T) {
	s := New(time.Millisecond, 8, 20, time.UTC, 3)
	s.now = func() time.Time { return at(12, 0) }

	fatal := errors.New("session lost")
	calls := 0
	err := s.Run(context.Background(), func(context.Context) error {
		calls++
		return fatal
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 3, calls)
}

func TestRunSuccessResetsFailureCount(t *testing.T) {
	s := New(time.Millisecond, 8, 20, time.UTC, 3)
	s.now = func() time.Time { return at(12, 0) }

	fatal := errors.New("flaky session")
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	err := s.Run(ctx, func(context.Context) error {
		calls++
		switch calls {
		case 1, 2: // two failures, below the ceiling
			return fatal
		case 3: // success resets the counter
			return nil
		case 4, 5: // two more failures still don't hit the ceiling
			return fatal
		default:
			cancel()
			return nil
		}
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 6)
}

func TestRunShutdownInterruptsSleepPromptly(t *testing.T) {
	s := New(time.Hour, 8, 20, time.UTC, 0)
	s.now = func() time.Time { return at(12, 0) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	started := make(chan struct{})

	go func() {
		done <- s.Run(ctx, func(context.Context) error {
			close(started)
			return nil
		})
	}()

	<-started
	time.Sleep(10 * time.Millisecond) // let the loop enter its interval sleep
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop promptly on cancellation")
	}
}

func TestSleepCtxReturnsEarlyOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := sleepCtx(ctx, time.Hour)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
