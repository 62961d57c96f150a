// Package schedule decides when inbox cycles run: only inside the configured
// daily active-hours window, spaced by the check interval, with bounded
// exponential backoff after fatal cycle errors.
package schedule

import (
	"context"
	"fmt"
	"log"
	"time"
)

const (
	// backoffCap bounds the fatal-error backoff multiplier.
	backoffCap = 8
)

// Scheduler drives repeated cycle invocations.
type Scheduler struct {
	// Interval is the wait between successful cycles.
	Interval time.Duration

	// StartHour/EndHour bound the daily active window [start, end) in
	// Location. Validated by config: 0-23, start < end.
	StartHour int
	EndHour   int
	Location  *time.Location

	// MaxConsecutiveFailures stops the loop after this many fatal cycle
	// errors in a row. Zero means never stop on failures.
	MaxConsecutiveFailures int

	// now is a test hook; defaults to time.Now.
	now func() time.Time
}

// New builds a Scheduler.
func New(interval time.Duration, startHour, endHour int, loc *time.Location, maxFailures int) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		Interval:               interval,
		StartHour:              startHour,
		EndHour:                endHour,
		Location:               loc,
		MaxConsecutiveFailures: maxFailures,
		now:                    time.Now,
	}
}

// InActiveHours reports whether t falls inside the daily window.
func (s *Scheduler) InActiveHours(t time.Time) bool {
	h := t.In(s.Location).Hour()
	return h >= s.StartHour && h < s.EndHour
}

// NextWindowStart returns the next moment the active window opens at or
// after t.
func (s *Scheduler) NextWindowStart(t time.Time) time.Time {
	t = t.In(s.Location)
	start := time.Date(t.Year(), t.Month(), t.Day(), s.StartHour, 0, 0, 0, s.Location)
	if !t.Before(start) {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

// Backoff returns the wait after n consecutive fatal failures: the interval
// doubled per failure, capped at backoffCap times the interval.
func (s *Scheduler) Backoff(failures int) time.Duration {
	multiplier := 1
	for i := 1; i < failures && multiplier < backoffCap; i++ {
		multiplier *= 2
	}
	if multiplier > backoffCap {
		multiplier = backoffCap
	}
	return time.Duration(multiplier) * s.Interval
}

// Run loops until ctx is cancelled (clean shutdown, nil return) or the
// consecutive-failure ceiling is hit (last error returned). Outside active
// hours it sleeps until the window opens; a tick outside the window never
// invokes the cycle.
func (s *Scheduler) Run(ctx context.Context, cycle func(context.Context) error) error {
	failures := 0

	for {
		now := s.now()

		if !s.InActiveHours(now) {
			wait := s.NextWindowStart(now).Sub(now)
			fmt.Printf("🌙 Outside active hours (%02d:00-%02d:00), sleeping %s until the window opens\n",
				s.StartHour, s.EndHour, wait.Round(time.Minute))
			if err := sleepCtx(ctx, wait); err != nil {
				return nil
			}
			continue
		}

		fmt.Printf("⏰ Running scheduled check at %s\n", now.Format("2006-01-02 15:04:05"))
		err := cycle(ctx)
		if ctx.Err() != nil {
			return nil
		}

		wait := s.Interval
		if err != nil {
			failures++
			log.Printf("❌ Cycle failed (%d consecutive): %v", failures, err)
			if s.MaxConsecutiveFailures > 0 && failures >= s.MaxConsecutiveFailures {
				return fmt.Errorf("giving up after %d consecutive failures: %w", failures, err)
			}
			wait = s.Backoff(failures)
			fmt.Printf("⏳ Backing off %s before the next attempt\n", wait.Round(time.Second))
		} else {
			failures = 0
			fmt.Printf("💤 Next check in %s\n", wait.Round(time.Second))
		}

		if err := sleepCtx(ctx, wait); err != nil {
			return nil
		}
	}
}

// sleepCtx waits for d or until ctx is done, whichever comes first. The
// shutdown signal interrupts the sleep promptly.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
