package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Scheduler configures the background stock sweeps.
type Scheduler struct {
	// SweepInterval is the cadence of the periodic low-stock sweep.
	SweepInterval time.Duration `env:"SCHEDULER_SWEEP_INTERVAL" envDefault:"10m"`

	// DailySweepAt is the local clock time of the daily full sweep.
	DailySweepAt ClockTime `env:"SCHEDULER_DAILY_SWEEP_AT" envDefault:"09:00"`

	// AlertReconcileAt is the local clock time at which alert state
	// is reconciled against current stock levels.
	AlertReconcileAt ClockTime `env:"SCHEDULER_ALERT_RECONCILE_AT" envDefault:"00:00"`
}

// ClockTime is a time of day in "HH:MM" form.
type ClockTime struct {
	Hour   int
	Minute int
}

// String returns the "HH:MM" representation.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *ClockTime) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid clock time: %s", text)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in clock time: %s", text)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in clock time: %s", text)
	}

	c.Hour = hour
	c.Minute = minute
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Next returns the next occurrence of the clock time strictly after now.
func (c ClockTime) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
