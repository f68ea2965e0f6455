package model

import "time"

// Default interval lengths used until the settings store says otherwise.
const (
	DefaultFocusDuration = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// TimerConfig holds the two interval lengths the countdown controller
// alternates between. Durations are whole seconds.
type TimerConfig struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
}

// DefaultTimerConfig returns the stock 25/5 configuration.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		FocusDuration: DefaultFocusDuration,
		BreakDuration: DefaultBreakDuration,
	}
}
