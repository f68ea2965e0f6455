package countdown

import (
	"fmt"
	"time"

	"focusdial/internal/core/model"
)

// State is a read-only snapshot of the controller.
type State struct {
	Mode      Mode
	Remaining time.Duration
	Running   bool
	Config    model.TimerConfig
}

// Total returns the full duration of the snapshot's mode.
func (state State) Total() time.Duration {
	if state.Mode == ModeBreak {
		return state.Config.BreakDuration
	}
	return state.Config.FocusDuration
}

// Angle returns the swept dial angle for the snapshot.
func (state State) Angle() float64 {
	return Angle(state.Total(), state.Remaining)
}

// Clock returns the snapshot's remaining time as MM:SS.
func (state State) Clock() string {
	return FormatClock(state.Remaining)
}

// FormatClock renders a duration as zero-padded MM:SS.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Angle maps elapsed time onto the dial arc in degrees, 0 at a fresh
// interval and 360 when the countdown is exhausted.
func Angle(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 360
	}
	angle := float64(total-remaining) / float64(total) * 360
	if angle < 0 {
		return 0
	}
	if angle > 360 {
		return 360
	}
	return angle
}
