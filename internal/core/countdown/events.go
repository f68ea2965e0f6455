package countdown

import "time"

// Mode selects which interval the controller is counting down.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Label returns the user-facing name of the mode.
func (mode Mode) Label() string {
	if mode == ModeBreak {
		return "Break"
	}
	return "Focus"
}

// Other returns the opposite mode.
func (mode Mode) Other() Mode {
	if mode == ModeFocus {
		return ModeBreak
	}
	return ModeFocus
}

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventNotice      EventType = "notice"
)

// Event represents a controller update for observers.
type Event struct {
	Type      EventType
	Mode      Mode
	Running   bool
	Remaining time.Duration
	Angle     float64
	Message   string
	At        time.Time
}
