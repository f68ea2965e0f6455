package countdown

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"focusdial/internal/core/model"

	"github.com/charmbracelet/log"
)

// TimePlaceholder is the literal substring in encouragement templates
// replaced with the elapsed focus minutes.
const TimePlaceholder = "[time]"

// ToastSink displays a transient notification message.
type ToastSink interface {
	SetToast(visible bool, message string)
}

// AudioSink plays the notification chime from the start of the clip.
type AudioSink interface {
	Play() error
}

// MessageSource picks one encouragement template at random.
type MessageSource interface {
	Pick() string
}

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval   time.Duration
	NoticeInterval time.Duration
	ToastDuration  time.Duration
}

// Controller is the interval timer state machine. It owns all timer state
// and coordinates the countdown tick with the periodic encouragement
// notices fired during focus intervals.
type Controller struct {
	mu         sync.Mutex
	config     model.TimerConfig
	options    Config
	mode       Mode
	remaining  time.Duration
	running    bool
	closed     bool
	tickStop   chan struct{}
	noticeStop chan struct{}
	hideTimer  *time.Timer
	toast      ToastSink
	audio      AudioSink
	source     MessageSource
	events     []chan Event
}

// New creates a Controller in the idle focus state.
func New(config model.TimerConfig, options Config) *Controller {
	if config.FocusDuration <= 0 {
		config.FocusDuration = model.DefaultFocusDuration
	}
	if config.BreakDuration <= 0 {
		config.BreakDuration = model.DefaultBreakDuration
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NoticeInterval <= 0 {
		options.NoticeInterval = 30 * time.Second
	}
	if options.ToastDuration <= 0 {
		options.ToastDuration = 3 * time.Second
	}

	return &Controller{
		config:    config,
		options:   options,
		mode:      ModeFocus,
		remaining: config.FocusDuration,
	}
}

// SetToastSink injects the toast display.
func (controller *Controller) SetToastSink(sink ToastSink) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.toast = sink
}

// SetAudioSink injects the chime player.
func (controller *Controller) SetAudioSink(sink AudioSink) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.audio = sink
}

// SetMessageSource injects the encouragement template source.
func (controller *Controller) SetMessageSource(source MessageSource) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.source = source
}

// Subscribe registers a new observer channel. Subscribing to a closed
// controller yields an already-closed channel so consumers ranging over
// it terminate instead of blocking.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		close(ch)
		return ch
	}
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Start begins the countdown. No-op while already running. A notice
// ticker is only scheduled for focus intervals.
func (controller *Controller) Start() {
	controller.mu.Lock()
	if controller.running || controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.running = true
	tickStop := make(chan struct{})
	controller.tickStop = tickStop
	var noticeStop chan struct{}
	if controller.mode == ModeFocus {
		noticeStop = make(chan struct{})
		controller.noticeStop = noticeStop
	}
	event := controller.stateEventLocked()
	controller.mu.Unlock()

	controller.emit(event)
	go controller.runTicker(tickStop)
	if noticeStop != nil {
		go controller.runNotices(noticeStop)
	}
}

// Pause freezes the countdown, releasing both tickers. No-op while idle.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	if !controller.running {
		controller.mu.Unlock()
		return
	}
	controller.stopTimersLocked()
	event := controller.stateEventLocked()
	controller.mu.Unlock()

	controller.emit(event)
}

// Reset pauses and restores the full duration of the current mode.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	controller.stopTimersLocked()
	controller.remaining = controller.durationLocked(controller.mode)
	event := controller.stateEventLocked()
	controller.mu.Unlock()

	controller.emit(event)
}

// SwitchMode flips between focus and break, then resets for the new mode.
func (controller *Controller) SwitchMode() {
	controller.mu.Lock()
	controller.stopTimersLocked()
	controller.mode = controller.mode.Other()
	controller.remaining = controller.durationLocked(controller.mode)
	event := controller.stateEventLocked()
	controller.mu.Unlock()

	controller.emit(event)
}

// SetFocusDuration updates the focus interval length. Values below one
// minute are floored to one minute. An idle focus countdown is re-derived
// from the new duration; a running one is unaffected until the next
// reset or switch.
func (controller *Controller) SetFocusDuration(minutes int) {
	controller.setDuration(ModeFocus, minutes)
}

// SetBreakDuration updates the break interval length, with the same
// floor and reset rules as SetFocusDuration.
func (controller *Controller) SetBreakDuration(minutes int) {
	controller.setDuration(ModeBreak, minutes)
}

func (controller *Controller) setDuration(mode Mode, minutes int) {
	if minutes < 1 {
		minutes = 1
	}
	duration := time.Duration(minutes) * time.Minute

	controller.mu.Lock()
	if mode == ModeFocus {
		controller.config.FocusDuration = duration
	} else {
		controller.config.BreakDuration = duration
	}
	var event Event
	changed := false
	if !controller.running && controller.mode == mode {
		controller.remaining = duration
		event = controller.stateEventLocked()
		changed = true
	}
	controller.mu.Unlock()

	if changed {
		controller.emit(event)
	}
}

// Close releases the controller: stops tickers, cancels a pending toast
// hide, and closes all observer channels. The caller is expected to
// flush Durations to the settings store afterwards.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.stopTimersLocked()
	if controller.hideTimer != nil {
		controller.hideTimer.Stop()
		controller.hideTimer = nil
	}
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns a copy of the current timer state.
func (controller *Controller) Snapshot() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return State{
		Mode:      controller.mode,
		Remaining: controller.remaining,
		Running:   controller.running,
		Config:    controller.config,
	}
}

// Durations returns the current interval configuration for persistence.
func (controller *Controller) Durations() model.TimerConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config
}

func (controller *Controller) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			controller.tick()
		}
	}
}

func (controller *Controller) runNotices(stop chan struct{}) {
	ticker := time.NewTicker(controller.options.NoticeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			controller.notice()
		}
	}
}

// tick advances the countdown by one second. Reaching zero completes the
// cycle: pause, notify, switch mode.
func (controller *Controller) tick() {
	controller.mu.Lock()
	if !controller.running {
		controller.mu.Unlock()
		return
	}
	controller.remaining -= time.Second
	if controller.remaining > 0 {
		event := controller.progressEventLocked()
		controller.mu.Unlock()
		controller.emit(event)
		return
	}
	controller.remaining = 0
	label := controller.mode.Label()
	controller.stopTimersLocked()
	event := controller.stateEventLocked()
	controller.mu.Unlock()

	controller.emit(event)
	controller.notify(label + " session ended")
	controller.SwitchMode()
}

// notice emits one randomized encouragement. The running/focus guard is
// a double-check: the notice ticker only exists during focus intervals.
func (controller *Controller) notice() {
	controller.mu.Lock()
	if !controller.running || controller.mode != ModeFocus {
		controller.mu.Unlock()
		return
	}
	elapsedMinutes := int((controller.config.FocusDuration - controller.remaining).Minutes())
	source := controller.source
	controller.mu.Unlock()

	if source == nil {
		return
	}
	message := strings.ReplaceAll(source.Pick(), TimePlaceholder, strconv.Itoa(elapsedMinutes))
	controller.notify(message)
}

// notify plays the chime and shows the toast. A new notification replaces
// the visible message and restarts the hide window, so the latest message
// always gets the full display time.
func (controller *Controller) notify(message string) {
	controller.mu.Lock()
	audio := controller.audio
	toast := controller.toast
	event := Event{
		Type:    EventNotice,
		Mode:    controller.mode,
		Running: controller.running,
		Message: message,
		At:      time.Now(),
	}
	controller.mu.Unlock()

	if audio != nil {
		if err := audio.Play(); err != nil {
			log.Error("chime playback failed", "err", err)
		}
	}
	if toast != nil {
		toast.SetToast(true, message)
		// The hide window opens with the show call, so a slow chime
		// cannot eat into the visible time.
		controller.armHideTimer(toast)
	}
	controller.emit(event)
}

func (controller *Controller) armHideTimer(toast ToastSink) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.closed {
		return
	}
	if controller.hideTimer != nil {
		controller.hideTimer.Stop()
	}
	controller.hideTimer = time.AfterFunc(controller.options.ToastDuration, func() {
		toast.SetToast(false, "")
	})
}

func (controller *Controller) stopTimersLocked() {
	controller.running = false
	if controller.tickStop != nil {
		close(controller.tickStop)
		controller.tickStop = nil
	}
	if controller.noticeStop != nil {
		close(controller.noticeStop)
		controller.noticeStop = nil
	}
}

func (controller *Controller) durationLocked(mode Mode) time.Duration {
	if mode == ModeBreak {
		return controller.config.BreakDuration
	}
	return controller.config.FocusDuration
}

func (controller *Controller) stateEventLocked() Event {
	return Event{
		Type:      EventStateChange,
		Mode:      controller.mode,
		Running:   controller.running,
		Remaining: controller.remaining,
		Angle:     Angle(controller.durationLocked(controller.mode), controller.remaining),
		At:        time.Now(),
	}
}

func (controller *Controller) progressEventLocked() Event {
	event := controller.stateEventLocked()
	event.Type = EventProgress
	return event
}

func (controller *Controller) emit(event Event) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.emitLocked(event)
}

// emitLocked sends while holding the mutex so no send can race the
// channel close in Close, which empties the list under the same lock.
func (controller *Controller) emitLocked(event Event) {
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
