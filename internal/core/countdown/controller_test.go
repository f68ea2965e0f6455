package countdown

import (
	"errors"
	"sync"
	"testing"
	"time"

	"focusdial/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietOptions keeps the real tickers from ever firing so tests can
// drive tick and notice by hand.
func quietOptions() Config {
	return Config{
		TickInterval:   time.Hour,
		NoticeInterval: time.Hour,
		ToastDuration:  time.Hour,
	}
}

type fakeToast struct {
	mu       sync.Mutex
	visible  bool
	messages []string
}

func (toast *fakeToast) SetToast(visible bool, message string) {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	toast.visible = visible
	if visible {
		toast.messages = append(toast.messages, message)
	}
}

func (toast *fakeToast) shown() []string {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	return append([]string(nil), toast.messages...)
}

func (toast *fakeToast) isVisible() bool {
	toast.mu.Lock()
	defer toast.mu.Unlock()
	return toast.visible
}

type fakeAudio struct {
	mu    sync.Mutex
	plays int
	err   error
}

func (audio *fakeAudio) Play() error {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	audio.plays++
	return audio.err
}

func (audio *fakeAudio) playCount() int {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	return audio.plays
}

type fixedSource struct {
	template string
}

func (source fixedSource) Pick() string {
	return source.template
}

func newTestController(config model.TimerConfig) (*Controller, *fakeToast, *fakeAudio) {
	controller := New(config, quietOptions())
	toast := &fakeToast{}
	audio := &fakeAudio{}
	controller.SetToastSink(toast)
	controller.SetAudioSink(audio)
	return controller, toast, audio
}

func TestNewStartsIdleInFocus(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	state := controller.Snapshot()
	assert.Equal(t, ModeFocus, state.Mode)
	assert.False(t, state.Running)
	assert.Equal(t, 10*time.Minute, state.Remaining)
}

func TestTickCountsDownAndCompletesCycle(t *testing.T) {
	t.Parallel()

	controller, toast, audio := newTestController(model.TimerConfig{
		FocusDuration: 3 * time.Second,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	for i := 0; i < 3; i++ {
		controller.tick()
	}

	state := controller.Snapshot()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.False(t, state.Running)
	assert.Equal(t, 2*time.Minute, state.Remaining)
	require.Equal(t, []string{"Focus session ended"}, toast.shown())
	assert.Equal(t, 1, audio.playCount())
}

func TestFullFocusCycleSwitchesToBreak(t *testing.T) {
	t.Parallel()

	controller, toast, _ := newTestController(model.TimerConfig{
		FocusDuration: 1500 * time.Second,
		BreakDuration: 300 * time.Second,
	})
	defer controller.Close()

	controller.Start()
	for i := 0; i < 1500; i++ {
		controller.tick()
	}

	state := controller.Snapshot()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.Equal(t, 300*time.Second, state.Remaining)
	assert.Len(t, toast.shown(), 1, "exactly one cycle completion")
}

func TestBreakCompletionReturnsToFocus(t *testing.T) {
	t.Parallel()

	controller, toast, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Second,
	})
	defer controller.Close()

	controller.SwitchMode()
	controller.Start()
	controller.tick()
	controller.tick()

	state := controller.Snapshot()
	assert.Equal(t, ModeFocus, state.Mode)
	assert.Equal(t, 10*time.Minute, state.Remaining)
	require.Equal(t, []string{"Break session ended"}, toast.shown())
}

func TestPauseThenStartResumesWithoutReset(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Second,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	controller.tick()
	controller.tick()
	controller.tick()
	controller.Pause()

	state := controller.Snapshot()
	require.False(t, state.Running)
	require.Equal(t, 7*time.Second, state.Remaining)

	controller.Start()
	state = controller.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, 7*time.Second, state.Remaining)
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Second,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	controller.tick()
	controller.Start()

	state := controller.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, 9*time.Second, state.Remaining)
}

func TestResetRestoresFullDuration(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Second,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	controller.tick()
	controller.tick()
	controller.Reset()

	state := controller.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, 10*time.Second, state.Remaining)

	// Reset while already idle is still a reset.
	controller.Reset()
	state = controller.Snapshot()
	assert.Equal(t, 10*time.Second, state.Remaining)
}

func TestSwitchModeTogglesAndResets(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 3 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	controller.tick()
	controller.SwitchMode()

	state := controller.Snapshot()
	assert.Equal(t, ModeBreak, state.Mode)
	assert.False(t, state.Running)
	assert.Equal(t, 3*time.Minute, state.Remaining)

	controller.SwitchMode()
	state = controller.Snapshot()
	assert.Equal(t, ModeFocus, state.Mode)
	assert.Equal(t, 10*time.Minute, state.Remaining)
}

func TestSetFocusDurationWhileIdleRederivesRemaining(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{})
	defer controller.Close()

	controller.SetFocusDuration(10)

	state := controller.Snapshot()
	assert.Equal(t, 600*time.Second, state.Remaining)
	assert.Equal(t, 10*time.Minute, controller.Durations().FocusDuration)
}

func TestSetFocusDurationWhileRunningLeavesRemaining(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	controller.Start()
	controller.tick()
	controller.SetFocusDuration(20)

	state := controller.Snapshot()
	assert.Equal(t, 10*time.Minute-time.Second, state.Remaining)
	assert.Equal(t, 20*time.Minute, controller.Durations().FocusDuration)

	// The new duration applies on the next reset.
	controller.Reset()
	assert.Equal(t, 20*time.Minute, controller.Snapshot().Remaining)
}

func TestSetBreakDurationOnlyTouchesMatchingIdleMode(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Minute,
	})
	defer controller.Close()

	// Idle in focus mode: a break change must not move the countdown.
	controller.SetBreakDuration(7)
	assert.Equal(t, 10*time.Minute, controller.Snapshot().Remaining)
	assert.Equal(t, 7*time.Minute, controller.Durations().BreakDuration)

	controller.SwitchMode()
	controller.SetBreakDuration(4)
	assert.Equal(t, 4*time.Minute, controller.Snapshot().Remaining)
}

func TestDurationSettersFloorAtOneMinute(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{})
	defer controller.Close()

	controller.SetFocusDuration(0)
	controller.SetBreakDuration(-5)

	config := controller.Durations()
	assert.Equal(t, time.Minute, config.FocusDuration)
	assert.Equal(t, time.Minute, config.BreakDuration)
}

func TestNoticeSubstitutesElapsedMinutes(t *testing.T) {
	t.Parallel()

	controller, toast, audio := newTestController(model.TimerConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	})
	defer controller.Close()
	controller.SetMessageSource(fixedSource{template: "You've focused for [time] minutes!"})

	controller.Start()
	controller.mu.Lock()
	controller.remaining = 13 * time.Minute
	controller.mu.Unlock()

	controller.notice()

	require.Equal(t, []string{"You've focused for 12 minutes!"}, toast.shown())
	assert.Equal(t, 1, audio.playCount())
}

func TestNoticeWithoutPlaceholderPassesThrough(t *testing.T) {
	t.Parallel()

	controller, toast, _ := newTestController(model.TimerConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	})
	defer controller.Close()
	controller.SetMessageSource(fixedSource{template: "Eyes on the prize!"})

	controller.Start()
	controller.notice()

	require.Equal(t, []string{"Eyes on the prize!"}, toast.shown())
}

func TestNoticeSkippedWhenIdleOrInBreak(t *testing.T) {
	t.Parallel()

	controller, toast, _ := newTestController(model.TimerConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	})
	defer controller.Close()
	controller.SetMessageSource(fixedSource{template: "nope"})

	// Idle.
	controller.notice()
	assert.Empty(t, toast.shown())

	// Running in break mode.
	controller.SwitchMode()
	controller.Start()
	controller.notice()
	assert.Empty(t, toast.shown())
}

func TestPlaybackFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	controller, toast, audio := newTestController(model.TimerConfig{
		FocusDuration: 2 * time.Second,
		BreakDuration: 5 * time.Minute,
	})
	defer controller.Close()
	audio.err = errors.New("no output device")

	controller.Start()
	controller.tick()
	controller.tick()

	// The toast still shows even though the chime failed.
	require.Equal(t, []string{"Focus session ended"}, toast.shown())
	assert.Equal(t, ModeBreak, controller.Snapshot().Mode)
}

func TestNotificationRestartsHideWindow(t *testing.T) {
	t.Parallel()

	controller := New(model.TimerConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}, Config{
		TickInterval:   time.Hour,
		NoticeInterval: time.Hour,
		ToastDuration:  60 * time.Millisecond,
	})
	defer controller.Close()
	toast := &fakeToast{}
	controller.SetToastSink(toast)

	controller.notify("first")
	time.Sleep(20 * time.Millisecond)
	controller.notify("second")

	// Still inside the second message's window.
	time.Sleep(20 * time.Millisecond)
	assert.True(t, toast.isVisible())

	// Well past the restarted window.
	time.Sleep(120 * time.Millisecond)
	assert.False(t, toast.isVisible())
	assert.Equal(t, []string{"first", "second"}, toast.shown())
}

func TestCloseRacingMutatorsDoesNotPanic(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Minute,
	})
	for i := 0; i < 200; i++ {
		controller.Subscribe(1)
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				controller.Reset()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		controller.Close()
	}()

	close(start)
	wg.Wait()

	// Mutating a closed controller must not panic either.
	controller.Reset()
	assert.False(t, controller.Snapshot().Running)
}

func TestSubscribeAfterCloseYieldsClosedChannel(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Minute,
		BreakDuration: 2 * time.Minute,
	})
	controller.Close()

	events := controller.Subscribe(4)
	_, open := <-events
	assert.False(t, open, "consumers ranging the channel must terminate")
}

type slowAudio struct {
	delay time.Duration
}

func (audio slowAudio) Play() error {
	time.Sleep(audio.delay)
	return nil
}

func TestHideWindowOpensWithTheShowCall(t *testing.T) {
	t.Parallel()

	controller := New(model.TimerConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}, Config{
		TickInterval:   time.Hour,
		NoticeInterval: time.Hour,
		ToastDuration:  60 * time.Millisecond,
	})
	defer controller.Close()
	toast := &fakeToast{}
	controller.SetToastSink(toast)
	controller.SetAudioSink(slowAudio{delay: 100 * time.Millisecond})

	// Playback outlasts the toast duration; the message must still get
	// its full window and then hide.
	controller.notify("done")
	assert.True(t, toast.isVisible())

	time.Sleep(150 * time.Millisecond)
	assert.False(t, toast.isVisible())
}

func TestSubscribeDeliversStateChanges(t *testing.T) {
	t.Parallel()

	controller, _, _ := newTestController(model.TimerConfig{
		FocusDuration: 10 * time.Second,
		BreakDuration: 2 * time.Minute,
	})

	events := controller.Subscribe(8)
	controller.Start()

	event := <-events
	assert.Equal(t, EventStateChange, event.Type)
	assert.True(t, event.Running)
	assert.Equal(t, ModeFocus, event.Mode)

	controller.tick()
	event = <-events
	assert.Equal(t, EventProgress, event.Type)
	assert.Equal(t, 9*time.Second, event.Remaining)

	controller.Close()
	_, open := <-events
	assert.False(t, open, "Close closes observer channels")
}
