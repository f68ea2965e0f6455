// Package timerview builds the single timer screen: the countdown dial,
// the clock, and the control row.
package timerview

import (
	"fmt"
	"image/color"

	"focusdial/internal/core/countdown"
	"focusdial/internal/ui/dial"
	"focusdial/internal/ui/toast"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	focusAccent = color.NRGBA{R: 224, G: 82, B: 82, A: 255}
	breakAccent = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	clockColor  = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
)

// View is the main window of the app.
type View struct {
	window     fyne.Window
	controller *countdown.Controller

	progressDial *dial.Dial
	clockLabel   *canvas.Text
	modeLabel    *canvas.Text
	startButton  *widget.Button
	focusValue   *widget.Label
	breakValue   *widget.Label
	banner       *toast.Banner
}

// New builds the timer screen for the given controller.
func New(app fyne.App, controller *countdown.Controller) *View {
	window := app.NewWindow("FocusDial")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	state := controller.Snapshot()

	view := &View{
		window:       window,
		controller:   controller,
		progressDial: dial.New(accentColor(state.Mode)),
		banner:       toast.New(),
	}

	view.clockLabel = canvas.NewText(state.Clock(), clockColor)
	view.clockLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.clockLabel.TextSize = 40
	view.clockLabel.Alignment = fyne.TextAlignCenter

	view.modeLabel = canvas.NewText(state.Mode.Label(), accentColor(state.Mode))
	view.modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.modeLabel.TextSize = 18
	view.modeLabel.Alignment = fyne.TextAlignCenter

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.controller.Snapshot().Running {
			view.controller.Pause()
		} else {
			view.controller.Start()
		}
	})
	view.startButton.Importance = widget.HighImportance

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), controller.Reset)
	switchButton := widget.NewButtonWithIcon("Switch", theme.ViewRefreshIcon(), controller.SwitchMode)

	view.focusValue = widget.NewLabel("")
	view.breakValue = widget.NewLabel("")
	view.refreshDurationLabels()

	focusRow := durationRow("Focus", view.focusValue,
		func() { view.adjustFocus(-1) },
		func() { view.adjustFocus(+1) },
	)
	breakRow := durationRow("Break", view.breakValue,
		func() { view.adjustBreak(-1) },
		func() { view.adjustBreak(+1) },
	)

	controls := container.NewHBox(
		layout.NewSpacer(),
		view.startButton,
		resetButton,
		switchButton,
		layout.NewSpacer(),
	)

	dialStack := container.NewStack(
		view.progressDial,
		container.NewCenter(container.NewVBox(view.modeLabel, view.clockLabel)),
	)

	content := container.NewBorder(
		view.banner.CanvasObject(),
		container.NewVBox(controls, focusRow, breakRow),
		nil, nil,
		dialStack,
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(340, 460))

	return view
}

// Toast returns the view's toast sink.
func (view *View) Toast() *toast.Banner {
	return view.banner
}

// Show displays the window and starts consuming controller events.
func (view *View) Show() {
	events := view.controller.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				view.apply(event)
			})
		}
	}()
	view.window.Show()
}

// Window exposes the underlying Fyne window.
func (view *View) Window() fyne.Window {
	return view.window
}

func (view *View) apply(event countdown.Event) {
	switch event.Type {
	case countdown.EventStateChange, countdown.EventProgress:
		view.clockLabel.Text = countdown.FormatClock(event.Remaining)
		view.clockLabel.Refresh()
		view.modeLabel.Text = event.Mode.Label()
		view.modeLabel.Color = accentColor(event.Mode)
		view.modeLabel.Refresh()
		view.progressDial.SetAccent(accentColor(event.Mode))
		view.progressDial.SetProgress(event.Angle)
		view.setRunning(event.Running)
		view.refreshDurationLabels()
	case countdown.EventNotice:
		// The banner is driven directly through the toast sink.
	}
}

func (view *View) setRunning(running bool) {
	if running {
		view.startButton.SetIcon(theme.MediaPauseIcon())
		view.startButton.SetText("Pause")
		return
	}
	view.startButton.SetIcon(theme.MediaPlayIcon())
	view.startButton.SetText("Start")
}

func (view *View) adjustFocus(delta int) {
	minutes := int(view.controller.Durations().FocusDuration.Minutes())
	view.controller.SetFocusDuration(minutes + delta)
	view.refreshDurationLabels()
}

func (view *View) adjustBreak(delta int) {
	minutes := int(view.controller.Durations().BreakDuration.Minutes())
	view.controller.SetBreakDuration(minutes + delta)
	view.refreshDurationLabels()
}

func (view *View) refreshDurationLabels() {
	config := view.controller.Durations()
	view.focusValue.SetText(fmt.Sprintf("%d min", int(config.FocusDuration.Minutes())))
	view.breakValue.SetText(fmt.Sprintf("%d min", int(config.BreakDuration.Minutes())))
}

func durationRow(name string, value *widget.Label, onMinus, onPlus func()) *fyne.Container {
	minus := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), onMinus)
	plus := widget.NewButtonWithIcon("", theme.ContentAddIcon(), onPlus)
	return container.NewHBox(
		widget.NewLabel(name),
		layout.NewSpacer(),
		minus,
		value,
		plus,
	)
}

// accentColor is a pure function of the mode.
func accentColor(mode countdown.Mode) color.NRGBA {
	if mode == countdown.ModeBreak {
		return breakAccent
	}
	return focusAccent
}
