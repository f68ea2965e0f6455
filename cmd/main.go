package main

import (
	"focusdial/internal/audio"
	"focusdial/internal/core/countdown"
	"focusdial/internal/messages"
	"focusdial/internal/platform"
	"focusdial/internal/storage"
	"focusdial/internal/ui/timerview"
	"focusdial/internal/ui/tray"
	"focusdial/resources"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/charmbracelet/log"
)

const appName = "FocusDial"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Error("another instance is already running")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, err := storage.LoadTimerConfig(appName)
	if err != nil {
		log.Warn("falling back to default durations", "err", err)
	}

	fyneApp := app.NewWithID("io.focusdial.app")
	fyneApp.SetIcon(resources.MustLogo("focusdial.png"))

	controller := countdown.New(config, countdown.Config{})
	controller.SetMessageSource(messages.NewSource())
	controller.SetAudioSink(audio.NewPlayer(resources.MustSound("chime.wav")))

	view := timerview.New(fyneApp, controller)
	controller.SetToastSink(view.Toast())

	view.Window().SetCloseIntercept(func() {
		fyneApp.Quit()
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		wireTray(desktopApp, fyneApp.Quit, controller, view)
	}

	view.Show()
	fyneApp.Run()

	controller.Close()
	if err := storage.SaveTimerConfig(appName, controller.Durations()); err != nil {
		log.Error("persist durations", "err", err)
	}
}

func wireTray(desktopApp desktop.App, quit func(), controller *countdown.Controller, view *timerview.View) {
	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShow: func() {
			view.Window().Show()
		},
		OnToggleRun: func() {
			if controller.Snapshot().Running {
				controller.Pause()
			} else {
				controller.Start()
			}
		},
		OnReset:      controller.Reset,
		OnSwitchMode: controller.SwitchMode,
		OnQuit: func() {
			quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.MustLogo("focusdial.png"))

	state := controller.Snapshot()
	trayManager.SetStatus(tray.Status(state.Mode.Label(), state.Clock()))

	events := controller.Subscribe(8)
	go func() {
		for event := range events {
			if event.Type == countdown.EventNotice {
				continue
			}
			status := tray.Status(event.Mode.Label(), countdown.FormatClock(event.Remaining))
			running := event.Running
			trayManager.SetStatus(status)
			trayManager.SetRunning(running)
		}
	}()
}
