// Package toast shows transient notification banners inside the main
// window. Visibility timing is owned by the countdown controller; the
// banner only renders whatever it was last told.
package toast

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Banner is an in-window toast implementing the controller's ToastSink.
type Banner struct {
	label      *canvas.Text
	background *canvas.Rectangle
	root       *fyne.Container
}

// New creates a hidden banner.
func New() *Banner {
	label := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = 14

	background := canvas.NewRectangle(color.NRGBA{R: 40, G: 40, B: 40, A: 230})
	background.CornerRadius = 10

	root := container.NewStack(background, container.NewPadded(label))
	root.Hide()

	return &Banner{
		label:      label,
		background: background,
		root:       root,
	}
}

// CanvasObject returns the banner for embedding in a layout.
func (banner *Banner) CanvasObject() fyne.CanvasObject {
	return banner.root
}

// SetToast shows or hides the banner. Safe to call from timer
// goroutines.
func (banner *Banner) SetToast(visible bool, message string) {
	fyne.Do(func() {
		if !visible {
			banner.root.Hide()
			return
		}
		banner.label.Text = message
		banner.label.Refresh()
		banner.root.Show()
	})
}
