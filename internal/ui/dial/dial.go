// Package dial renders the circular countdown indicator.
package dial

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var trackColor = color.NRGBA{R: 222, G: 222, B: 222, A: 255}

const (
	ringThickness = 0.18
	minSide       = float32(220)
)

// Dial is a ring swept clockwise from 12 o'clock as time elapses.
type Dial struct {
	widget.BaseWidget

	mu     sync.Mutex
	angle  float64
	accent color.NRGBA
}

// New creates a dial with zero sweep and the given accent color.
func New(accent color.NRGBA) *Dial {
	dial := &Dial{accent: accent}
	dial.ExtendBaseWidget(dial)
	return dial
}

// SetProgress updates the swept angle in degrees (0-360).
func (dial *Dial) SetProgress(angle float64) {
	dial.mu.Lock()
	dial.angle = angle
	dial.mu.Unlock()
	dial.Refresh()
}

// SetAccent changes the sweep color.
func (dial *Dial) SetAccent(accent color.NRGBA) {
	dial.mu.Lock()
	dial.accent = accent
	dial.mu.Unlock()
	dial.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (dial *Dial) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(dial.draw)
	return &renderer{dial: dial, raster: raster}
}

func (dial *Dial) draw(width, height int) image.Image {
	dial.mu.Lock()
	angle := dial.angle
	accent := dial.accent
	dial.mu.Unlock()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	side := width
	if height < side {
		side = height
	}
	if side <= 0 {
		return img
	}

	centerX := float64(width) / 2
	centerY := float64(height) / 2
	outer := float64(side)/2 - 4
	inner := outer * (1 - ringThickness)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY
			dist := math.Hypot(dx, dy)
			if dist < inner || dist > outer {
				continue
			}
			// Degrees clockwise from 12 o'clock.
			degrees := math.Atan2(dx, -dy) * 180 / math.Pi
			if degrees < 0 {
				degrees += 360
			}
			if degrees <= angle {
				img.SetNRGBA(x, y, accent)
			} else {
				img.SetNRGBA(x, y, trackColor)
			}
		}
	}
	return img
}

type renderer struct {
	dial   *Dial
	raster *canvas.Raster
}

func (r *renderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *renderer) MinSize() fyne.Size {
	return fyne.NewSize(minSide, minSide)
}

func (r *renderer) Refresh() {
	canvas.Refresh(r.raster)
}

func (r *renderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *renderer) Destroy() {}
