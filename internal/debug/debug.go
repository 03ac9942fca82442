package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 10
)

// Debug holds the on-screen overlay: FPS, heap and whatever Stats reports (motion state,
// position, velocity). Everything is off until enabled.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	// Stats returns extra lines drawn under FPS/Mem. Nil means none.
	Stats func() []string

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Toggle flips the whole overlay (FPS, Mem and Stats) and returns the new visibility.
func (d *Debug) Toggle() bool {
	on := !(d.ShowFPS || d.ShowMemAlloc || d.ShowStats)
	d.ShowFPS, d.ShowMemAlloc, d.ShowStats = on, on, on
	d.lastFpsText, d.lastMemText, d.lastStats = "", "", nil
	return on
}

// Draw renders any enabled overlays at the top-right. Call last in the draw loop.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") || (d.ShowStats && d.lastStats == nil) {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y)
		y += lineHeight
	}
	if d.ShowStats && d.Stats != nil {
		if update {
			d.lastStats = d.Stats()
		}
		for _, line := range d.lastStats {
			drawRight(line, y)
			y += lineHeight
		}
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	x := int32(rl.GetScreenWidth()) - w - padding
	rl.DrawText(text, x, y, fontSize, rl.Green)
}
