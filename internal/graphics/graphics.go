package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window opened by Run.
type Options struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
	// Close runs after the loop ends while the GL context still exists, to free GPU resources.
	Close func()
}

// Frame is what the loop hands to update each frame.
type Frame struct {
	// Dt is the previous frame's duration in seconds.
	Dt float32
	// Resized is true when the window size changed since the last frame.
	Resized bool
	Width   int
	Height  int
}

// Run opens a resizable window and runs the main loop. Each frame it calls update, then begins
// drawing and calls draw. The first frame always reports Resized so callers size themselves
// from the real framebuffer. ESC is reserved for the console; close via the window button.
func Run(opts Options, update func(Frame), draw func()) {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.TargetFPS <= 0 {
		opts.TargetFPS = 60
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	defer rl.CloseWindow()
	if opts.Close != nil {
		defer opts.Close()
	}

	rl.SetExitKey(rl.KeyNull) // ESC toggles the console, not quit
	rl.SetTargetFPS(int32(opts.TargetFPS))

	first := true
	for !rl.WindowShouldClose() {
		update(Frame{
			Dt:      rl.GetFrameTime(),
			Resized: first || rl.IsWindowResized(),
			Width:   rl.GetScreenWidth(),
			Height:  rl.GetScreenHeight(),
		})
		first = false

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
