package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"impulse-scene/internal/commands"
	"impulse-scene/internal/config"
	"impulse-scene/internal/debug"
	"impulse-scene/internal/download"
	"impulse-scene/internal/env"
	"impulse-scene/internal/graphics"
	"impulse-scene/internal/logger"
	"impulse-scene/internal/physics"
	"impulse-scene/internal/scene"
	"impulse-scene/internal/terminal"
	"impulse-scene/internal/tint"
)

type runOptions struct {
	configPath string
	variant    string
	seed       int64
}

// runScene loads settings, builds the scene and controller, and blocks in the frame loop until
// the window closes.
func runScene(ro runOptions) error {
	loaded, envErr := env.Load(".env")
	settings, cfgErr := config.Load(ro.configPath)
	settings.ApplyEnv()
	if ro.variant != "" {
		settings.Variant = ro.variant
	}

	log := logger.NewAt(logger.LogFilePath, logger.ParseLevel(settings.LogLevel))
	defer log.Close()
	if envErr != nil {
		log.Warn("env: .env not loaded", zap.Error(envErr))
	} else if len(loaded) > 0 {
		log.Debug("env: loaded .env", zap.Strings("keys", loaded))
	}
	if cfgErr != nil {
		log.Error("config: using defaults", zap.Error(cfgErr))
	}

	v, err := settings.Resolve(settings.Variant)
	if err != nil {
		return err
	}
	log.Info("starting scene variant "+settings.Variant, zap.String("object", v.Object))

	modelPath := ""
	if v.Object == config.ObjectModel {
		ctx, cancel := context.WithTimeout(context.Background(), download.DefaultTimeout)
		path, cached, err := variantModel(ctx, v)
		cancel()
		if err != nil {
			log.Error("model unavailable, running without an object", zap.Error(err))
		} else {
			modelPath = path
			log.Info("model "+path, zap.Bool("cached", cached))
		}
	}

	seed := ro.seed
	if seed == 0 {
		seed = settings.Motion.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	scn, err := scene.New(v, modelPath, settings.Window.Width, settings.Window.Height, log)
	if err != nil {
		return err
	}
	ctrl := physics.New(scn.Target(), physics.Options{
		HalfExtent:      v.HalfExtent,
		Buffer:          settings.Motion.Buffer,
		FallStep:        settings.Motion.FallStep,
		ImpulseDuration: settings.Motion.ImpulseDuration(),
		Jitter:          settings.Motion.Jitter,
		LaunchY:         settings.Motion.LaunchY,
		NudgeSpeed:      settings.Motion.NudgeSpeed,
		Rand:            rng,
		OnStateChange: func(from, to physics.MotionState) {
			log.Debug("motion: "+from.String()+" -> "+to.String(), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
	placeAtBottom := v.StartAtBottom
	scn.OnObjectReady = func() {
		ctrl.SetTarget(scn.Target())
	}

	dbg := debug.New()
	dbg.SetShowFPS(settings.ShowFPS)
	dbg.Stats = func() []string {
		p, vel := ctrl.Target(), ctrl.Velocity()
		lines := []string{"State: " + ctrl.State().String()}
		if p != nil {
			pos := p.Position()
			lines = append(lines, fmt.Sprintf("Pos: %.2f, %.2f", pos.X, pos.Y))
		}
		return append(lines, fmt.Sprintf("Vel: %.2f, %.2f", vel.X, vel.Y))
	}

	creg := commands.NewRegistry(log.Writer())
	registerConsole(creg, &console{log: log, scn: scn, ctrl: ctrl, dbg: dbg, rng: rng})
	term := terminal.New(log, creg)
	log.Log("ESC: console (cmd help), F3: debug overlay, click: impulse")

	update := func(f graphics.Frame) {
		term.Update()
		if f.Resized {
			b := ctrl.Resize(scn.Resize(f.Width, f.Height))
			if !b.Valid() {
				log.Warn("viewport too small for the object", zap.Int("width", f.Width), zap.Int("height", f.Height))
			}
		}
		scn.Update(f.Dt)
		if placeAtBottom && ctrl.Target() != nil {
			ctrl.PlaceAtBottom()
			placeAtBottom = false
		}
		if !term.IsOpen() {
			if rl.IsKeyPressed(rl.KeyF3) {
				dbg.Toggle()
			}
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				m := rl.GetMousePosition()
				if ctrl.Click(m.X, m.Y, scn.Camera.Viewport(), scn.Camera) {
					scn.Tint.Random(rng, tint.DefaultDuration)
				}
			}
		}
		ctrl.Tick()
	}
	draw := func() {
		scn.Draw()
		term.Draw()
		dbg.Draw()
	}
	graphics.Run(graphics.Options{
		Title:     settings.Window.Title,
		Width:     settings.Window.Width,
		Height:    settings.Window.Height,
		TargetFPS: settings.Window.TargetFPS,
		Close:     scn.Unload,
	}, update, draw)
	return nil
}
