// Package scene is the raylib side of the program: it owns the camera, the one object and its
// colour, and exposes the object's position to the motion controller.
package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"impulse-scene/internal/camera"
	"impulse-scene/internal/config"
	"impulse-scene/internal/logger"
	"impulse-scene/internal/physics"
	"impulse-scene/internal/primitives"
	"impulse-scene/internal/tint"
)

// Scene holds an orthographic camera and a single object (cube or loaded model). Update runs
// deferred asset loading and the tint tween; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera *camera.Ortho
	Tint   *tint.Tint

	variant    config.Variant
	background rl.Color
	alpha      uint8
	prims      *primitives.Registry
	log        *logger.Logger

	pos       physics.Vec3
	hasObject bool

	model        rl.Model
	modelLoaded  bool
	modelPending bool   // true = path known, GPU load deferred until first Update (after window/GL exists)
	modelPath    string // set when pending

	// OnObjectReady is called once when the object becomes available to move.
	OnObjectReady func()
}

// New builds a scene for variant sized to a width×height viewport. A cube is ready at once; a
// model is loaded on the first Update so the GL context exists. modelPath overrides
// variant.Model (e.g. a downloaded file); pass "" to use the variant's own path.
func New(v config.Variant, modelPath string, width, height int, log *logger.Logger) (*Scene, error) {
	r, g, b, a, err := config.ParseColor(v.Color)
	if err != nil {
		return nil, fmt.Errorf("scene: color: %w", err)
	}
	br, bg, bb, ba, err := config.ParseColor(v.Background)
	if err != nil {
		return nil, fmt.Errorf("scene: background: %w", err)
	}
	cam := camera.New(v.FrustumSize, v.CameraZ, width, height)
	cam.Zoom = v.Zoom
	s := &Scene{
		Camera:     cam,
		Tint:       tint.New(r, g, b),
		variant:    v,
		background: rl.NewColor(br, bg, bb, ba),
		alpha:      a,
		prims:      primitives.NewRegistry(),
		log:        log,
		pos:        physics.Vec3{Z: v.StartZ},
	}
	switch v.Object {
	case config.ObjectModel:
		if modelPath == "" {
			modelPath = v.Model
		}
		if modelPath == "" {
			s.log.Warn("scene: model variant has no model path")
			break
		}
		s.modelPath = modelPath
		s.modelPending = true
	default:
		s.hasObject = true
	}
	return s, nil
}

// HasObject reports whether there is something on screen to move.
func (s *Scene) HasObject() bool {
	return s.hasObject
}

// Position returns the object's position.
func (s *Scene) Position() physics.Vec3 {
	return s.pos
}

// SetPosition moves the object.
func (s *Scene) SetPosition(p physics.Vec3) {
	s.pos = p
}

// Target returns the scene as a motion target, or nil while there is no object. The nil is an
// untyped interface so the controller's nil check holds.
func (s *Scene) Target() physics.Target {
	if !s.hasObject {
		return nil
	}
	return s
}

// Resize updates the camera projection for a new viewport and returns the frustum the
// boundaries are derived from. The camera must be resized before the boundaries.
func (s *Scene) Resize(width, height int) physics.Frustum {
	s.Camera.Resize(width, height)
	return s.Camera.Frustum()
}

// ensureModelLoaded runs the first time Update sees a pending model. A failed load is logged
// once and not retried; the scene stays empty.
func (s *Scene) ensureModelLoaded() {
	if !s.modelPending {
		return
	}
	path := s.modelPath
	s.modelPending = false
	s.modelPath = ""

	model := rl.LoadModel(path)
	if !rl.IsModelValid(model) {
		s.log.Error("scene: model load failed", zap.String("path", path))
		return
	}
	s.model = model
	s.modelLoaded = true
	if s.variant.Lit && !s.prims.LightModel(&s.model) {
		s.log.Warn("scene: lit shader unavailable, using default shading")
	}
	s.hasObject = true
	s.log.Info("scene: model loaded", zap.String("path", path), zap.Int32("meshes", model.MeshCount))
	if s.OnObjectReady != nil {
		s.OnObjectReady()
	}
}

// Update runs once per frame before the controller tick.
func (s *Scene) Update(dt float32) {
	s.ensureModelLoaded()
	s.Tint.Update(dt)
}

// Background returns the clear colour.
func (s *Scene) Background() rl.Color {
	return s.background
}

// raylibCamera converts the orthographic camera for BeginMode3D. In orthographic mode raylib
// reads Fovy as the visible world height.
func (s *Scene) raylibCamera() rl.Camera3D {
	c := s.Camera
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position.X, c.Position.Y, c.Position.Z),
		Target:     rl.NewVector3(c.Target.X, c.Target.Y, c.Target.Z),
		Up:         rl.NewVector3(c.Up.X, c.Up.Y, c.Up.Z),
		Fovy:       c.Height(),
		Projection: rl.CameraOrthographic,
	}
}

// Draw clears to the background colour and renders the object.
func (s *Scene) Draw() {
	rl.ClearBackground(s.background)
	if !s.hasObject {
		return
	}
	cam := s.raylibCamera()
	s.prims.SetView([3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z})
	r, g, b := s.Tint.RGB()
	color := rl.NewColor(r, g, b, s.alpha)
	pos := [3]float32{s.pos.X, s.pos.Y, s.pos.Z}

	rl.BeginMode3D(cam)
	if s.modelLoaded {
		s.prims.Model(s.model, pos, s.variant.ModelScale, color)
	} else {
		side := 2 * s.variant.HalfExtent
		s.prims.Cube(pos, [3]float32{side, side, side}, color, s.variant.Lit)
	}
	rl.EndMode3D()
}

// Unload frees the model and primitive GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	if s.modelLoaded {
		rl.UnloadModel(s.model)
		s.modelLoaded = false
	}
	s.prims.Unload()
}
