package main

import (
	"errors"
	"fmt"
	"math/rand"

	"impulse-scene/internal/assets"
	"impulse-scene/internal/commands"
	"impulse-scene/internal/config"
	"impulse-scene/internal/debug"
	"impulse-scene/internal/logger"
	"impulse-scene/internal/physics"
	"impulse-scene/internal/scene"
	"impulse-scene/internal/tint"
)

// modelRoot holds local and downloaded models.
const modelRoot = "assets/models"

// console is what the in-game "cmd ..." lines act on.
type console struct {
	log  *logger.Logger
	scn  *scene.Scene
	ctrl *physics.Controller
	dbg  *debug.Debug
	rng  *rand.Rand
}

// registerConsole adds the in-game commands: impulse, nudge, bottom, tint, debug, models and help.
func registerConsole(reg *commands.Registry, c *console) {
	impulseFS := commands.NewFlagSet("impulse")
	x := impulseFS.Float64("x", -1, "screen x in pixels (-1 = centre)")
	y := impulseFS.Float64("y", -1, "screen y in pixels (-1 = centre)")
	reg.Register("impulse", "click at a screen point", impulseFS, func() error {
		vp := c.scn.Camera.Viewport()
		px, py := float32(*x), float32(*y)
		if px < 0 {
			px = vp.Width / 2
		}
		if py < 0 {
			py = vp.Height / 2
		}
		if !c.ctrl.Click(px, py, vp, c.scn.Camera) {
			return errors.New("impulse: no object")
		}
		c.scn.Tint.Random(c.rng, tint.DefaultDuration)
		v := c.ctrl.Velocity()
		c.log.Log(fmt.Sprintf("impulse at %.0f,%.0f: velocity %.3f, %.3f", px, py, v.X, v.Y))
		return nil
	})

	reg.Register("nudge", "give the object a small random drift", nil, func() error {
		if c.ctrl.Target() == nil {
			return errors.New("nudge: no object")
		}
		v := c.ctrl.Nudge(c.rng)
		c.log.Log(fmt.Sprintf("nudge: velocity %.3f, %.3f", v.X, v.Y))
		return nil
	})

	reg.Register("bottom", "drop the object onto the floor", nil, func() error {
		if c.ctrl.Target() == nil {
			return errors.New("bottom: no object")
		}
		c.ctrl.PlaceAtBottom()
		return nil
	})

	tintFS := commands.NewFlagSet("tint")
	color := tintFS.String("color", "", "#rrggbb (empty = random)")
	reg.Register("tint", "change the object colour", tintFS, func() error {
		if *color == "" {
			r, g, b := c.scn.Tint.Random(c.rng, tint.DefaultDuration)
			c.log.Log(fmt.Sprintf("tint: #%02x%02x%02x", r, g, b))
			return nil
		}
		r, g, b, _, err := config.ParseColor(*color)
		if err != nil {
			return err
		}
		c.scn.Tint.To(r, g, b, tint.DefaultDuration)
		return nil
	})

	reg.Register("debug", "toggle the debug overlay", nil, func() error {
		if c.dbg.Toggle() {
			c.log.Log("debug overlay on")
		} else {
			c.log.Log("debug overlay off")
		}
		return nil
	})

	reg.Register("models", "list model files under "+modelRoot, nil, func() error {
		list, err := assets.ScanDir(assets.Resolve(modelRoot))
		if err != nil {
			return err
		}
		if len(list) == 0 {
			c.log.Log("no models under " + modelRoot)
		}
		for _, m := range list {
			c.log.Log("  " + m)
		}
		return nil
	})

	reg.Register("help", "list commands", nil, func() error {
		reg.Usage()
		return nil
	})
}
