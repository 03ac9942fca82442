package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the settings file, relative to the process working directory.
const ConfigPath = "config/scene.yaml"

// Environment overrides, applied after the file is read.
const (
	EnvVariant  = "IMPULSE_VARIANT"
	EnvLogLevel = "IMPULSE_LOG_LEVEL"
)

// ErrUnknownVariant is returned when a variant name has no entry in Settings.Variants.
var ErrUnknownVariant = errors.New("unknown variant")

// Settings is everything the scene reads at startup.
type Settings struct {
	Window   Window             `yaml:"window"`
	Motion   Motion             `yaml:"motion"`
	LogLevel string             `yaml:"log_level"`
	ShowFPS  bool               `yaml:"show_fps"`
	Variant  string             `yaml:"variant"`
	Base     Variant            `yaml:"base"`
	Variants map[string]Variant `yaml:"variants"`
}

// Window is the initial window. It can be resized at runtime.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
}

// Motion tunes the controller. Zero values fall back to the controller defaults.
type Motion struct {
	Buffer     float32 `yaml:"buffer"`
	FallStep   float32 `yaml:"fall_step"`
	ImpulseMS  int     `yaml:"impulse_ms"`
	Jitter     float32 `yaml:"jitter"`
	LaunchY    float32 `yaml:"launch_y"`
	NudgeSpeed float32 `yaml:"nudge_speed"`
	Seed       int64   `yaml:"seed,omitempty"`
}

// ImpulseDuration returns ImpulseMS as a duration.
func (m Motion) ImpulseDuration() time.Duration {
	return time.Duration(m.ImpulseMS) * time.Millisecond
}

// Variant describes one scene: what object is shown and how the camera frames it. A variant in
// Settings.Variants only needs the fields that differ from Settings.Base.
type Variant struct {
	// Object is "cube" or "model".
	Object     string  `yaml:"object,omitempty"`
	Model      string  `yaml:"model,omitempty"`
	ModelURL   string  `yaml:"model_url,omitempty"`
	ModelScale float32 `yaml:"model_scale,omitempty"`
	HalfExtent float32 `yaml:"half_extent,omitempty"`
	StartZ     float32 `yaml:"start_z,omitempty"`
	Color      string  `yaml:"color,omitempty"`
	Background string  `yaml:"background,omitempty"`

	FrustumSize float32 `yaml:"frustum_size,omitempty"`
	CameraZ     float32 `yaml:"camera_z,omitempty"`
	Zoom        float32 `yaml:"zoom,omitempty"`

	StartAtBottom bool `yaml:"start_at_bottom,omitempty"`
	Lit           bool `yaml:"lit,omitempty"`
}

const (
	ObjectCube  = "cube"
	ObjectModel = "model"
)

// Default returns the three stock scenes: a green cube, a local bunny model and a remote
// helmet model.
func Default() Settings {
	return Settings{
		Window: Window{
			Title:     "impulse scene",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Motion: Motion{
			Buffer:     1.5,
			FallStep:   0.1,
			ImpulseMS:  1000,
			Jitter:     0.25,
			LaunchY:    1,
			NudgeSpeed: 0.1,
		},
		LogLevel: "info",
		Variant:  "cube",
		Base: Variant{
			Object:      ObjectCube,
			ModelScale:  1,
			HalfExtent:  0.5,
			Color:       "#00ff00",
			Background:  "#000000",
			FrustumSize: 20,
			CameraZ:     1,
			Zoom:        1,
		},
		Variants: map[string]Variant{
			"cube": {},
			"bunny": {
				Object:     ObjectModel,
				Model:      "assets/models/bunny-model.glb",
				StartZ:     0.1,
				Color:      "#ffffff",
				Background: "#ffffff",
			},
			"helmet": {
				Object:     ObjectModel,
				ModelURL:   "https://threejs.org/examples/models/gltf/DamagedHelmet/glTF-Binary/DamagedHelmet.glb",
				ModelScale: 0.5,
				Color:      "#ffffff",
				Background: "#ffffff",
				CameraZ:    10,
				Lit:        true,
			},
		},
	}
}

// Load reads settings from path. A missing file yields Default() and no error. A file that does
// not parse yields Default() and the parse error. Fields the file leaves out keep their defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating its directory if needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ApplyEnv overrides the variant and log level from the environment when set.
func (s *Settings) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvVariant)); v != "" {
		s.Variant = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		s.LogLevel = v
	}
}

// VariantNames returns the configured variant names, sorted.
func (s Settings) VariantNames() []string {
	names := make([]string, 0, len(s.Variants))
	for n := range s.Variants {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the named variant layered over Base: every non-zero field of the variant wins.
// An empty name resolves Settings.Variant.
func (s Settings) Resolve(name string) (Variant, error) {
	if name == "" {
		name = s.Variant
	}
	override, ok := s.Variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("config: %w %q (have %s)", ErrUnknownVariant, name, strings.Join(s.VariantNames(), ", "))
	}
	v := s.Base
	if err := copier.CopyWithOption(&v, &override, copier.Option{IgnoreEmpty: true}); err != nil {
		return Variant{}, fmt.Errorf("config: %w", err)
	}
	return v, nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa" (the leading # and a 0x prefix are optional) into
// RGBA components. Alpha defaults to 255.
func ParseColor(s string) (r, g, b, a uint8, err error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 && len(h) != 8 {
		return 0, 0, 0, 0, fmt.Errorf("config: bad color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("config: bad color %q: %w", s, err)
	}
	return uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n), nil
}
