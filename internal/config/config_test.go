package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "scene.yaml")
	want := Default()
	want.Variant = "helmet"
	want.Motion.Seed = 99

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	data := []byte("variant: bunny\nmotion:\n  fall_step: 0.2\nvariants:\n  bunny:\n    model: other.glb\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bunny", s.Variant)
	assert.Equal(t, float32(0.2), s.Motion.FallStep)
	assert.Equal(t, 1000, s.Motion.ImpulseMS)
	assert.Equal(t, 1280, s.Window.Width)
	assert.Equal(t, []string{"bunny", "cube", "helmet"}, s.VariantNames())

	v, err := s.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "other.glb", v.Model)
	// the file's bunny entry replaced the stock one, so object falls back to the base cube
	assert.Equal(t, ObjectCube, v.Object)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0644))

	s, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
	assert.Equal(t, Default(), s)
}

func TestResolveLayersVariantOverBase(t *testing.T) {
	s := Default()

	cube, err := s.Resolve("cube")
	require.NoError(t, err)
	assert.Equal(t, s.Base, cube)

	helmet, err := s.Resolve("helmet")
	require.NoError(t, err)
	assert.Equal(t, ObjectModel, helmet.Object)
	assert.Equal(t, float32(0.5), helmet.ModelScale)
	assert.Equal(t, float32(10), helmet.CameraZ)
	assert.True(t, helmet.Lit)
	// untouched fields come from Base
	assert.Equal(t, float32(20), helmet.FrustumSize)
	assert.Equal(t, float32(0.5), helmet.HalfExtent)

	// Base is not modified by resolving
	assert.Equal(t, ObjectCube, s.Base.Object)
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Default().Resolve("teapot")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Contains(t, err.Error(), "bunny, cube, helmet")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvVariant, "bunny")
	t.Setenv(EnvLogLevel, "debug")
	s := Default()
	s.ApplyEnv()
	assert.Equal(t, "bunny", s.Variant)
	assert.Equal(t, "debug", s.LogLevel)

	t.Setenv(EnvVariant, "  ")
	s = Default()
	s.ApplyEnv()
	assert.Equal(t, "cube", s.Variant)
}

func TestParseColor(t *testing.T) {
	r, g, b, a, err := ParseColor("#00ff00")
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, [4]uint8{r, g, b, a})

	r, g, b, a, err = ParseColor("0x11223380")
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0x11, 0x22, 0x33, 0x80}, [4]uint8{r, g, b, a})

	_, _, _, _, err = ParseColor("#abc")
	assert.Error(t, err)
	_, _, _, _, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestImpulseDuration(t *testing.T) {
	assert.Equal(t, "1s", Default().Motion.ImpulseDuration().String())
}
