package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd nudge -speed 0.2")
	assert.True(t, ok)
	assert.Equal(t, []string{"nudge", "-speed", "0.2"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
	_, ok = Parse("CMD nudge")
	assert.False(t, ok)
}

func TestExecuteRunsWithFlags(t *testing.T) {
	r := NewRegistry(nil)
	fs := NewFlagSet("impulse")
	x := fs.Float64("x", 0, "")
	var got float64
	r.Register("impulse", "click at x", fs, func() error {
		got = *x
		return nil
	})

	require.NoError(t, r.Execute([]string{"impulse", "-x", "12.5"}))
	assert.Equal(t, 12.5, got)
}

func TestExecuteErrors(t *testing.T) {
	var out bytes.Buffer
	r := NewRegistry(&out)
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func() error { return boom })
	r.Register("ok", "does nothing", nil, func() error { return nil })

	assert.EqualError(t, r.Execute(nil), "missing subcommand")
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command: nope (have fail, ok)")
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)
	assert.Error(t, r.Execute([]string{"ok", "-bogus"}))
	assert.Contains(t, out.String(), "bogus")
	assert.ErrorIs(t, r.Execute([]string{"ok", "-h"}), ErrHelp)
}

func TestUsageListsCommands(t *testing.T) {
	var out bytes.Buffer
	r := NewRegistry(&out)
	r.Register("run", "open the window", nil, func() error { return nil })
	r.Register("config", "write defaults", nil, func() error { return nil })
	r.Usage()
	assert.Equal(t, []string{"config", "run"}, r.Names())
	assert.Contains(t, out.String(), "config")
	assert.Contains(t, out.String(), "open the window")
}

func TestExecuteResetsFlagsBetweenRuns(t *testing.T) {
	r := NewRegistry(nil)
	fs := NewFlagSet("tint")
	color := fs.String("color", "", "")
	var seen []string
	r.Register("tint", "change colour", fs, func() error {
		seen = append(seen, *color)
		return nil
	})

	require.NoError(t, r.Execute([]string{"tint", "-color", "#ff0000"}))
	require.NoError(t, r.Execute([]string{"tint"}))
	assert.Equal(t, []string{"#ff0000", ""}, seen)
}
