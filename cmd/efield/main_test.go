package main

import (
	"bytes"
	"testing"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/render"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	preset, chargeFlags, ds, maxIterations, arrowInc, workers, logLevel, theme = "", nil, 0, 0, 0, 0, "", ""

	cmd := &cobra.Command{Use: "test"}
	addSceneFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseCharge(t *testing.T) {
	c, err := parseCharge("10, 20.5,-2")
	require.NoError(t, err)
	assert.Equal(t, field.Charge{X: 10, Y: 20.5, Magnitude: -2}, c)

	for _, bad := range []string{"1,2", "a,b,c", "1,2,3,4", "1,NaN,1", "1,2,Inf"} {
		_, err := parseCharge(bad)
		assert.Error(t, err, bad)
	}
}

func TestApplyFlags_Overrides(t *testing.T) {
	cmd := newTestCmd(t, "--ds", "2", "--arrow-increment", "50", "--charge", "1,1,1", "--charge", "101,1,-1")
	cfg := config.DefaultConfig()
	require.NoError(t, applyFlags(cmd, cfg))

	assert.Equal(t, 2.0, cfg.Field.StepSize)
	assert.Equal(t, 50, cfg.Field.ArrowInterval)
	assert.Equal(t, field.DefaultMaxIterations, cfg.Field.MaxIterations, "unchanged flags keep config values")
	assert.Len(t, cfg.Charges, 2)
}

func TestApplyFlags_PresetThenCharges(t *testing.T) {
	cmd := newTestCmd(t, "--preset", "lines", "--charge", "5,5,1")
	cfg := config.DefaultConfig()
	require.NoError(t, applyFlags(cmd, cfg))

	assert.Equal(t, []field.Charge{{X: 5, Y: 5, Magnitude: 1}}, cfg.Charges)
	assert.Equal(t, 100, cfg.Field.ArrowInterval, "preset parameters survive")
	assert.Empty(t, cfg.Preset)
}

func TestApplyFlags_ConfigPreset(t *testing.T) {
	cmd := newTestCmd(t)
	cfg := config.DefaultConfig()
	cfg.Preset = "same-sign"
	require.NoError(t, applyFlags(cmd, cfg))
	assert.Len(t, cfg.Charges, 2)
}

func TestApplyFlags_Invalid(t *testing.T) {
	cmd := newTestCmd(t, "--ds", "-1")
	err := applyFlags(cmd, config.DefaultConfig())
	assert.ErrorIs(t, err, field.ErrInvalidParams)

	cmd = newTestCmd(t, "--preset", "nope")
	assert.Error(t, applyFlags(cmd, config.DefaultConfig()))
}

func TestPrintSummary(t *testing.T) {
	charges := []field.Charge{{X: 351, Y: 301, Magnitude: 1}}
	params := field.DefaultParams()
	params.MaxIterations = 500
	frame := &render.Frame{Lines: field.Plan(charges, params), Charges: charges, Params: params}

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, frame))
	out := buf.String()
	assert.Contains(t, out, "traced 6 lines from 1 charges")
	assert.Contains(t, out, "max-iterations=6")
	assert.Contains(t, out, "total iterations: 3000")
	assert.Contains(t, out, "iterations per line")
}

func TestPrintSummary_NoLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, &render.Frame{}))
	assert.Contains(t, buf.String(), "nothing to trace")
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPresets(&buf))
	for _, name := range config.ListPresets() {
		assert.Contains(t, buf.String(), name)
	}
}
