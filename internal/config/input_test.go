package config

import (
	"testing"

	"github.com/san-kum/efield/internal/field"
	"github.com/stretchr/testify/assert"
)

func TestParseStepSize(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2", 2},
		{" 0.5 ", 0.5},
		{"abc", 1},
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"NaN", 1},
		{"Inf", 1},
		{"5px", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseStepSize(tt.input, 1), "input %q", tt.input)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"500", 500},
		{"0", 0},
		{"12.9", 12},
		{"x", 200},
		{"-1", 200},
		{"1e12", 200},
		{"75 steps", 75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCount(tt.input, 200), "input %q", tt.input)
	}
}

func TestParseMagnitude(t *testing.T) {
	assert.Equal(t, -2.5, ParseMagnitude("-2.5"))
	assert.Equal(t, 3.0, ParseMagnitude(" 3 "))
	assert.Equal(t, 0.0, ParseMagnitude("three"))
	assert.Equal(t, 3.0, ParseMagnitude("3abc"))
	assert.Equal(t, -0.5, ParseMagnitude("-.5q"))
	assert.Equal(t, 2e3, ParseMagnitude("2e3x"))
	assert.Equal(t, 0.0, ParseMagnitude("x3"))
	assert.Equal(t, 0.0, ParseMagnitude("1e999"))
}

func TestApplyParam(t *testing.T) {
	p := field.DefaultParams()

	p, ok := ApplyParam(p, ParamStepSize, "3")
	assert.True(t, ok)
	assert.Equal(t, 3.0, p.StepSize)

	p, ok = ApplyParam(p, ParamMaxIterations, "oops")
	assert.True(t, ok)
	assert.Equal(t, field.DefaultMaxIterations, p.MaxIterations, "bad input keeps the old value")

	p, _ = ApplyParam(p, ParamArrowInterval, "50")
	assert.Equal(t, 50, p.ArrowInterval)

	_, ok = ApplyParam(p, "gravity", "1")
	assert.False(t, ok)

	assert.NoError(t, p.Validate())
}

func TestParamValue(t *testing.T) {
	p := field.DefaultParams()
	assert.Equal(t, "1", ParamValue(p, ParamStepSize))
	assert.Equal(t, "10000", ParamValue(p, ParamMaxIterations))
	assert.Equal(t, "200", ParamValue(p, ParamArrowInterval))
	assert.Equal(t, "", ParamValue(p, "unknown"))
}
