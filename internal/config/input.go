package config

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/san-kum/efield/internal/field"
)

// Editable parameter names accepted by ApplyParam.
const (
	ParamStepSize      = "ds"
	ParamMaxIterations = "max_iterations"
	ParamArrowInterval = "arrow_increment"
)

// EditableParams lists the parameters exposed to interactive editing.
var EditableParams = []string{ParamStepSize, ParamMaxIterations, ParamArrowInterval}

// numberPrefix matches the leading decimal number of an input, so "3abc"
// reads as 3. Words like NaN and Inf never match.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func parseNumber(input string) (float64, bool) {
	m := numberPrefix.FindString(strings.TrimSpace(input))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseStepSize returns the step size typed by the user, or prev when the
// input is not a positive number.
func ParseStepSize(input string, prev float64) float64 {
	v, ok := parseNumber(input)
	if !ok || v <= 0 {
		return prev
	}
	return v
}

// ParseCount returns a non-negative integer from input, truncating any
// fraction, or prev when the input is unusable.
func ParseCount(input string, prev int) int {
	v, ok := parseNumber(input)
	if !ok || v < 0 || v > math.MaxInt32 {
		return prev
	}
	return int(v)
}

// ParseMagnitude reads a charge magnitude from the leading number of input.
// Input with no leading number yields zero, which keeps the charge on the
// grid but removes its influence.
func ParseMagnitude(input string) float64 {
	v, ok := parseNumber(input)
	if !ok {
		return 0
	}
	return v
}

// ApplyParam applies one user-entered value to params. It reports whether
// the name was recognised; invalid values leave params unchanged.
func ApplyParam(params field.Params, name, input string) (field.Params, bool) {
	switch name {
	case ParamStepSize:
		params.StepSize = ParseStepSize(input, params.StepSize)
	case ParamMaxIterations:
		params.MaxIterations = ParseCount(input, params.MaxIterations)
	case ParamArrowInterval:
		params.ArrowInterval = ParseCount(input, params.ArrowInterval)
	default:
		return params, false
	}
	return params, true
}

// ParamValue formats the current value of an editable parameter.
func ParamValue(params field.Params, name string) string {
	switch name {
	case ParamStepSize:
		return strconv.FormatFloat(params.StepSize, 'g', -1, 64)
	case ParamMaxIterations:
		return strconv.Itoa(params.MaxIterations)
	case ParamArrowInterval:
		return strconv.Itoa(params.ArrowInterval)
	}
	return ""
}
