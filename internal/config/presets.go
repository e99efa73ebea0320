package config

import (
	_ "embed"
	"fmt"

	"github.com/san-kum/efield/internal/field"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetData []byte

// Preset is a named charge layout with the parameter values it was tuned for.
// Zero-valued overrides leave the current setting alone.
type Preset struct {
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description"`
	ArrowIncrement int            `yaml:"arrow_increment"`
	StepSize       float64        `yaml:"ds"`
	MaxIterations  int            `yaml:"max_iterations"`
	EscapeRadius   float64        `yaml:"escape_radius"`
	Charges        []field.Charge `yaml:"charges"`
}

// Presets holds the built-in presets in display order.
var Presets = mustParsePresets(presetData)

func mustParsePresets(data []byte) []Preset {
	presets, err := ParsePresets(data)
	if err != nil {
		panic(err)
	}
	return presets
}

// ParsePresets decodes a YAML list of presets.
func ParsePresets(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("config: presets: %w", err)
	}
	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("config: preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("config: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
	}
	return presets, nil
}

func GetPreset(name string) *Preset {
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

func ListPresets() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// ChargeList returns a copy of the preset's charges.
func (p *Preset) ChargeList() []field.Charge {
	out := make([]field.Charge, len(p.Charges))
	copy(out, p.Charges)
	return out
}

// Apply returns params with the preset's overrides applied.
func (p *Preset) Apply(params field.Params) field.Params {
	if p.ArrowIncrement > 0 {
		params.ArrowInterval = p.ArrowIncrement
	}
	if p.StepSize > 0 {
		params.StepSize = p.StepSize
	}
	if p.MaxIterations > 0 {
		params.MaxIterations = p.MaxIterations
	}
	if p.EscapeRadius > 0 {
		params.EscapeRadius = p.EscapeRadius
	}
	return params
}
