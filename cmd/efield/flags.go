package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/viz"
	"github.com/spf13/cobra"
)

// addSceneFlags registers the scene and tracing flags shared by every command.
func addSceneFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml, default ./efield.yaml)")
	pf.StringVar(&preset, "preset", "", "start from a built-in preset")
	pf.StringArrayVar(&chargeFlags, "charge", nil, "charge as x,y,q (repeatable, replaces config charges)")
	pf.Float64Var(&ds, "ds", 0, "step size")
	pf.IntVar(&maxIterations, "max-iterations", 0, "iteration cap per field line")
	pf.IntVar(&arrowInc, "arrow-increment", 0, "iterations between arrows (0 disables arrows)")
	pf.IntVar(&workers, "workers", 0, "lines traced in parallel")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&theme, "theme", "", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
}

// parseCharge reads "x,y,q".
func parseCharge(s string) (field.Charge, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return field.Charge{}, fmt.Errorf("charge %q: want x,y,q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return field.Charge{}, fmt.Errorf("charge %q: %w", s, err)
		}
		v[i] = f
	}
	c := field.Charge{X: v[0], Y: v[1], Magnitude: v[2]}
	if !c.IsValid() {
		return field.Charge{}, fmt.Errorf("charge %q: %w", s, field.ErrInvalidCharge)
	}
	return c, nil
}

// applyFlags layers the preset, explicit charges and changed flags over cfg,
// in that order. A config naming a preset without listing charges loads it.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	name := preset
	if name == "" && len(cfg.Charges) == 0 {
		name = cfg.Preset
	}
	if name != "" {
		if err := cfg.ApplyPreset(name); err != nil {
			return err
		}
	}

	if len(chargeFlags) > 0 {
		charges := make([]field.Charge, 0, len(chargeFlags))
		for _, s := range chargeFlags {
			c, err := parseCharge(s)
			if err != nil {
				return err
			}
			charges = append(charges, c)
		}
		cfg.Charges = charges
		cfg.Preset = ""
	}

	if flags.Changed("ds") {
		cfg.Field.StepSize = ds
	}
	if flags.Changed("max-iterations") {
		cfg.Field.MaxIterations = maxIterations
	}
	if flags.Changed("arrow-increment") {
		cfg.Field.ArrowInterval = arrowInc
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Logger.Level = logLevel
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	return cfg.Validate()
}
