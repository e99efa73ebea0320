package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/efield/internal/field"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSpacing   = 50.0
	DefaultGridThickness = 2.0
	DefaultWidth         = 1000.0
	DefaultHeight        = 700.0
	DefaultWorkers       = 4
	DefaultTheme         = "cyberpunk"

	envPrefix = "EFIELD"
)

type Config struct {
	Field   field.Params   `yaml:"field" mapstructure:"field"`
	Grid    GridConfig     `yaml:"grid" mapstructure:"grid"`
	Charges []field.Charge `yaml:"charges" mapstructure:"charges"`
	Preset  string         `yaml:"preset,omitempty" mapstructure:"preset"`
	Workers int            `yaml:"workers" mapstructure:"workers"`
	Theme   string         `yaml:"theme" mapstructure:"theme"`
	Logger  LoggerConfig   `yaml:"logger" mapstructure:"logger"`

	// escape holds Field.EscapeRadius from before the first preset.
	escape      float64
	escapeSaved bool
}

// GridConfig describes the placement grid and the visible world area.
type GridConfig struct {
	Spacing   float64 `yaml:"spacing" mapstructure:"spacing"`
	Thickness float64 `yaml:"thickness" mapstructure:"thickness"`
	Width     float64 `yaml:"width" mapstructure:"width"`
	Height    float64 `yaml:"height" mapstructure:"height"`
}

type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	LogFile     string `yaml:"log_file" mapstructure:"log_file"`
	MaxSize     int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups  int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge      int    `yaml:"max_age" mapstructure:"max_age"`
	Compress    bool   `yaml:"compress" mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: field.DefaultParams(),
		Grid: GridConfig{
			Spacing:   DefaultGridSpacing,
			Thickness: DefaultGridThickness,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
		},
		Workers: DefaultWorkers,
		Theme:   DefaultTheme,
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "efield",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
		},
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("field.ds", cfg.Field.StepSize)
	v.SetDefault("field.max_iterations", cfg.Field.MaxIterations)
	v.SetDefault("field.arrow_increment", cfg.Field.ArrowInterval)
	v.SetDefault("field.test_charge", cfg.Field.TestCharge)
	v.SetDefault("field.abort_threshold", cfg.Field.AbortThreshold)
	v.SetDefault("field.lines_per_unit_charge", cfg.Field.LinesPerUnitCharge)
	v.SetDefault("field.arrow_length", cfg.Field.ArrowLength)
	v.SetDefault("field.escape_radius", cfg.Field.EscapeRadius)

	v.SetDefault("grid.spacing", cfg.Grid.Spacing)
	v.SetDefault("grid.thickness", cfg.Grid.Thickness)
	v.SetDefault("grid.width", cfg.Grid.Width)
	v.SetDefault("grid.height", cfg.Grid.Height)

	v.SetDefault("preset", cfg.Preset)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("theme", cfg.Theme)

	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.format", cfg.Logger.Format)
	v.SetDefault("logger.service_name", cfg.Logger.ServiceName)
	v.SetDefault("logger.log_file", cfg.Logger.LogFile)
	v.SetDefault("logger.max_size", cfg.Logger.MaxSize)
	v.SetDefault("logger.max_backups", cfg.Logger.MaxBackups)
	v.SetDefault("logger.max_age", cfg.Logger.MaxAge)
	v.SetDefault("logger.compress", cfg.Logger.Compress)
}

// Load reads configuration from path, or from ./efield.yaml when path is
// empty, layered over the defaults and EFIELD_* environment variables.
// A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("efield")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("config: grid spacing must be positive, got %g", c.Grid.Spacing)
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid size must be positive, got %gx%g", c.Grid.Width, c.Grid.Height)
	}
	for i, ch := range c.Charges {
		if !ch.IsValid() {
			return fmt.Errorf("config: charge %d: %w", i, field.ErrInvalidCharge)
		}
	}
	return nil
}

// ApplyPreset replaces the charges and the preset's parameter overrides.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	if !c.escapeSaved {
		c.escape = c.Field.EscapeRadius
		c.escapeSaved = true
	}
	params := c.Field
	params.EscapeRadius = c.escape
	c.Charges = p.ChargeList()
	c.Field = p.Apply(params)
	c.Preset = p.Name
	return nil
}

// EscapeRadius returns the escape radius configured before any preset was
// applied.
func (c *Config) EscapeRadius() float64 {
	if c.escapeSaved {
		return c.escape
	}
	return c.Field.EscapeRadius
}
