// Package config handles tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Fill    FillConfig    `yaml:"fill"`
	Logging LoggingConfig `yaml:"logging"`
}

// FillConfig holds hole-filling parameters and tolerances.
type FillConfig struct {
	DefaultSpans     int     `yaml:"default_spans"`     // Sx used when the caller gives none
	DefaultOffset    int     `yaml:"default_offset"`    // boundary rotation / pole position
	WeldTolerance    float64 `yaml:"weld_tolerance"`    // seam vertex merge distance
	ClosureTolerance float64 `yaml:"closure_tolerance"` // left-curve closed-loop detection
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Fill: FillConfig{
			DefaultSpans:     2,
			DefaultOffset:    0,
			WeldTolerance:    1e-4,
			ClosureTolerance: 1e-6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
