// Package config provides configuration management for the pricing toolbox.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Solver SolverConfig `mapstructure:"solver"`
	UI     UIConfig     `mapstructure:"ui"`
}

// SolverConfig holds implied volatility solver settings.
type SolverConfig struct {
	InitialGuess  float64 `mapstructure:"initial_guess"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfig returns the stock configuration, used when no config file is
// available yet.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			InitialGuess:  0.2,
			Tolerance:     1e-8,
			MaxIterations: 100,
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/optpricer"
	}
	return filepath.Join(home, ".config", "optpricer")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// Defaults keep a partial config file usable.
	v.SetDefault("solver.initial_guess", 0.2)
	v.SetDefault("solver.tolerance", 1e-8)
	v.SetDefault("solver.max_iterations", 100)
	v.SetDefault("ui.color_enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPTPRICER_SOLVER_INITIAL_GUESS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solver.InitialGuess = f
		}
	}
	if v := os.Getenv("OPTPRICER_SOLVER_TOLERANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solver.Tolerance = f
		}
	}
	if v := os.Getenv("OPTPRICER_SOLVER_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.MaxIterations = n
		}
	}
	if v := os.Getenv("OPTPRICER_COLOR_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ColorEnabled = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if math.IsNaN(c.Solver.InitialGuess) || c.Solver.InitialGuess <= 0 {
		return fmt.Errorf("solver initial_guess must be positive, got %v", c.Solver.InitialGuess)
	}
	if math.IsNaN(c.Solver.Tolerance) || c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver tolerance must be positive, got %v", c.Solver.Tolerance)
	}
	if c.Solver.MaxIterations < 1 {
		return fmt.Errorf("solver max_iterations must be at least 1, got %d", c.Solver.MaxIterations)
	}
	return nil
}
