package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0644); err != nil {
		t.Fatalf("writing config.toml: %v", err)
	}
}

func TestLoadMissingCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error on first load without config file")
	}
	if !strings.Contains(err.Error(), "created template") {
		t.Errorf("error should mention template creation, got: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "config.toml")); statErr != nil {
		t.Fatalf("template not written: %v", statErr)
	}

	// Second load picks up the template, which carries the defaults.
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("template config = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[solver]
initial_guess = 0.25
tolerance = 1e-6
max_iterations = 64

[ui]
color_enabled = false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.InitialGuess != 0.25 {
		t.Errorf("initial_guess = %v, want 0.25", cfg.Solver.InitialGuess)
	}
	if cfg.Solver.Tolerance != 1e-6 {
		t.Errorf("tolerance = %v, want 1e-6", cfg.Solver.Tolerance)
	}
	if cfg.Solver.MaxIterations != 64 {
		t.Errorf("max_iterations = %v, want 64", cfg.Solver.MaxIterations)
	}
	if cfg.UI.ColorEnabled {
		t.Error("color_enabled = true, want false")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[ui]
color_enabled = false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig().Solver
	if cfg.Solver != want {
		t.Errorf("solver = %+v, want defaults %+v", cfg.Solver, want)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[solver]
initial_guess = 0.25
`)

	t.Setenv("OPTPRICER_SOLVER_INITIAL_GUESS", "0.3")
	t.Setenv("OPTPRICER_SOLVER_MAX_ITERATIONS", "50")
	t.Setenv("OPTPRICER_COLOR_ENABLED", "false")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.InitialGuess != 0.3 {
		t.Errorf("initial_guess = %v, want env override 0.3", cfg.Solver.InitialGuess)
	}
	if cfg.Solver.MaxIterations != 50 {
		t.Errorf("max_iterations = %v, want env override 50", cfg.Solver.MaxIterations)
	}
	if cfg.UI.ColorEnabled {
		t.Error("color_enabled = true, want env override false")
	}
}

func TestEnvOverrideMalformedIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[solver]
max_iterations = 64
`)

	t.Setenv("OPTPRICER_SOLVER_MAX_ITERATIONS", "plenty")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Solver.MaxIterations != 64 {
		t.Errorf("max_iterations = %v, want file value 64", cfg.Solver.MaxIterations)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero guess", func(c *Config) { c.Solver.InitialGuess = 0 }},
		{"negative tolerance", func(c *Config) { c.Solver.Tolerance = -1e-8 }},
		{"zero iterations", func(c *Config) { c.Solver.MaxIterations = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	t.Run("defaults valid", func(t *testing.T) {
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("defaults rejected: %v", err)
		}
	})

	t.Run("invalid file rejected at load", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, `
[solver]
max_iterations = -1
`)
		if _, err := Load(dir); err == nil {
			t.Error("expected load error for invalid max_iterations")
		}
	})
}
