package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Optpricer Configuration

[solver]
# Newton-Raphson starting volatility for implied volatility searches
initial_guess = 0.2
# Convergence tolerance on the price residual
tolerance = 1e-8
# Iteration budget before the solver gives up
max_iterations = 100

[ui]
# Enable colored output
color_enabled = true
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
