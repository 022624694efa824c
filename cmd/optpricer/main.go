package main

import (
	"fmt"
	"os"

	"optpricer/internal/cli"
	"optpricer/internal/config"
	"optpricer/internal/logging"
)

func main() {
	// The config directory has to be known before cobra parses anything,
	// because configuration decides how the root command is wired.
	configDir := config.DefaultConfigDir()
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		cfg = config.DefaultConfig()
	}

	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
