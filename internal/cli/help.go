// Package cli provides the command-line interface for the pricing toolbox.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd(app))
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common pricing workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Price a Contract",
					commands: []string{
						"optpricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05",
						"optpricer price --kind put --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05",
					},
				},
				{
					title: "Inspect Sensitivities",
					commands: []string{
						"optpricer greeks --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05",
						"optpricer greeks --kind put --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05   # delta/theta flip, gamma/vega do not",
					},
				},
				{
					title: "Recover Volatility from a Quote",
					commands: []string{
						"optpricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05   # prints 10.4506",
						"optpricer iv --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --market-price 10.4506",
					},
				},
				{
					title: "Machine-Readable Output",
					commands: []string{
						"optpricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --json",
						"optpricer greeks --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --json | jq .delta",
					},
				},
				{
					title: "Configuration",
					commands: []string{
						"optpricer config path                          # where config.toml lives",
						"optpricer config show                          # current solver settings",
						"OPTPRICER_SOLVER_MAX_ITERATIONS=200 optpricer iv ...   # one-off override",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			output.Info("Every command accepts --json for machine-readable output.")

			return nil
		},
	}
}
