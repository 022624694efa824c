// Package cli provides the command-line interface for the pricing toolbox.
package cli

import (
	"github.com/spf13/cobra"

	"optpricer/internal/logging"
	"optpricer/internal/models"
	"optpricer/internal/pricing"
)

// addPricingCommands adds the option pricing commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
}

// addContractFlags registers the five contract parameter flags shared by the
// pricing commands. All five are required; there are no market defaults.
func addContractFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("spot", 0, "Current price of the underlying")
	cmd.Flags().Float64("strike", 0, "Strike price")
	cmd.Flags().Float64("maturity", 0, "Time to maturity in years (e.g. 0.5 for six months)")
	cmd.Flags().Float64("vol", 0, "Annualized volatility as a fraction (e.g. 0.2 for 20%)")
	cmd.Flags().Float64("rate", 0, "Annualized risk-free rate as a fraction (e.g. 0.05 for 5%)")
	cmd.Flags().String("kind", "call", "Option kind: call or put")

	for _, name := range []string{"spot", "strike", "maturity", "vol", "rate"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// contractFromFlags builds the option contract from the command flags.
func contractFromFlags(cmd *cobra.Command) models.OptionContract {
	spot, _ := cmd.Flags().GetFloat64("spot")
	strike, _ := cmd.Flags().GetFloat64("strike")
	maturity, _ := cmd.Flags().GetFloat64("maturity")
	vol, _ := cmd.Flags().GetFloat64("vol")
	rate, _ := cmd.Flags().GetFloat64("rate")

	return models.OptionContract{
		Spot:         spot,
		Strike:       strike,
		Maturity:     maturity,
		Volatility:   vol,
		RiskFreeRate: rate,
	}
}

// newPricer builds a pricer for the contract using the configured solver
// settings, with the operation name threaded into the engine's log context.
func (app *App) newPricer(contract models.OptionContract, operation string) (*pricing.Pricer, error) {
	solver := pricing.SolverConfig{
		InitialGuess:  app.Config.Solver.InitialGuess,
		Tolerance:     app.Config.Solver.Tolerance,
		MaxIterations: app.Config.Solver.MaxIterations,
	}
	return pricing.NewPricerWithConfig(contract, solver, logging.WithOperation(app.Logger, operation))
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European option",
		Long: `Price a European vanilla option under the Black-Scholes model.

The contract is described by five parameters: spot, strike, time to
maturity in years, annualized volatility, and the continuously
compounded risk-free rate.`,
		Example: `  optpricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05
  optpricer price --kind put --spot 105 --strike 100 --maturity 0.5 --vol 0.25 --rate 0.03
  optpricer price --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			kindStr, _ := cmd.Flags().GetString("kind")
			kind, err := models.ParseOptionKind(kindStr)
			if err != nil {
				output.Error("Unknown option kind %q. Use call or put.", kindStr)
				return err
			}

			contract := contractFromFlags(cmd)
			pricer, err := app.newPricer(contract, "price")
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}

			price, err := pricer.Price(kind)
			if err != nil {
				output.Error("Pricing failed: %v", err)
				return err
			}

			logging.LogPrice(app.Logger, string(kind), contract.Spot, contract.Strike, price)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"kind":     string(kind),
					"spot":     contract.Spot,
					"strike":   contract.Strike,
					"maturity": contract.Maturity,
					"vol":      contract.Volatility,
					"rate":     contract.RiskFreeRate,
					"price":    price,
				})
			}

			output.Bold("European %s", kind)
			output.Printf("  Spot:       %s\n", FormatPrice(contract.Spot))
			output.Printf("  Strike:     %s\n", FormatPrice(contract.Strike))
			output.Printf("  Maturity:   %s\n", FormatMaturity(contract.Maturity))
			output.Printf("  Vol:        %s\n", FormatIV(contract.Volatility))
			output.Printf("  Rate:       %s\n", FormatPercent(contract.RiskFreeRate*100))
			output.Printf("  Moneyness:  %s\n", moneyness(output, kind, contract.Spot, contract.Strike))
			output.Println()
			output.Printf("  Price:      %s\n", output.BoldText(FormatPrice(price)))

			return nil
		},
	}

	addContractFlags(cmd)

	return cmd
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Compute finite-difference Greeks",
		Long: `Compute delta, gamma, theta, and vega for a European option.

All four sensitivities are finite differences over the closed-form
pricers: delta and theta follow the requested kind, while gamma and
vega are computed from the call pricer (they are identical for puts).`,
		Example: `  optpricer greeks --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05
  optpricer greeks --kind put --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			kindStr, _ := cmd.Flags().GetString("kind")
			kind, err := models.ParseOptionKind(kindStr)
			if err != nil {
				output.Error("Unknown option kind %q. Use call or put.", kindStr)
				return err
			}

			contract := contractFromFlags(cmd)
			pricer, err := app.newPricer(contract, "greeks")
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}

			greeks, err := pricer.GreeksFor(kind)
			if err != nil {
				output.Error("Greeks computation failed: %v", err)
				return err
			}

			logging.LogGreeks(app.Logger, string(kind), greeks.Delta, greeks.Gamma, greeks.Theta, greeks.Vega)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"kind":  string(kind),
					"delta": greeks.Delta,
					"gamma": greeks.Gamma,
					"theta": greeks.Theta,
					"vega":  greeks.Vega,
				})
			}

			output.Bold("Greeks - European %s", kind)
			output.Printf("  Spot %s  Strike %s  Maturity %s\n\n",
				FormatPrice(contract.Spot), FormatPrice(contract.Strike), FormatMaturity(contract.Maturity))

			deltaStr := output.BoldText(FormatGreek(greeks.Delta))
			thetaStr := FormatGreek(greeks.Theta)
			if greeks.Theta < 0 {
				thetaStr = output.Red(thetaStr)
			}

			output.Printf("  Delta (Δ):  %s\n", deltaStr)
			output.Printf("  Gamma (Γ):  %s\n", FormatGreek(greeks.Gamma))
			output.Printf("  Theta (Θ):  %s\n", thetaStr)
			output.Printf("  Vega (ν):   %s\n", FormatGreek(greeks.Vega))
			output.Println()
			output.Printf("  %s\n", FormatGreeks(greeks.Delta, greeks.Gamma, greeks.Theta, greeks.Vega))
			output.Dim("Gamma and vega are kind-independent (computed from the call pricer).")

			return nil
		},
	}

	addContractFlags(cmd)

	return cmd
}

func newIVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve for implied volatility",
		Long: `Solve for the volatility implied by an observed market price.

Runs Newton-Raphson iteration from the configured initial guess. The
--vol flag seeds the contract but does not constrain the solution; the
solver reports failure if it cannot converge within the iteration budget.`,
		Example: `  optpricer iv --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --market-price 10.45
  optpricer iv --kind put --spot 100 --strike 100 --maturity 1 --vol 0.2 --rate 0.05 --market-price 5.57`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			kindStr, _ := cmd.Flags().GetString("kind")
			kind, err := models.ParseOptionKind(kindStr)
			if err != nil {
				output.Error("Unknown option kind %q. Use call or put.", kindStr)
				return err
			}

			marketPrice, _ := cmd.Flags().GetFloat64("market-price")

			contract := contractFromFlags(cmd)
			pricer, err := app.newPricer(contract, "iv")
			if err != nil {
				output.Error("Invalid contract: %v", err)
				return err
			}

			iv, err := pricer.ImpliedVolatility(marketPrice, kind)
			logging.LogImpliedVol(app.Logger, string(kind), marketPrice, iv, err)
			if err != nil {
				output.Error("Implied volatility solve failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"kind":         string(kind),
					"market_price": marketPrice,
					"implied_vol":  iv,
				})
			}

			output.Bold("Implied Volatility - European %s", kind)
			output.Printf("  Spot %s  Strike %s  Maturity %s  Rate %s\n\n",
				FormatPrice(contract.Spot), FormatPrice(contract.Strike), FormatMaturity(contract.Maturity),
				FormatPercent(contract.RiskFreeRate*100))
			output.Printf("  Market Price: %s\n", FormatPrice(marketPrice))
			output.Printf("  Implied Vol:  %s\n", output.BoldText(FormatIV(iv)))
			if iv <= 0 || iv > 1 {
				output.Warning("Solved volatility %s is outside the plausible band; the quote may be off-market.", FormatIV(iv))
			}

			return nil
		},
	}

	addContractFlags(cmd)
	cmd.Flags().Float64("market-price", 0, "Observed market price of the option")
	_ = cmd.MarkFlagRequired("market-price")

	return cmd
}

// moneyness classifies the contract for display, relative to the requested
// kind: at, in, or out of the money.
func moneyness(output *Output, kind models.OptionKind, spot, strike float64) string {
	if spot == strike {
		return output.Yellow("ATM")
	}
	inTheMoney := spot > strike
	if kind == models.OptionKindPut {
		inTheMoney = !inTheMoney
	}
	if inTheMoney {
		return output.Green("ITM")
	}
	return output.Red("OTM")
}
