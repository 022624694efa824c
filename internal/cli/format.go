// Package cli provides the command-line interface for the pricing toolbox.
package cli

import (
	"fmt"
)

// FormatPrice formats a price with appropriate decimal places. Cheap
// contracts get more precision.
func FormatPrice(price float64) string {
	if price >= 10 || price <= -10 {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.4f", price)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatGreek formats a single Greek estimate.
func FormatGreek(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

// FormatGreeks formats the four Greek estimates on one line.
func FormatGreeks(delta, gamma, theta, vega float64) string {
	return fmt.Sprintf("Δ: %.4f  Γ: %.4f  Θ: %.4f  ν: %.4f", delta, gamma, theta, vega)
}

// FormatIV formats a volatility given as a decimal, e.g. 0.2 as "20.00%".
func FormatIV(iv float64) string {
	return fmt.Sprintf("%.2f%%", iv*100)
}

// FormatMaturity formats a time to expiry given in years.
func FormatMaturity(years float64) string {
	if years < 0.1 {
		return fmt.Sprintf("%.0f days", years*365)
	}
	return fmt.Sprintf("%.2f years", years)
}
