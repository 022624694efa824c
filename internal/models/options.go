package models

import (
	"math"

	"optpricer/internal/errors"
)

// OptionContract holds the Black-Scholes inputs for a European vanilla option.
// All five fields are required; there are no defaults. A contract is treated
// as immutable once handed to a pricer.
type OptionContract struct {
	Spot         float64 // current underlying price
	Strike       float64
	Maturity     float64 // time to expiry in years
	Volatility   float64 // annualized, 0.2 means 20%
	RiskFreeRate float64 // continuously compounded annual rate
}

// Validate checks the contract against the model's domain: spot, strike,
// maturity and volatility strictly positive, every field finite. The rate may
// be negative.
func (c OptionContract) Validate() error {
	if err := checkPositive("spot", c.Spot); err != nil {
		return err
	}
	if err := checkPositive("strike", c.Strike); err != nil {
		return err
	}
	if err := checkPositive("maturity", c.Maturity); err != nil {
		return err
	}
	if err := checkPositive("volatility", c.Volatility); err != nil {
		return err
	}
	if math.IsNaN(c.RiskFreeRate) || math.IsInf(c.RiskFreeRate, 0) {
		return errors.NewDomainError("rate", c.RiskFreeRate, "must be finite")
	}
	return nil
}

func checkPositive(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.NewDomainError(field, value, "must be finite")
	}
	if value <= 0 {
		return errors.NewDomainError(field, value, "must be strictly positive")
	}
	return nil
}

// Greeks holds the finite-difference sensitivity estimates for a contract.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
}
