package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"optpricer/internal/models"
)

// d1d2 returns the shared Black-Scholes auxiliary terms for a contract.
// Defined only for positive volatility and maturity; callers on the public
// path guarantee that through contract validation.
func d1d2(c models.OptionContract) (float64, float64) {
	sqrtT := math.Sqrt(c.Maturity)
	d1 := (math.Log(c.Spot/c.Strike) + (c.RiskFreeRate+0.5*c.Volatility*c.Volatility)*c.Maturity) /
		(c.Volatility * sqrtT)
	return d1, d1 - c.Volatility*sqrtT
}

// callValue is the closed-form Black-Scholes price of the European call.
func callValue(c models.OptionContract) float64 {
	d1, d2 := d1d2(c)
	return c.Spot*normCDF(d1) - c.Strike*math.Exp(-c.RiskFreeRate*c.Maturity)*normCDF(d2)
}

// putValue is the closed-form Black-Scholes price of the European put.
func putValue(c models.OptionContract) float64 {
	d1, d2 := d1d2(c)
	return c.Strike*math.Exp(-c.RiskFreeRate*c.Maturity)*normCDF(-d2) - c.Spot*normCDF(-d1)
}

// normCDF is the standard normal CDF.
func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
