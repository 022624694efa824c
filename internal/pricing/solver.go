package pricing

import (
	"math"

	"optpricer/internal/errors"
	"optpricer/internal/models"
)

// derivativeFloor is the smallest usable slope magnitude; below it a Newton
// step would explode.
const derivativeFloor = 1e-12

// SolverConfig controls the Newton-Raphson implied volatility search.
type SolverConfig struct {
	InitialGuess  float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSolverConfig returns the stock solver settings: start at 20%
// volatility, converge on a residual of 1e-8, give up after 100 iterations.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		InitialGuess:  0.2,
		Tolerance:     1e-8,
		MaxIterations: 100,
	}
}

// Validate checks the solver settings.
func (c SolverConfig) Validate() error {
	if math.IsNaN(c.InitialGuess) || c.InitialGuess <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver initial guess must be positive, got %v", c.InitialGuess)
	}
	if math.IsNaN(c.Tolerance) || c.Tolerance <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MaxIterations < 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "solver iteration budget must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}

// ImpliedVolatility searches for the volatility at which the model price of
// the given kind equals marketPrice, by Newton-Raphson from the configured
// initial guess with a finite-difference slope. The search runs on the raw
// pricing kernel and carries no bracketing or bounds, so a market price
// outside the no-arbitrage band may converge to a volatility outside (0, 1)
// or fail; failures surface as *errors.ConvergenceError and are never
// papered over with a default.
func (p *Pricer) ImpliedVolatility(marketPrice float64, kind models.OptionKind) (float64, error) {
	if math.IsNaN(marketPrice) || math.IsInf(marketPrice, 0) {
		return 0, errors.NewDomainError("market_price", marketPrice, "must be finite")
	}

	var value func(models.OptionContract) float64
	switch kind {
	case models.OptionKindCall:
		value = callValue
	case models.OptionKindPut:
		value = putValue
	default:
		return 0, errors.Wrapf(errors.ErrUnknownOptionKind, "implied volatility %q", kind)
	}

	c := p.contract
	sigma := p.solver.InitialGuess
	residual := math.Inf(1)
	for i := 0; i < p.solver.MaxIterations; i++ {
		c.Volatility = sigma
		price := value(c)
		residual = price - marketPrice
		if math.Abs(residual) <= p.solver.Tolerance {
			p.logger.Debug().
				Int("iterations", i).
				Float64("implied_vol", sigma).
				Str("kind", string(kind)).
				Msg("implied volatility converged")
			return sigma, nil
		}

		c.Volatility = sigma + bumpSize
		slope := (value(c) - price) / bumpSize
		if math.Abs(slope) < derivativeFloor {
			return 0, errors.NewConvergenceError("derivative vanished", i, sigma, residual)
		}

		sigma -= residual / slope
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
			return 0, errors.NewConvergenceError("estimate diverged", i+1, sigma, residual)
		}
	}
	return 0, errors.NewConvergenceError("iteration budget exhausted", p.solver.MaxIterations, sigma, residual)
}
