// Package pricing implements the Black-Scholes engine for European vanilla
// options: closed-form call and put pricers, finite-difference Greek
// estimators, and a Newton-Raphson implied volatility solver.
package pricing

import (
	"github.com/rs/zerolog"

	"optpricer/internal/errors"
	"optpricer/internal/models"
)

const (
	// bumpSize is the absolute perturbation applied to spot and volatility
	// by the finite-difference estimators and the solver slope.
	bumpSize = 0.001

	// dayStep is the one-trading-day maturity decrement used by Theta.
	dayStep = 1.0 / 252.0
)

// Pricer prices a single option contract. It holds the contract and solver
// settings fixed for its lifetime; per-call variation happens through
// Override, never by mutation. A Pricer is safe for concurrent use.
type Pricer struct {
	contract models.OptionContract
	solver   SolverConfig
	logger   zerolog.Logger
}

// NewPricer validates the contract and builds a pricer around it with
// default solver settings and no logging.
func NewPricer(contract models.OptionContract) (*Pricer, error) {
	return NewPricerWithConfig(contract, DefaultSolverConfig(), zerolog.Nop())
}

// NewPricerWithConfig is NewPricer with explicit solver settings and logger.
func NewPricerWithConfig(contract models.OptionContract, solver SolverConfig, logger zerolog.Logger) (*Pricer, error) {
	if err := contract.Validate(); err != nil {
		return nil, err
	}
	if err := solver.Validate(); err != nil {
		return nil, err
	}
	return &Pricer{
		contract: contract,
		solver:   solver,
		logger:   logger,
	}, nil
}

// Contract returns a copy of the held contract.
func (p *Pricer) Contract() models.OptionContract {
	return p.contract
}

// Override carries optional per-call replacements for the spot, maturity and
// volatility of the held contract; nil fields fall back to the held values.
// Strike and rate are fixed at construction and have no override.
type Override struct {
	Spot       *float64
	Maturity   *float64
	Volatility *float64
}

// resolve applies o to a copy of the held contract and validates the result.
func (p *Pricer) resolve(o Override) (models.OptionContract, error) {
	c := p.contract
	if o.Spot != nil {
		c.Spot = *o.Spot
	}
	if o.Maturity != nil {
		c.Maturity = *o.Maturity
	}
	if o.Volatility != nil {
		c.Volatility = *o.Volatility
	}
	if err := c.Validate(); err != nil {
		return models.OptionContract{}, err
	}
	return c, nil
}

// CallPrice returns the Black-Scholes value of the call under the resolved
// contract.
func (p *Pricer) CallPrice(o Override) (float64, error) {
	c, err := p.resolve(o)
	if err != nil {
		return 0, err
	}
	return callValue(c), nil
}

// PutPrice returns the Black-Scholes value of the put under the resolved
// contract.
func (p *Pricer) PutPrice(o Override) (float64, error) {
	c, err := p.resolve(o)
	if err != nil {
		return 0, err
	}
	return putValue(c), nil
}

// Price routes to the call or put pricer on the held contract. Unrecognized
// kinds fail with ErrUnknownOptionKind.
func (p *Pricer) Price(kind models.OptionKind) (float64, error) {
	return p.priceKind(kind, Override{})
}

// priceKind is the override-capable dispatcher behind Price and the Greek
// estimators.
func (p *Pricer) priceKind(kind models.OptionKind, o Override) (float64, error) {
	switch kind {
	case models.OptionKindCall:
		return p.CallPrice(o)
	case models.OptionKindPut:
		return p.PutPrice(o)
	default:
		return 0, errors.Wrapf(errors.ErrUnknownOptionKind, "price %q", kind)
	}
}

// Delta estimates dV/dS for the given kind by forward difference in spot.
func (p *Pricer) Delta(kind models.OptionKind) (float64, error) {
	base, err := p.priceKind(kind, Override{})
	if err != nil {
		return 0, err
	}
	bumped := p.contract.Spot + bumpSize
	up, err := p.priceKind(kind, Override{Spot: &bumped})
	if err != nil {
		return 0, err
	}
	return (up - base) / bumpSize, nil
}

// Gamma estimates d²V/dS² by central second difference in spot. The estimate
// comes from the call pricer; without dividends the put gamma is identical.
// A spot at or below the bump size fails the down-bump validation.
func (p *Pricer) Gamma() (float64, error) {
	center, err := p.CallPrice(Override{})
	if err != nil {
		return 0, err
	}
	upSpot := p.contract.Spot + bumpSize
	up, err := p.CallPrice(Override{Spot: &upSpot})
	if err != nil {
		return 0, err
	}
	downSpot := p.contract.Spot - bumpSize
	down, err := p.CallPrice(Override{Spot: &downSpot})
	if err != nil {
		return 0, err
	}
	return (up - 2*center + down) / (bumpSize * bumpSize), nil
}

// Theta estimates calendar decay for the given kind by stepping maturity
// back one trading day. The result is annualized and normally negative. A
// maturity at or below one trading day fails the stepped-back validation.
func (p *Pricer) Theta(kind models.OptionKind) (float64, error) {
	base, err := p.priceKind(kind, Override{})
	if err != nil {
		return 0, err
	}
	shortened := p.contract.Maturity - dayStep
	decayed, err := p.priceKind(kind, Override{Maturity: &shortened})
	if err != nil {
		return 0, err
	}
	return (decayed - base) / dayStep, nil
}

// Vega estimates dV/dSigma by forward difference in volatility, from the
// call pricer; without dividends the put vega is identical.
func (p *Pricer) Vega() (float64, error) {
	base, err := p.CallPrice(Override{})
	if err != nil {
		return 0, err
	}
	bumped := p.contract.Volatility + bumpSize
	up, err := p.CallPrice(Override{Volatility: &bumped})
	if err != nil {
		return 0, err
	}
	return (up - base) / bumpSize, nil
}

// GreeksFor computes all four estimates for the given kind. Delta and Theta
// depend on the kind; Gamma and Vega are call-based by construction.
func (p *Pricer) GreeksFor(kind models.OptionKind) (models.Greeks, error) {
	delta, err := p.Delta(kind)
	if err != nil {
		return models.Greeks{}, err
	}
	gamma, err := p.Gamma()
	if err != nil {
		return models.Greeks{}, err
	}
	theta, err := p.Theta(kind)
	if err != nil {
		return models.Greeks{}, err
	}
	vega, err := p.Vega()
	if err != nil {
		return models.Greeks{}, err
	}
	return models.Greeks{
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
	}, nil
}
