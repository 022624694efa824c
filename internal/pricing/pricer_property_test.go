package pricing

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"optpricer/internal/models"
)

// contractGen generates valid contracts across a broad range of moneyness,
// maturity, volatility and rate.
func contractGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(models.OptionContract{}), map[string]gopter.Gen{
		"Spot":         gen.Float64Range(10, 500),
		"Strike":       gen.Float64Range(10, 500),
		"Maturity":     gen.Float64Range(0.05, 3),
		"Volatility":   gen.Float64Range(0.05, 1),
		"RiskFreeRate": gen.Float64Range(-0.02, 0.1),
	})
}

// nearTheMoneyGen generates contracts on which plain Newton-Raphson from a
// 20% guess reliably converges: bounded moneyness, mid-range volatility.
// Wider moneyness bands put short-dated high-vol contracts into a region
// where the first Newton step overshoots past any recoverable estimate.
func nearTheMoneyGen() gopter.Gen {
	return gen.Struct(reflect.TypeOf(models.OptionContract{}), map[string]gopter.Gen{
		"Spot":         gen.Float64Range(85, 115),
		"Strike":       gen.Float64Range(95, 105),
		"Maturity":     gen.Float64Range(0.25, 1.5),
		"Volatility":   gen.Float64Range(0.15, 0.45),
		"RiskFreeRate": gen.Float64Range(0, 0.08),
	})
}

// TestProperty_PutCallParity checks that call - put = S - K*exp(-rT) for any
// valid contract, within 1e-6.
func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call minus put equals forward", prop.ForAll(
		func(c models.OptionContract) bool {
			p, err := NewPricer(c)
			if err != nil {
				t.Logf("NewPricer(%+v): %v", c, err)
				return false
			}
			call, err := p.Price(models.OptionKindCall)
			if err != nil {
				return false
			}
			put, err := p.Price(models.OptionKindPut)
			if err != nil {
				return false
			}
			forward := c.Spot - c.Strike*math.Exp(-c.RiskFreeRate*c.Maturity)
			if math.Abs(call-put-forward) > 1e-6 {
				t.Logf("parity gap %e for %+v", call-put-forward, c)
				return false
			}
			return true
		},
		contractGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_PriceBounds checks the no-arbitrage envelope: the call sits in
// [0, S] and the put in [0, K*exp(-rT)].
func TestProperty_PriceBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("prices stay inside the no-arbitrage envelope", prop.ForAll(
		func(c models.OptionContract) bool {
			p, err := NewPricer(c)
			if err != nil {
				return false
			}
			call, err := p.Price(models.OptionKindCall)
			if err != nil {
				return false
			}
			put, err := p.Price(models.OptionKindPut)
			if err != nil {
				return false
			}
			if call < -1e-9 || call > c.Spot+1e-9 {
				t.Logf("call %e outside [0, %v] for %+v", call, c.Spot, c)
				return false
			}
			discountedStrike := c.Strike * math.Exp(-c.RiskFreeRate*c.Maturity)
			if put < -1e-9 || put > discountedStrike+1e-9 {
				t.Logf("put %e outside [0, %v] for %+v", put, discountedStrike, c)
				return false
			}
			return true
		},
		contractGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_MonotoneInSpot checks that the call price never decreases and
// the put price never increases as the spot rises.
func TestProperty_MonotoneInSpot(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("call non-decreasing, put non-increasing in spot", prop.ForAll(
		func(c models.OptionContract, bump float64) bool {
			p, err := NewPricer(c)
			if err != nil {
				return false
			}
			higher := c.Spot + bump

			callBase, err := p.CallPrice(Override{})
			if err != nil {
				return false
			}
			callUp, err := p.CallPrice(Override{Spot: &higher})
			if err != nil {
				return false
			}
			if callUp < callBase-1e-9 {
				t.Logf("call fell %e -> %e on spot bump %v for %+v", callBase, callUp, bump, c)
				return false
			}

			putBase, err := p.PutPrice(Override{})
			if err != nil {
				return false
			}
			putUp, err := p.PutPrice(Override{Spot: &higher})
			if err != nil {
				return false
			}
			if putUp > putBase+1e-9 {
				t.Logf("put rose %e -> %e on spot bump %v for %+v", putBase, putUp, bump, c)
				return false
			}
			return true
		},
		contractGen(),
		gen.Float64Range(0.1, 50),
	))

	properties.TestingRun(t)
}

// TestProperty_DeltaBounds checks the forward-difference delta estimates:
// call delta in (0, 1), put delta in (-1, 0), up to finite-difference noise.
func TestProperty_DeltaBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("delta estimates stay inside their unit bands", prop.ForAll(
		func(c models.OptionContract) bool {
			p, err := NewPricer(c)
			if err != nil {
				return false
			}
			callDelta, err := p.Delta(models.OptionKindCall)
			if err != nil {
				return false
			}
			if callDelta < -1e-9 || callDelta > 1+1e-9 {
				t.Logf("call delta %v out of band for %+v", callDelta, c)
				return false
			}
			putDelta, err := p.Delta(models.OptionKindPut)
			if err != nil {
				return false
			}
			if putDelta < -1-1e-9 || putDelta > 1e-9 {
				t.Logf("put delta %v out of band for %+v", putDelta, c)
				return false
			}
			return true
		},
		contractGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_ImpliedVolRoundTrip prices a contract, inverts the price, and
// checks the recovered volatility against the one priced with, within 1e-4.
func TestProperty_ImpliedVolRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())
	parameters.MaxShrinkCount = 0
	properties := gopter.NewProperties(parameters)

	properties.Property("implied volatility recovers the pricing volatility", prop.ForAll(
		func(c models.OptionContract, kind models.OptionKind) bool {
			p, err := NewPricer(c)
			if err != nil {
				return false
			}
			market, err := p.Price(kind)
			if err != nil {
				return false
			}
			iv, err := p.ImpliedVolatility(market, kind)
			if err != nil {
				t.Logf("ImpliedVolatility(%v, %s) for %+v: %v", market, kind, c, err)
				return false
			}
			if math.Abs(iv-c.Volatility) > 1e-4 {
				t.Logf("round trip drift %e for %+v", iv-c.Volatility, c)
				return false
			}
			return true
		},
		nearTheMoneyGen(),
		gen.OneConstOf(models.OptionKindCall, models.OptionKindPut),
	))

	properties.TestingRun(t)
}

// TestProperty_OverridesLeaveStateUntouched checks that no sequence of
// override-driven calls changes what the pricer later returns for its held
// contract.
func TestProperty_OverridesLeaveStateUntouched(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("held contract survives override traffic", prop.ForAll(
		func(c models.OptionContract, bump float64) bool {
			p, err := NewPricer(c)
			if err != nil {
				return false
			}
			before, err := p.Price(models.OptionKindCall)
			if err != nil {
				return false
			}

			spot := c.Spot + bump
			vol := c.Volatility + bump/100
			if _, err := p.CallPrice(Override{Spot: &spot, Volatility: &vol}); err != nil {
				return false
			}
			if _, err := p.GreeksFor(models.OptionKindPut); err != nil {
				t.Logf("GreeksFor for %+v: %v", c, err)
				return false
			}

			after, err := p.Price(models.OptionKindCall)
			if err != nil {
				return false
			}
			if before != after {
				t.Logf("held price drifted %v -> %v for %+v", before, after, c)
				return false
			}
			return p.Contract() == c
		},
		contractGen(),
		gen.Float64Range(0.1, 20),
	))

	properties.TestingRun(t)
}
