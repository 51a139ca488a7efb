package pricing

import (
	"math"

	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/shopspring/decimal"
)

const (
	// Tolerance is the accepted gap between achieved and target profit,
	// as a fraction (0.0001 is 0.01 percentage points).
	Tolerance = 0.0001
	// MaxIterations caps profit evaluations per solve.
	MaxIterations = 10000
	// PriceStep is the first step taken away from the initial guess.
	PriceStep = 0.01

	// MaxSellPrice bounds the upward walk for targets the model can never reach.
	MaxSellPrice = 1_000_000.0

	roundingEpsilon = 1e-9
	minBracket      = 1e-9
)

// FindSellingPrice solves for the selling price whose profit fraction matches
// in.TargetProfitPct. Failing to converge is not an error: the result carries
// the best price found and Converged=false.
func FindSellingPrice(in model.PricingInputs) (model.PricingResult, error) {
	if err := in.Validate(); err != nil {
		return model.PricingResult{}, err
	}

	price, converged, floored := search(in, in.TargetProfitPct/100)
	rounded := RoundCurrency(price)

	return model.PricingResult{
		SellPrice:      rounded,
		AchievedProfit: ProfitFraction(rounded, in),
		Converged:      converged,
		Floored:        floored,
	}, nil
}

// InitialGuess is a closed-form first approximation that ignores output VAT.
func InitialGuess(in model.PricingInputs) float64 {
	guess := (in.CostPrice + in.PostCost + in.ExtraCost) *
		(1 + in.PlatformFeePct/100 + in.VATPct/100 + in.TargetProfitPct/100)
	return math.Max(guess, 0)
}

// RoundCurrency rounds half away from zero to 2 decimal places. The epsilon
// keeps values such as 2.675 (stored as 2.67499...) rounding up.
func RoundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v + roundingEpsilon).Round(2).InexactFloat64()
}

// search walks away from the initial guess with a doubling step until the
// gap changes sign, then bisects the bracket. Profit fraction is increasing
// in price, so gap(lo) < 0 < gap(hi) holds throughout the bisection.
func search(in model.PricingInputs, target float64) (price float64, converged, floored bool) {
	gap := func(p float64) float64 {
		return ProfitFraction(p, in) - target
	}

	price = InitialGuess(in)
	g := gap(price)
	iter := 1
	if math.Abs(g) < Tolerance {
		return price, true, false
	}

	var lo, hi float64
	up := g < 0
	step := PriceStep
	for {
		if iter >= MaxIterations {
			return price, false, false
		}

		next := price - step
		if up {
			next = price + step
		}
		if up && next > MaxSellPrice {
			return price, false, false
		}
		if !up && next <= 0 {
			lo, hi = 0, price
			break
		}

		iter++
		gn := gap(next)
		if math.Abs(gn) < Tolerance {
			return next, true, false
		}
		if (gn > 0) == up {
			if up {
				lo, hi = price, next
			} else {
				lo, hi = next, price
			}
			break
		}

		price = next
		step *= 2
	}

	for iter < MaxIterations && hi-lo >= minBracket {
		mid := lo + (hi-lo)/2
		iter++
		gm := gap(mid)
		if math.Abs(gm) < Tolerance {
			return mid, true, false
		}
		if gm < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Collapsing onto zero means no positive price reaches the target.
	if lo == 0 {
		return 0, false, true
	}
	return lo + (hi-lo)/2, false, false
}
