package pricing

import "github.com/fekuna/omnipos-repricer/internal/model"

// QuantityDiscounts solves every quantity tier from 1 to in.MaxQuantity on
// its own and compares it against a baseline of q single-unit sales. The
// baseline unit price uses the tier-1 postage.
func QuantityDiscounts(in model.QuantityInputs) ([]model.QuantityDiscountRow, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unit := in.Unit
	unit.PostCost = in.TierPostage[1]
	baseline, err := FindSellingPrice(unit)
	if err != nil {
		return nil, err
	}

	rows := make([]model.QuantityDiscountRow, 0, in.MaxQuantity)
	for q := 1; q <= in.MaxQuantity; q++ {
		tier := in.Unit
		tier.CostPrice = in.Unit.CostPrice * float64(q)
		tier.PostCost = in.TierPostage[q]

		res, err := FindSellingPrice(tier)
		if err != nil {
			return nil, err
		}

		baselineTotal := RoundCurrency(baseline.SellPrice * float64(q))
		discount := RoundCurrency(baselineTotal - res.SellPrice)
		var discountPct float64
		if baselineTotal > 0 {
			discountPct = discount / baselineTotal * 100
		}

		rows = append(rows, model.QuantityDiscountRow{
			Quantity:       q,
			PostCost:       tier.PostCost,
			SellPrice:      res.SellPrice,
			AchievedProfit: res.AchievedProfit,
			BaselineTotal:  baselineTotal,
			DiscountAmount: discount,
			DiscountPct:    discountPct,
			Converged:      res.Converged,
		})
	}
	return rows, nil
}
