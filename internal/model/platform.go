package model

// PlatformProfile holds the per-marketplace settings. Absent values are zero.
type PlatformProfile struct {
	Name            string  `db:"name" json:"name"`
	FeePct          float64 `db:"fee_pct" json:"fee"`
	TargetProfitPct float64 `db:"target_profit_pct" json:"target_profit_pct"`
	ExtraCost       float64 `db:"extra_cost" json:"extra_cost"`
}

// Inputs builds the solver tuple for this platform.
func (p PlatformProfile) Inputs(costPrice, postCost, vatPct float64) PricingInputs {
	return PricingInputs{
		CostPrice:       costPrice,
		PostCost:        postCost,
		PlatformFeePct:  p.FeePct,
		VATPct:          vatPct,
		TargetProfitPct: p.TargetProfitPct,
		ExtraCost:       p.ExtraCost,
	}
}
