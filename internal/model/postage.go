package model

type PostageOption struct {
	Label           string   `db:"label" json:"label"`
	Cost            float64  `db:"cost" json:"cost"`
	MaxEligibleCost *float64 `db:"max_eligible_cost" json:"max_value,omitempty"` // Nullable
}

// EligibleFor reports whether the option may be used for a product costing
// costPrice. The ceiling is inclusive.
func (o PostageOption) EligibleFor(costPrice float64) bool {
	return o.MaxEligibleCost == nil || costPrice <= *o.MaxEligibleCost
}

// FilterPostage splits options into the ones usable for costPrice and the
// ones excluded by their ceiling, keeping configuration order in both.
func FilterPostage(options []PostageOption, costPrice float64) (available, removed []PostageOption) {
	for _, o := range options {
		if o.EligibleFor(costPrice) {
			available = append(available, o)
		} else {
			removed = append(removed, o)
		}
	}
	return available, removed
}
