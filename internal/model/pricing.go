package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrInvalidInput = errors.New("invalid pricing input")

// PricingInputs is the full parameter tuple for a single-unit solve.
// Percentages are expressed in percent (15 means 15%).
type PricingInputs struct {
	CostPrice       float64 `json:"cost_price"`
	PostCost        float64 `json:"post_cost"`
	PlatformFeePct  float64 `json:"platform_fee_pct"`
	VATPct          float64 `json:"vat_pct"`
	TargetProfitPct float64 `json:"target_profit_pct"`
	ExtraCost       float64 `json:"extra_cost"`
}

func (in PricingInputs) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.CostPrice, validation.Min(0.0)),
		validation.Field(&in.PostCost, validation.Min(0.0)),
		validation.Field(&in.PlatformFeePct, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&in.VATPct, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&in.ExtraCost, validation.Min(0.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// PricingResult is what the solver hands back. AchievedProfit is a fraction
// of the selling price (0.16 for 16%), recomputed at the rounded SellPrice.
type PricingResult struct {
	SellPrice      float64 `json:"sell_price"`
	AchievedProfit float64 `json:"achieved_profit"`
	Converged      bool    `json:"converged"`
	Floored        bool    `json:"floored"`
}

type QuantityDiscountRow struct {
	Quantity       int     `json:"quantity"`
	PostCost       float64 `json:"post_cost"`
	SellPrice      float64 `json:"sell_price"`
	AchievedProfit float64 `json:"achieved_profit"`
	BaselineTotal  float64 `json:"baseline_total"`
	DiscountAmount float64 `json:"discount_amount"`
	DiscountPct    float64 `json:"discount_pct"`
	Converged      bool    `json:"converged"`
}

type PlatformQuote struct {
	Platform PlatformProfile `json:"platform"`
	PostCost float64         `json:"post_cost"`
	Result   PricingResult   `json:"result"`
}

type DiscountTable struct {
	Platform PlatformProfile       `json:"platform"`
	Rows     []QuantityDiscountRow `json:"rows"`
}

// QuantityInputs drives the multi-buy table. Unit.CostPrice is the cost of a
// single item; Unit.PostCost is ignored in favour of TierPostage, where a
// missing tier costs nothing to post.
type QuantityInputs struct {
	Unit        PricingInputs   `json:"unit"`
	MaxQuantity int             `json:"max_quantity"`
	TierPostage map[int]float64 `json:"tier_postage"`
}

func (in QuantityInputs) Validate() error {
	if err := in.Unit.Validate(); err != nil {
		return err
	}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.MaxQuantity, validation.Required, validation.Min(1)),
		validation.Field(&in.TierPostage, validation.Each(validation.Min(0.0))),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
