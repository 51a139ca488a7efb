package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type QuoteInput struct {
	CostPrice    float64
	VATPct       float64
	PostageLabel string   // Optional, first eligible option when empty
	PostCost     *float64 // Overrides PostageLabel when set
}

func (in QuoteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CostPrice, validation.Min(0.0)),
		validation.Field(&in.VATPct, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&in.PostCost, validation.Min(0.0)),
	)
}

type QuantityQuoteInput struct {
	CostPrice   float64
	VATPct      float64
	MaxQuantity int
	// TierPostage maps a quantity to a postage label. Unset tiers fall back
	// to the default multi-buy option.
	TierPostage map[int]string
}

func (in QuantityQuoteInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CostPrice, validation.Min(0.0)),
		validation.Field(&in.VATPct, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&in.MaxQuantity, validation.Required, validation.Min(1)),
	)
}
