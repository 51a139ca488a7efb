// Package pricing holds the profit model and the selling-price solver.
// Everything here is pure: no I/O, no shared state.
package pricing

import "github.com/fekuna/omnipos-repricer/internal/model"

// Profit returns the absolute profit made when selling at sellPrice.
//
// Output VAT is always taken as the 20/120 share of the gross price, whatever
// VATPct says. VATPct only drives the VAT reclaimed on cost and postage.
func Profit(sellPrice float64, in model.PricingInputs) float64 {
	netOfFee := sellPrice * (1 - in.PlatformFeePct/100)
	sellPriceVAT := sellPrice / 120 * 20

	postCostVAT := in.PostCost * in.VATPct / 100
	costPriceVAT := in.CostPrice * in.VATPct / 100
	totalVATPaid := postCostVAT + costPriceVAT

	incomeAfterFees := netOfFee - in.PostCost
	extraVATDue := sellPriceVAT - totalVATPaid

	return incomeAfterFees - (in.CostPrice + costPriceVAT + extraVATDue + in.ExtraCost)
}

// ProfitFraction returns profit as a fraction of sellPrice (0.16 is 16%).
// A zero sellPrice yields 0.
func ProfitFraction(sellPrice float64, in model.PricingInputs) float64 {
	if sellPrice == 0 {
		return 0
	}
	return Profit(sellPrice, in) / sellPrice
}
