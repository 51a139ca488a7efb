package pricing

import (
	"math"
	"testing"

	"github.com/fekuna/omnipos-repricer/internal/model"
)

func TestProfitFraction(t *testing.T) {
	tests := []struct {
		name      string
		sellPrice float64
		in        model.PricingInputs
		expect    float64
	}{
		{
			name:      "zero sell price guarded",
			sellPrice: 0,
			in:        model.PricingInputs{CostPrice: 8.92, PostCost: 3.47, PlatformFeePct: 15, VATPct: 20},
			expect:    0,
		},
		{
			name:      "no costs leaves fee and output vat",
			sellPrice: 12,
			in:        model.PricingInputs{PlatformFeePct: 15, VATPct: 20},
			expect:    1 - 0.15 - 1.0/6,
		},
		{
			name:      "cost price vat cancels out",
			sellPrice: 12,
			in:        model.PricingInputs{CostPrice: 10, VATPct: 20},
			expect:    0,
		},
		{
			name:      "postage vat is reclaimed",
			sellPrice: 24,
			in:        model.PricingInputs{PostCost: 4, VATPct: 25},
			expect:    (24 - 4 - (4.0 - 1.0)) / 24,
		},
		{
			name:      "extra cost is flat",
			sellPrice: 30,
			in:        model.PricingInputs{ExtraCost: 5},
			expect:    (25 - 5) / 30.0,
		},
		{
			name:      "tracked parcel at 22.35",
			sellPrice: 22.35,
			in:        model.PricingInputs{CostPrice: 8.92, PostCost: 3.47, PlatformFeePct: 15, VATPct: 20},
			expect:    (22.35*0.85 - 22.35/6 - 11.696) / 22.35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitFraction(tt.sellPrice, tt.in)
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("ProfitFraction(%v, %+v) = %v, want %v", tt.sellPrice, tt.in, got, tt.expect)
			}
		})
	}
}

func TestProfitFraction_ZeroPriceIsExactlyZero(t *testing.T) {
	in := model.PricingInputs{CostPrice: 100, PostCost: 10, PlatformFeePct: 50, VATPct: 20, ExtraCost: 3}
	if got := ProfitFraction(0, in); got != 0 {
		t.Fatalf("ProfitFraction(0) = %v, want exactly 0", got)
	}
}

func TestProfitFraction_OutputVATIgnoresRate(t *testing.T) {
	// Only input VAT depends on VATPct; with no costs the rate has no effect.
	base := model.PricingInputs{PlatformFeePct: 10}
	withVAT := base
	withVAT.VATPct = 5

	if a, b := ProfitFraction(50, base), ProfitFraction(50, withVAT); a != b {
		t.Errorf("output VAT changed with rate: %v vs %v", a, b)
	}
}

func TestProfitFraction_Monotonic(t *testing.T) {
	inputs := []model.PricingInputs{
		{CostPrice: 8.92, PostCost: 3.47, PlatformFeePct: 15, VATPct: 20},
		{CostPrice: 1, PostCost: 0, PlatformFeePct: 0, VATPct: 0},
		{CostPrice: 250, PostCost: 8.07, PlatformFeePct: 12.5, VATPct: 20, ExtraCost: 0.2},
		{CostPrice: 0, PostCost: 1.37, PlatformFeePct: 30, VATPct: 50},
	}

	for _, in := range inputs {
		prev := math.Inf(-1)
		for p := 0.25; p <= 500; p += 0.25 {
			got := ProfitFraction(p, in)
			if got <= prev {
				t.Fatalf("not strictly increasing for %+v at %v: %v <= %v", in, p, got, prev)
			}
			prev = got
		}
	}
}

func TestProfit(t *testing.T) {
	in := model.PricingInputs{CostPrice: 10, PostCost: 2, PlatformFeePct: 10, VATPct: 20, ExtraCost: 1}
	// 30*0.9 - 2 - (10 + 2 + (5 - 0.4 - 2) + 1)
	want := 27 - 2 - (10 + 2 + 2.6 + 1)
	if got := Profit(30, in); math.Abs(got-want) > 1e-9 {
		t.Errorf("Profit(30) = %v, want %v", got, want)
	}
}
