package quote

import (
	"context"

	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/fekuna/omnipos-repricer/internal/quote/dto"
)

type UseCase interface {
	AvailablePostage(ctx context.Context, costPrice float64) (available, removed []model.PostageOption, err error)
	QuotePlatforms(ctx context.Context, input *dto.QuoteInput) ([]model.PlatformQuote, error)
	QuoteQuantities(ctx context.Context, input *dto.QuantityQuoteInput) ([]model.DiscountTable, error)
}
