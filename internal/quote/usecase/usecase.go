package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-repricer/internal/catalog"
	"github.com/fekuna/omnipos-repricer/internal/logger"
	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/fekuna/omnipos-repricer/internal/pricing"
	"github.com/fekuna/omnipos-repricer/internal/quote"
	"github.com/fekuna/omnipos-repricer/internal/quote/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type quoteUseCase struct {
	repo   catalog.Repository
	logger logger.ZapLogger
}

func NewQuoteUseCase(repo catalog.Repository, log logger.ZapLogger) quote.UseCase {
	return &quoteUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *quoteUseCase) AvailablePostage(ctx context.Context, costPrice float64) ([]model.PostageOption, []model.PostageOption, error) {
	options, err := uc.repo.PostageOptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	available, removed := model.FilterPostage(options, costPrice)
	for _, o := range removed {
		uc.logger.Debug("postage option excluded",
			zap.String("label", o.Label),
			zap.Float64("max_eligible_cost", *o.MaxEligibleCost),
			zap.Float64("cost_price", costPrice),
		)
	}
	return available, removed, nil
}

func (uc *quoteUseCase) QuotePlatforms(ctx context.Context, input *dto.QuoteInput) ([]model.PlatformQuote, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}

	log := uc.logger.With(zap.String("run_id", uuid.New().String()))

	platforms, err := uc.platforms(ctx)
	if err != nil {
		return nil, err
	}

	postCost, err := uc.resolveSinglePostage(ctx, input)
	if err != nil {
		return nil, err
	}

	quotes := make([]model.PlatformQuote, 0, len(platforms))
	for _, p := range platforms {
		res, err := pricing.FindSellingPrice(p.Inputs(input.CostPrice, postCost, input.VATPct))
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", p.Name, err)
		}
		logSolve(log, p, res)

		quotes = append(quotes, model.PlatformQuote{
			Platform: p,
			PostCost: postCost,
			Result:   res,
		})
	}

	log.Info("platform quotes computed",
		zap.Float64("cost_price", input.CostPrice),
		zap.Float64("post_cost", postCost),
		zap.Int("platforms", len(quotes)),
	)
	return quotes, nil
}

func (uc *quoteUseCase) QuoteQuantities(ctx context.Context, input *dto.QuantityQuoteInput) ([]model.DiscountTable, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}

	log := uc.logger.With(zap.String("run_id", uuid.New().String()))

	platforms, err := uc.platforms(ctx)
	if err != nil {
		return nil, err
	}

	tiers, err := uc.resolveTierPostage(ctx, input)
	if err != nil {
		return nil, err
	}

	tables := make([]model.DiscountTable, 0, len(platforms))
	for _, p := range platforms {
		rows, err := pricing.QuantityDiscounts(model.QuantityInputs{
			Unit:        p.Inputs(input.CostPrice, 0, input.VATPct),
			MaxQuantity: input.MaxQuantity,
			TierPostage: tiers,
		})
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", p.Name, err)
		}
		for _, row := range rows {
			if !row.Converged {
				log.Warn("quantity tier did not converge",
					zap.String("platform", p.Name),
					zap.Int("quantity", row.Quantity),
					zap.Float64("sell_price", row.SellPrice),
				)
			}
		}

		tables = append(tables, model.DiscountTable{Platform: p, Rows: rows})
	}

	log.Info("quantity discounts computed",
		zap.Float64("cost_price", input.CostPrice),
		zap.Int("max_quantity", input.MaxQuantity),
		zap.Int("platforms", len(tables)),
	)
	return tables, nil
}

func (uc *quoteUseCase) platforms(ctx context.Context) ([]model.PlatformProfile, error) {
	platforms, err := uc.repo.Platforms(ctx)
	if err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	return platforms, nil
}

func (uc *quoteUseCase) resolveSinglePostage(ctx context.Context, input *dto.QuoteInput) (float64, error) {
	if input.PostCost != nil {
		return *input.PostCost, nil
	}

	available, removed, err := uc.AvailablePostage(ctx, input.CostPrice)
	if err != nil {
		return 0, err
	}
	if input.PostageLabel == "" {
		if len(available) == 0 {
			return 0, catalog.ErrNoPostageAvailable
		}
		return available[0].Cost, nil
	}
	return pick(available, removed, input.PostageLabel)
}

// resolveTierPostage maps every quantity to a postage cost. Tiers without a
// choice get the second eligible option, or the first when only one exists.
func (uc *quoteUseCase) resolveTierPostage(ctx context.Context, input *dto.QuantityQuoteInput) (map[int]float64, error) {
	available, removed, err := uc.AvailablePostage(ctx, input.CostPrice)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, catalog.ErrNoPostageAvailable
	}

	fallback := available[0]
	if len(available) > 1 {
		fallback = available[1]
	}

	tiers := make(map[int]float64, input.MaxQuantity)
	for q := 1; q <= input.MaxQuantity; q++ {
		label, ok := input.TierPostage[q]
		if !ok || label == "" {
			tiers[q] = fallback.Cost
			continue
		}
		cost, err := pick(available, removed, label)
		if err != nil {
			return nil, fmt.Errorf("quantity %d: %w", q, err)
		}
		tiers[q] = cost
	}
	return tiers, nil
}

func pick(available, removed []model.PostageOption, label string) (float64, error) {
	if o, ok := catalog.FindPostage(available, label); ok {
		return o.Cost, nil
	}
	if _, ok := catalog.FindPostage(removed, label); ok {
		return 0, fmt.Errorf("%w: %s", catalog.ErrPostageIneligible, label)
	}
	return 0, fmt.Errorf("%w: %s", catalog.ErrUnknownPostage, label)
}

func logSolve(log logger.ZapLogger, p model.PlatformProfile, res model.PricingResult) {
	fields := []zap.Field{
		zap.String("platform", p.Name),
		zap.Float64("sell_price", res.SellPrice),
		zap.Float64("achieved_profit", res.AchievedProfit),
	}
	switch {
	case res.Floored:
		log.Warn("selling price clamped at zero", fields...)
	case !res.Converged:
		log.Warn("selling price did not converge", fields...)
	default:
		log.Debug("selling price solved", fields...)
	}
}
