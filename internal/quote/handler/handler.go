package handler

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/fekuna/omnipos-repricer/internal/logger"
	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/fekuna/omnipos-repricer/internal/quote"
	"github.com/fekuna/omnipos-repricer/internal/quote/dto"
	"go.uber.org/zap"
)

var (
	highlight = color.New(color.FgGreen, color.Bold).SprintFunc()
	warning   = color.New(color.FgRed).SprintFunc()
	heading   = color.New(color.Bold).SprintFunc()
)

var discountColumns = []string{"Quantity", "Profit", "Baseline Total", "Discount Amount", "Selling Price", "Discount %"}

// Selling Price and Discount % are highlighted.
var highlightedColumns = map[int]bool{4: true, 5: true}

type QuoteHandler struct {
	uc     quote.UseCase
	logger logger.ZapLogger
	out    io.Writer
}

func NewQuoteHandler(uc quote.UseCase, log logger.ZapLogger, out io.Writer) *QuoteHandler {
	return &QuoteHandler{
		uc:     uc,
		logger: log,
		out:    out,
	}
}

// Postage lists the options a product at costPrice can ship with.
func (h *QuoteHandler) Postage(ctx context.Context, costPrice float64) error {
	available, removed, err := h.uc.AvailablePostage(ctx, costPrice)
	if err != nil {
		h.logger.Error("failed to load postage options", zap.Error(err))
		return err
	}

	h.writeRemoved(removed)
	if len(available) == 0 {
		fmt.Fprintln(h.out, warning("No available postage options for the entered cost price."))
		return nil
	}
	for _, o := range available {
		fmt.Fprintf(h.out, "%s (Cost: %s)\n", o.Label, Currency(o.Cost))
	}
	return nil
}

// Quote prints one selling price per platform.
func (h *QuoteHandler) Quote(ctx context.Context, input *dto.QuoteInput) error {
	if input.PostCost == nil {
		_, removed, err := h.uc.AvailablePostage(ctx, input.CostPrice)
		if err != nil {
			h.logger.Error("failed to load postage options", zap.Error(err))
			return err
		}
		h.writeRemoved(removed)
	}

	quotes, err := h.uc.QuotePlatforms(ctx, input)
	if err != nil {
		h.logger.Error("failed to quote platforms", zap.Error(err))
		return err
	}
	if len(quotes) > 0 {
		fmt.Fprintf(h.out, "Selected Postage Cost: %s\n\n", Currency(quotes[0].PostCost))
	}

	for _, q := range quotes {
		fmt.Fprintf(h.out, "%s: Selling Price = %s, Profit = %s%s\n",
			heading(q.Platform.Name),
			highlight(Currency(q.Result.SellPrice)),
			highlight(Percent(q.Result.AchievedProfit)),
			note(q.Result),
		)
	}
	return nil
}

// Multibuy prints a quantity discount table per platform.
func (h *QuoteHandler) Multibuy(ctx context.Context, input *dto.QuantityQuoteInput) error {
	_, removed, err := h.uc.AvailablePostage(ctx, input.CostPrice)
	if err != nil {
		h.logger.Error("failed to load postage options", zap.Error(err))
		return err
	}
	h.writeRemoved(removed)

	tables, err := h.uc.QuoteQuantities(ctx, input)
	if err != nil {
		h.logger.Error("failed to quote quantities", zap.Error(err))
		return err
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(h.out)
		}
		fmt.Fprintf(h.out, "%s:\n", heading(t.Platform.Name))
		h.writeTable(discountRows(t.Rows))
	}
	return nil
}

func (h *QuoteHandler) writeRemoved(removed []model.PostageOption) {
	if len(removed) == 0 {
		return
	}
	notes := make([]string, 0, len(removed))
	for _, o := range removed {
		notes = append(notes, fmt.Sprintf("%s (max cost: %s) not available", o.Label, Currency(*o.MaxEligibleCost)))
	}
	fmt.Fprintln(h.out, warning("The following postage options are not available for the entered cost price: "+strings.Join(notes, ", ")))
}

func discountRows(rows []model.QuantityDiscountRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			strconv.Itoa(r.Quantity),
			Percent(r.AchievedProfit),
			Currency(r.BaselineTotal),
			Currency(r.DiscountAmount),
			Currency(r.SellPrice),
			fmt.Sprintf("%.2f%%", r.DiscountPct),
		})
	}
	return cells
}

// writeTable pads before colouring so escape codes do not skew the widths.
func (h *QuoteHandler) writeTable(rows [][]string) {
	widths := make([]int, len(discountColumns))
	for i, c := range discountColumns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(cells []string, paint bool) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-len([]rune(cell)))
			if paint && highlightedColumns[i] {
				padded = highlight(padded)
			}
			parts[i] = padded
		}
		fmt.Fprintln(h.out, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(discountColumns, false)
	for _, row := range rows {
		line(row, true)
	}
}

func note(res model.PricingResult) string {
	switch {
	case res.Floored:
		return warning(" (price floored at zero)")
	case !res.Converged:
		return warning(" (target not reachable)")
	}
	return ""
}

// Currency formats pounds with thousands separators, e.g. £1,234.50.
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	return sign + "£" + humanize.FormatFloat("#,###.##", v)
}

// Percent renders a fraction such as 0.16 as "16.00%".
func Percent(frac float64) string {
	return fmt.Sprintf("%.2f%%", frac*100)
}
