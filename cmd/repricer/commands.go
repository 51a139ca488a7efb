package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fekuna/omnipos-repricer/config"
	"github.com/fekuna/omnipos-repricer/internal/catalog"
	"github.com/fekuna/omnipos-repricer/internal/catalog/repository"
	"github.com/fekuna/omnipos-repricer/internal/logger"
	"github.com/fekuna/omnipos-repricer/internal/quote/dto"
	"github.com/fekuna/omnipos-repricer/internal/quote/handler"
	"github.com/fekuna/omnipos-repricer/internal/quote/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg         *config.Config
	logger      logger.ZapLogger
	out         io.Writer
	catalogFile string
	db          *sqlx.DB
}

func newRootCommand(cfg *config.Config, log logger.ZapLogger, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, logger: log, out: out}

	root := &cobra.Command{
		Use:           "repricer",
		Short:         "Find marketplace selling prices that hit a target profit margin",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.catalogFile, "config", cfg.Catalog.File, "catalog file (.json, .yaml) read when CATALOG_SOURCE=file")

	root.AddCommand(
		a.quoteCommand(),
		a.multibuyCommand(),
		a.postageCommand(),
		a.catalogCommand(),
	)
	return root
}

func (a *app) quoteCommand() *cobra.Command {
	var (
		input    dto.QuoteInput
		postCost float64
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Selling price per platform for a single item",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			if cmd.Flags().Changed("post-cost") {
				input.PostCost = &postCost
			}
			h, err := a.handler(cmd.Context())
			if err != nil {
				return err
			}
			return h.Quote(cmd.Context(), &input)
		},
	}
	cmd.Flags().Float64Var(&input.CostPrice, "cost", 0, "product cost price")
	cmd.Flags().Float64Var(&input.VATPct, "vat", a.cfg.Pricing.VATPct, "VAT rate in percent")
	cmd.Flags().StringVar(&input.PostageLabel, "postage", "", "postage option label (defaults to the first eligible option)")
	cmd.Flags().Float64Var(&postCost, "post-cost", 0, "postage cost, overrides --postage")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func (a *app) multibuyCommand() *cobra.Command {
	var (
		input dto.QuantityQuoteInput
		tiers map[string]string
	)

	cmd := &cobra.Command{
		Use:   "multibuy",
		Short: "Quantity discount table per platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			parsed, err := parseTierPostage(tiers)
			if err != nil {
				return err
			}
			input.TierPostage = parsed

			h, err := a.handler(cmd.Context())
			if err != nil {
				return err
			}
			return h.Multibuy(cmd.Context(), &input)
		},
	}
	cmd.Flags().Float64Var(&input.CostPrice, "cost", 0, "unit cost price")
	cmd.Flags().Float64Var(&input.VATPct, "vat", a.cfg.Pricing.VATPct, "VAT rate in percent")
	cmd.Flags().IntVar(&input.MaxQuantity, "max-quantity", a.cfg.Pricing.MaxQuantity, "largest quantity to price")
	cmd.Flags().StringToStringVar(&tiers, "tier-postage", nil, "postage label per quantity, e.g. 2=\"Evri 0-2kg\"")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func (a *app) postageCommand() *cobra.Command {
	var costPrice float64

	cmd := &cobra.Command{
		Use:   "postage",
		Short: "List postage options available at a cost price",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			h, err := a.handler(cmd.Context())
			if err != nil {
				return err
			}
			return h.Postage(cmd.Context(), costPrice)
		},
	}
	cmd.Flags().Float64Var(&costPrice, "cost", 0, "product cost price")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func (a *app) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the SQLite catalog",
	}

	var from string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the SQLite catalog with the contents of a catalog file",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()
			dst, err := a.sqlite(cmd.Context())
			if err != nil {
				return err
			}
			nPlatforms, nPostage, err := catalog.Import(cmd.Context(), dst, repository.NewFileRepository(from))
			if err != nil {
				a.logger.Error("catalog import failed", zap.String("from", from), zap.Error(err))
				return err
			}
			a.logger.Info("catalog imported",
				zap.String("from", from),
				zap.Int("platforms", nPlatforms),
				zap.Int("postage_options", nPostage),
			)
			fmt.Fprintf(a.out, "Imported %d platforms and %d postage options\n", nPlatforms, nPostage)
			return nil
		},
	}
	importCmd.Flags().StringVar(&from, "from", "", "catalog file to import")
	_ = importCmd.MarkFlagRequired("from")

	cmd.AddCommand(importCmd)
	return cmd
}

func (a *app) handler(ctx context.Context) (*handler.QuoteHandler, error) {
	repo, err := a.repository(ctx)
	if err != nil {
		return nil, err
	}
	uc := usecase.NewQuoteUseCase(repo, a.logger)
	return handler.NewQuoteHandler(uc, a.logger, a.out), nil
}

func (a *app) repository(ctx context.Context) (catalog.Repository, error) {
	switch a.cfg.Catalog.Source {
	case config.CatalogSourceFile, "":
		return repository.NewFileRepository(a.catalogFile), nil
	case config.CatalogSourceSQLite:
		return a.sqlite(ctx)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", a.cfg.Catalog.Source)
	}
}

func (a *app) sqlite(ctx context.Context) (*repository.SQLiteRepository, error) {
	db, err := repository.OpenSQLite(ctx, a.cfg.Catalog.SQLiteDSN)
	if err != nil {
		a.logger.Error("Could not open catalog database", zap.Error(err))
		return nil, err
	}
	a.db = db

	repo := repository.NewSQLiteRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	a.logger.Debug("Opened SQLite catalog", zap.String("dsn", a.cfg.Catalog.SQLiteDSN))
	return repo, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// parseTierPostage turns "--tier-postage 2=label" pairs into quantity keys.
func parseTierPostage(raw map[string]string) (map[int]string, error) {
	tiers := make(map[int]string, len(raw))
	for k, label := range raw {
		q, err := cast.ToIntE(strings.TrimSpace(k))
		if err != nil || q < 1 {
			return nil, fmt.Errorf("tier postage quantity %q must be a positive whole number", k)
		}
		tiers[q] = strings.Trim(label, `"`)
	}
	return tiers, nil
}
