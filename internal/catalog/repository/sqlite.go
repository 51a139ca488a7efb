package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS platform_profiles (
		position          INTEGER NOT NULL,
		name              TEXT PRIMARY KEY,
		fee_pct           REAL NOT NULL DEFAULT 0,
		target_profit_pct REAL NOT NULL DEFAULT 0,
		extra_cost        REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS postage_options (
		position          INTEGER NOT NULL,
		label             TEXT PRIMARY KEY,
		cost              REAL NOT NULL DEFAULT 0,
		max_eligible_cost REAL
	)`,
}

type platformRow struct {
	Position int `db:"position"`
	model.PlatformProfile
}

type postageRow struct {
	Position int `db:"position"`
	model.PostageOption
}

// OpenSQLite opens the catalog database. A single connection keeps
// ":memory:" databases alive for the lifetime of the pool.
func OpenSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dsn, err)
	}
	return db, nil
}

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Platforms(ctx context.Context) ([]model.PlatformProfile, error) {
	platforms := []model.PlatformProfile{}
	query := `SELECT name, fee_pct, target_profit_pct, extra_cost FROM platform_profiles ORDER BY position ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &platforms, query); err != nil {
		return nil, err
	}
	return platforms, nil
}

func (r *SQLiteRepository) PostageOptions(ctx context.Context) ([]model.PostageOption, error) {
	options := []model.PostageOption{}
	query := `SELECT label, cost, max_eligible_cost FROM postage_options ORDER BY position ASC, label ASC`
	if err := r.DB.SelectContext(ctx, &options, query); err != nil {
		return nil, err
	}
	return options, nil
}

// Replace swaps the stored catalog for the given one in a single transaction.
func (r *SQLiteRepository) Replace(ctx context.Context, platforms []model.PlatformProfile, postage []model.PostageOption) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM platform_profiles`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM postage_options`); err != nil {
		return err
	}

	for i, p := range platforms {
		query := `
			INSERT INTO platform_profiles (position, name, fee_pct, target_profit_pct, extra_cost)
			VALUES (:position, :name, :fee_pct, :target_profit_pct, :extra_cost)
		`
		if _, err := tx.NamedExecContext(ctx, query, platformRow{Position: i, PlatformProfile: p}); err != nil {
			return fmt.Errorf("insert platform %q: %w", p.Name, err)
		}
	}

	for i, o := range postage {
		query := `
			INSERT INTO postage_options (position, label, cost, max_eligible_cost)
			VALUES (:position, :label, :cost, :max_eligible_cost)
		`
		if _, err := tx.NamedExecContext(ctx, query, postageRow{Position: i, PostageOption: o}); err != nil {
			return fmt.Errorf("insert postage option %q: %w", o.Label, err)
		}
	}

	return tx.Commit()
}
