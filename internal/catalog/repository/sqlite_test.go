package repository

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-repricer/internal/catalog"
	"github.com/fekuna/omnipos-repricer/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return repo
}

func TestSQLiteRepository_Empty(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()

	platforms, err := repo.Platforms(ctx)
	if err != nil {
		t.Fatalf("Platforms: %v", err)
	}
	if len(platforms) != 0 {
		t.Errorf("len(platforms) = %d, want 0", len(platforms))
	}

	options, err := repo.PostageOptions(ctx)
	if err != nil {
		t.Fatalf("PostageOptions: %v", err)
	}
	if len(options) != 0 {
		t.Errorf("len(options) = %d, want 0", len(options))
	}
}

func TestSQLiteRepository_ReplaceKeepsOrder(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()

	five := 5.0
	platforms := []model.PlatformProfile{
		{Name: "Website", FeePct: 2.9, TargetProfitPct: 25},
		{Name: "Amazon", FeePct: 15.3, TargetProfitPct: 20, ExtraCost: 0.25},
		{Name: "eBay", FeePct: 12.8, TargetProfitPct: 16},
	}
	postage := []model.PostageOption{
		{Label: "Large Letter untracked", Cost: 1.37, MaxEligibleCost: &five},
		{Label: "Parcel 48 Tracked", Cost: 3.47},
	}

	if err := repo.Replace(ctx, platforms, postage); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	gotPlatforms, err := repo.Platforms(ctx)
	if err != nil {
		t.Fatalf("Platforms: %v", err)
	}
	if len(gotPlatforms) != len(platforms) {
		t.Fatalf("len(platforms) = %d, want %d", len(gotPlatforms), len(platforms))
	}
	for i := range platforms {
		if gotPlatforms[i] != platforms[i] {
			t.Errorf("platforms[%d] = %+v, want %+v", i, gotPlatforms[i], platforms[i])
		}
	}

	gotPostage, err := repo.PostageOptions(ctx)
	if err != nil {
		t.Fatalf("PostageOptions: %v", err)
	}
	if len(gotPostage) != 2 {
		t.Fatalf("len(postage) = %d, want 2", len(gotPostage))
	}
	if gotPostage[0].MaxEligibleCost == nil || *gotPostage[0].MaxEligibleCost != 5 {
		t.Errorf("ceiling lost: %+v", gotPostage[0])
	}
	if gotPostage[1].MaxEligibleCost != nil || gotPostage[1].Cost != 3.47 {
		t.Errorf("postage[1] = %+v", gotPostage[1])
	}

	// A second replace drops what was there before.
	if err := repo.Replace(ctx, platforms[:1], nil); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	gotPlatforms, _ = repo.Platforms(ctx)
	gotPostage, _ = repo.PostageOptions(ctx)
	if len(gotPlatforms) != 1 || len(gotPostage) != 0 {
		t.Errorf("after replace got %d platforms / %d postage, want 1 / 0", len(gotPlatforms), len(gotPostage))
	}
}

func TestSQLiteRepository_DuplicateRollsBack(t *testing.T) {
	repo := newTestSQLite(t)
	ctx := context.Background()

	if err := repo.Replace(ctx, []model.PlatformProfile{{Name: "eBay"}}, nil); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	dupes := []model.PlatformProfile{{Name: "Amazon"}, {Name: "Amazon"}}
	if err := repo.Replace(ctx, dupes, nil); err == nil {
		t.Fatal("expected duplicate name error")
	}

	got, err := repo.Platforms(ctx)
	if err != nil {
		t.Fatalf("Platforms: %v", err)
	}
	if len(got) != 1 || got[0].Name != "eBay" {
		t.Errorf("failed replace should leave previous catalog, got %+v", got)
	}
}

func TestImport_FileIntoSQLite(t *testing.T) {
	ctx := context.Background()
	src := NewFileRepository(writeCatalog(t, "PCConfigs.json", jsonCatalog))
	dst := newTestSQLite(t)

	nPlatforms, nPostage, err := catalog.Import(ctx, dst, src)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if nPlatforms != 3 || nPostage != 4 {
		t.Errorf("imported %d / %d, want 3 / 4", nPlatforms, nPostage)
	}

	options, err := dst.PostageOptions(ctx)
	if err != nil {
		t.Fatalf("PostageOptions: %v", err)
	}
	if options[0].Label != "Large Letter untracked" || options[3].Label != "Evri 0-2kg" {
		t.Errorf("order not preserved: %+v", options)
	}
}

func TestImport_SourceError(t *testing.T) {
	ctx := context.Background()
	src := NewFileRepository(t.TempDir() + "/nope.json")
	dst := newTestSQLite(t)

	if _, _, err := catalog.Import(ctx, dst, src); err == nil {
		t.Fatal("expected error from unreadable source")
	}
}
