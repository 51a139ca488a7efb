package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-repricer/internal/model"
)

var (
	ErrEmptyCatalog       = errors.New("no platforms configured")
	ErrUnknownPostage     = errors.New("unknown postage option")
	ErrPostageIneligible  = errors.New("postage option not available for this cost price")
	ErrNoPostageAvailable = errors.New("no postage options available for this cost price")
)

// Repository supplies the configured platforms and postage options, both in
// the order they were configured.
type Repository interface {
	Platforms(ctx context.Context) ([]model.PlatformProfile, error)
	PostageOptions(ctx context.Context) ([]model.PostageOption, error)
}

type Writer interface {
	Replace(ctx context.Context, platforms []model.PlatformProfile, postage []model.PostageOption) error
}

// Import copies everything src holds into dst, replacing dst's contents.
func Import(ctx context.Context, dst Writer, src Repository) (int, int, error) {
	platforms, err := src.Platforms(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read platforms: %w", err)
	}
	postage, err := src.PostageOptions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read postage options: %w", err)
	}
	if err := dst.Replace(ctx, platforms, postage); err != nil {
		return 0, 0, fmt.Errorf("replace catalog: %w", err)
	}
	return len(platforms), len(postage), nil
}

func FindPostage(options []model.PostageOption, label string) (model.PostageOption, bool) {
	for _, o := range options {
		if o.Label == label {
			return o, true
		}
	}
	return model.PostageOption{}, false
}
