package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/fekuna/omnipos-repricer/internal/model"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// document mirrors the catalog file. MapSlice keeps entries in file order,
// which also decides the default postage picks. JSON is read by the same
// decoder since it is valid YAML flow syntax.
type document struct {
	Platforms      yaml.MapSlice `yaml:"platforms"`
	PostageOptions yaml.MapSlice `yaml:"postage_options"`
}

// Catalog is a decoded snapshot of a catalog file.
type Catalog struct {
	Platforms      []model.PlatformProfile
	PostageOptions []model.PostageOption
}

type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Platforms(ctx context.Context) ([]model.PlatformProfile, error) {
	c, err := r.load()
	if err != nil {
		return nil, err
	}
	return c.Platforms, nil
}

func (r *FileRepository) PostageOptions(ctx context.Context) ([]model.PostageOption, error) {
	c, err := r.load()
	if err != nil {
		return nil, err
	}
	return c.PostageOptions, nil
}

// The file is re-read on every call so edits show up without a restart.
func (r *FileRepository) load() (*Catalog, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", r.path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", r.path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. Missing or malformed numbers become 0 so
// a partly broken file still prices at break-even instead of failing.
//
//	{
//	  "platforms": {"eBay": {"fee": 12.8, "target_profit_pct": 16, "extra_cost": 0.2}},
//	  "postage_options": {
//	    "Parcel 48 Tracked": 3.47,
//	    "Large Letter": {"cost": 1.37, "max_value": 5.00}
//	  }
//	}
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	c := &Catalog{
		Platforms:      make([]model.PlatformProfile, 0, len(doc.Platforms)),
		PostageOptions: make([]model.PostageOption, 0, len(doc.PostageOptions)),
	}

	for _, item := range doc.Platforms {
		fields := toFields(item.Value)
		c.Platforms = append(c.Platforms, model.PlatformProfile{
			Name:            cast.ToString(item.Key),
			FeePct:          cast.ToFloat64(firstOf(fields, "fee", "fee_pct")),
			TargetProfitPct: cast.ToFloat64(fields["target_profit_pct"]),
			ExtraCost:       cast.ToFloat64(fields["extra_cost"]),
		})
	}

	for _, item := range doc.PostageOptions {
		opt := model.PostageOption{Label: cast.ToString(item.Key)}
		if fields := toFields(item.Value); fields != nil {
			opt.Cost = cast.ToFloat64(fields["cost"])
			if raw := firstOf(fields, "max_value", "max_eligible_cost"); raw != nil {
				if v, err := cast.ToFloat64E(raw); err == nil {
					opt.MaxEligibleCost = &v
				}
			}
		} else {
			// Bare number form: "label": 3.47
			opt.Cost = cast.ToFloat64(item.Value)
		}
		c.PostageOptions = append(c.PostageOptions, opt)
	}

	return c, nil
}

func toFields(v interface{}) map[string]interface{} {
	switch m := v.(type) {
	case yaml.MapSlice:
		out := make(map[string]interface{}, len(m))
		for _, item := range m {
			out[cast.ToString(item.Key)] = item.Value
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[cast.ToString(k)] = val
		}
		return out
	case map[string]interface{}:
		return m
	}
	return nil
}

func firstOf(fields map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
