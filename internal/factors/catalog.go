// Package factors provides emission factor catalogs: the built-in default set
// and user catalog files in JSON or YAML.
package factors

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/rshade/ghgcalc/internal/emissions"
	"github.com/rshade/ghgcalc/internal/ingest"
	"github.com/rshade/ghgcalc/internal/logging"
)

// CatalogVersion is the only catalog document version understood.
const CatalogVersion = 1

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Catalog is the on-disk form of a factor set.
type Catalog struct {
	Version int                        `json:"version" yaml:"version"`
	Factors []emissions.EmissionFactor `json:"factors" yaml:"factors"`
}

//nolint:gochecknoglobals // Parsed once from the embedded catalog.
var (
	defaultOnce    sync.Once
	defaultFactors []emissions.EmissionFactor
	errDefault     error
)

// Default returns a copy of the built-in factor set.
func Default() ([]emissions.EmissionFactor, error) {
	defaultOnce.Do(func() {
		defaultFactors, errDefault = Parse(defaultCatalog, ingest.FormatYAML)
	})
	if errDefault != nil {
		return nil, fmt.Errorf("built-in catalog: %w", errDefault)
	}
	out := make([]emissions.EmissionFactor, len(defaultFactors))
	copy(out, defaultFactors)
	return out, nil
}

// Parse decodes a catalog document. A missing version is read as CatalogVersion.
func Parse(data []byte, format ingest.Format) ([]emissions.EmissionFactor, error) {
	var cat Catalog
	if err := ingest.Decode(data, format, &cat); err != nil {
		return nil, err
	}
	return checkCatalog(cat)
}

// LoadFile reads a catalog from path. The format follows the file extension.
func LoadFile(ctx context.Context, path string) ([]emissions.EmissionFactor, error) {
	var cat Catalog
	if err := ingest.DecodeFile(ctx, path, &cat); err != nil {
		return nil, err
	}
	out, err := checkCatalog(cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "factors").
		Str("path", path).
		Int("factor_count", len(out)).
		Msg("factor catalog loaded")

	return out, nil
}

func checkCatalog(cat Catalog) ([]emissions.EmissionFactor, error) {
	if cat.Version != 0 && cat.Version != CatalogVersion {
		return nil, fmt.Errorf("unsupported catalog version %d", cat.Version)
	}
	seen := make(map[string]bool, len(cat.Factors))
	for _, f := range cat.Factors {
		if seen[f.ID] {
			return nil, fmt.Errorf("duplicate factor id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return cat.Factors, nil
}

// Criteria selects factors in Filter. Zero fields match everything.
type Criteria struct {
	Category   emissions.Category
	Region     string
	ActiveOnly bool
}

// Filter returns the factors matching c, keeping their order. Region matching
// is case-insensitive.
func Filter(factors []emissions.EmissionFactor, c Criteria) []emissions.EmissionFactor {
	out := make([]emissions.EmissionFactor, 0, len(factors))
	for _, f := range factors {
		if c.Category != "" && f.Category != c.Category {
			continue
		}
		if c.Region != "" && !strings.EqualFold(f.Region, c.Region) {
			continue
		}
		if c.ActiveOnly && !f.IsActive {
			continue
		}
		out = append(out, f)
	}
	return out
}
