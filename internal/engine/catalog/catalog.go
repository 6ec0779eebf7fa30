// Package catalog loads the species list and the province geometry and
// hands them over only when both arrived.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rendis/redbook/internal/engine/fetch"
	"github.com/rendis/redbook/internal/engine/geo"
	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/engine/storage"
	"github.com/rendis/redbook/internal/model"
)

var ErrEmptySource = errors.New("empty data source")

// Sources names where each resource lives: a path, http(s):// or s3:// URL.
// Species may also point at a .db snapshot written by the sqlite exporter.
type Sources struct {
	Species      string
	Provinces    string
	Names        string // optional replacement name table
	NameProperty string // geometry property with the province id
}

// Catalog is the loaded, read-only data set.
type Catalog struct {
	Species   []model.Species
	Provinces *geo.ProvinceStore
	Names     *names.Table
}

// Load fetches both resources concurrently. Either failing aborts the load;
// nothing is retried.
func Load(ctx context.Context, src Sources, f *fetch.Fetcher, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tbl := names.Default()
	if src.Names != "" {
		data, err := f.Fetch(ctx, src.Names)
		if err != nil {
			return nil, fmt.Errorf("loading name table: %w", err)
		}
		if tbl, err = names.LoadTable(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("loading name table %s: %w", src.Names, err)
		}
	}

	c := &Catalog{Names: tbl}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		species, err := loadSpecies(gctx, src.Species, f)
		if err != nil {
			return fmt.Errorf("loading species %s: %w", src.Species, err)
		}
		c.Species = species
		return nil
	})

	g.Go(func() error {
		data, err := fetchNonEmpty(gctx, src.Provinces, f)
		if err != nil {
			return fmt.Errorf("loading provinces %s: %w", src.Provinces, err)
		}
		ps, err := geo.LoadProvinces(data, tbl, src.NameProperty)
		if err != nil {
			return fmt.Errorf("loading provinces %s: %w", src.Provinces, err)
		}
		c.Provinces = ps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if un := c.Provinces.Unmapped(); len(un) > 0 {
		logger.Warn("geometry features without a province name", "features", un)
	}
	if un := c.Unmapped(); len(un) > 0 {
		logger.Warn("population provinces missing from name table", "provinces", un)
	}
	logger.Info("catalog loaded",
		"species", len(c.Species),
		"provinces", len(c.Provinces.Shapes()),
		"names", tbl.Len())

	return c, nil
}

// Engine returns a fresh lookup engine over the catalog.
func (c *Catalog) Engine() *lookup.Engine {
	return lookup.New(c.Species, c.Names)
}

// Unmapped lists population province names the name table cannot resolve.
func (c *Catalog) Unmapped() []string {
	return c.Engine().Unmapped()
}

func loadSpecies(ctx context.Context, location string, f *fetch.Fetcher) ([]model.Species, error) {
	if fetch.Scheme(location) == "" && strings.HasSuffix(strings.ToLower(location), ".db") {
		return storage.LoadSpecies(location)
	}

	data, err := fetchNonEmpty(ctx, location, f)
	if err != nil {
		return nil, err
	}
	var species []model.Species
	if err := json.Unmarshal(data, &species); err != nil {
		return nil, fmt.Errorf("parsing species: %w", err)
	}
	return species, nil
}

func fetchNonEmpty(ctx context.Context, location string, f *fetch.Fetcher) ([]byte, error) {
	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptySource
	}
	return data, nil
}
