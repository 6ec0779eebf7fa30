package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/model"
)

// DefaultNameProperty is the feature property holding the province identifier.
const DefaultNameProperty = "NAME_1"

// Shape is a province boundary. Name is empty when the feature could not be
// resolved through the name table.
type Shape struct {
	model.Province
	Geometry orb.MultiPolygon
	Bound    orb.Bound
}

// ProvinceStore holds the province boundaries in file order.
type ProvinceStore struct {
	shapes   []*Shape
	byLocal  map[string]*Shape
	unmapped []string
	bound    orb.Bound
}

// LoadProvinces parses a GeoJSON FeatureCollection of province polygons.
func LoadProvinces(data []byte, tbl *names.Table, nameProperty string) (*ProvinceStore, error) {
	if nameProperty == "" {
		nameProperty = DefaultNameProperty
	}

	fc := &geojson.FeatureCollection{}
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	store := &ProvinceStore{
		byLocal: make(map[string]*Shape),
	}

	for i, f := range fc.Features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.MultiPolygon:
			mp = g
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		default:
			return nil, fmt.Errorf("feature %d: unexpected geometry type %T", i, f.Geometry)
		}

		external, _ := f.Properties[nameProperty].(string)
		external = strings.TrimSpace(external)
		shape := &Shape{
			Province: model.Province{ExternalID: external},
			Geometry: mp,
			Bound:    mp.Bound(),
		}
		if local, ok := tbl.ToLocal(external); ok {
			shape.Name = local
			store.byLocal[local] = shape
		} else {
			store.unmapped = append(store.unmapped, external)
		}

		if len(store.shapes) == 0 {
			store.bound = shape.Bound
		} else {
			store.bound = store.bound.Union(shape.Bound)
		}
		store.shapes = append(store.shapes, shape)
	}

	return store, nil
}

// Locate returns the province containing the point.
func (ps *ProvinceStore) Locate(lat, lng float64) (*Shape, bool) {
	point := orb.Point{lng, lat} // orb.Point is [lng, lat]
	for _, s := range ps.shapes {
		if !s.Bound.Contains(point) {
			continue
		}
		if planar.MultiPolygonContains(s.Geometry, point) {
			return s, true
		}
	}
	return nil, false
}

// Province returns the shape for a canonical local name.
func (ps *ProvinceStore) Province(local string) (*Shape, bool) {
	s, ok := ps.byLocal[local]
	return s, ok
}

// Shapes returns every shape in file order, including unmapped ones.
func (ps *ProvinceStore) Shapes() []*Shape {
	return ps.shapes
}

// Unmapped lists feature identifiers the name table could not resolve.
func (ps *ProvinceStore) Unmapped() []string {
	return ps.unmapped
}

func (ps *ProvinceStore) Bound() orb.Bound {
	return ps.bound
}

// Centroid returns the area centroid of a province as lat, lng.
func (ps *ProvinceStore) Centroid(local string) (lat, lng float64, ok bool) {
	s, found := ps.byLocal[local]
	if !found {
		return 0, 0, false
	}
	c, _ := planar.CentroidArea(s.Geometry)
	return c.Lat(), c.Lon(), true
}
