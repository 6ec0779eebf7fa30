package geo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rendis/redbook/internal/engine/names"
)

// rect builds a GeoJSON polygon feature covering the given box.
func rect(name string, minLng, minLat, maxLng, maxLat float64) string {
	return fmt.Sprintf(`{"type":"Feature","properties":{"NAME_1":%q},"geometry":{"type":"Polygon","coordinates":[[[%g,%g],[%g,%g],[%g,%g],[%g,%g],[%g,%g]]]}}`,
		name, minLng, minLat, maxLng, minLat, maxLng, maxLat, minLng, maxLat, minLng, minLat)
}

func collection(features ...string) []byte {
	return []byte(`{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`)
}

func testStore(t *testing.T) *ProvinceStore {
	t.Helper()
	data := collection(
		rect("Sofia", 23.0, 42.5, 23.5, 43.0),
		rect("Varna", 27.5, 43.0, 28.0, 43.5),
		rect("Atlantis", 30.0, 40.0, 30.5, 40.5),
	)
	ps, err := LoadProvinces(data, names.Default(), "")
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestLoadProvinces(t *testing.T) {
	ps := testStore(t)

	if got := len(ps.Shapes()); got != 3 {
		t.Fatalf("Shapes() = %d, want 3", got)
	}
	s, ok := ps.Province("София")
	if !ok {
		t.Fatal("София not indexed")
	}
	if s.ExternalID != "Sofia" {
		t.Errorf("ExternalID = %q", s.ExternalID)
	}
	if un := ps.Unmapped(); len(un) != 1 || un[0] != "Atlantis" {
		t.Errorf("Unmapped() = %v", un)
	}

	b := ps.Bound()
	if b.Min.Lon() != 23.0 || b.Max.Lon() != 30.5 || b.Min.Lat() != 40.0 || b.Max.Lat() != 43.5 {
		t.Errorf("Bound() = %v", b)
	}
}

func TestLocate(t *testing.T) {
	ps := testStore(t)

	tests := []struct {
		name     string
		lat, lng float64
		want     string
		found    bool
	}{
		{"inside sofia", 42.7, 23.3, "София", true},
		{"inside varna", 43.2, 27.9, "Варна", true},
		{"unmapped feature", 40.2, 30.2, "", true},
		{"sea", 43.2, 29.0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ps.Locate(tt.lat, tt.lng)
			if ok != tt.found {
				t.Fatalf("Locate(%v, %v) found = %v, want %v", tt.lat, tt.lng, ok, tt.found)
			}
			if ok && s.Name != tt.want {
				t.Errorf("Locate(%v, %v) = %q, want %q", tt.lat, tt.lng, s.Name, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	ps := testStore(t)
	lat, lng, ok := ps.Centroid("Варна")
	if !ok {
		t.Fatal("centroid not found")
	}
	if lat < 43.24 || lat > 43.26 || lng < 27.74 || lng > 27.76 {
		t.Errorf("Centroid = %v, %v", lat, lng)
	}
	if _, _, ok := ps.Centroid("Атлантида"); ok {
		t.Error("centroid for unknown province")
	}
}

func TestLoadProvincesErrors(t *testing.T) {
	if _, err := LoadProvinces([]byte(`not json`), names.Default(), ""); err == nil {
		t.Error("expected parse error")
	}
	point := `{"type":"Feature","properties":{"NAME_1":"Sofia"},"geometry":{"type":"Point","coordinates":[23.3,42.7]}}`
	if _, err := LoadProvinces(collection(point), names.Default(), ""); err == nil {
		t.Error("expected geometry type error")
	}
}

func TestCustomNameProperty(t *testing.T) {
	f := `{"type":"Feature","properties":{"name_en":"Ruse"},"geometry":{"type":"Polygon","coordinates":[[[25,43],[26,43],[26,44],[25,44],[25,43]]]}}`
	ps, err := LoadProvinces(collection(f), names.Default(), "name_en")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ps.Province("Русе"); !ok {
		t.Error("Русе not indexed with custom property")
	}
}
