package storage

import (
	"path/filepath"
	"testing"

	"github.com/rendis/redbook/internal/model"
)

func TestWriteAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	catalog := []model.Species{
		{Name: "Wolf", Category: "Mammal", Status: model.StatusLC, Populations: map[string]*model.PopulationRecord{
			"София": model.NewCount(30),
			"Видин": {},
			"Ловеч": {Text: "около 50 двойки"},
			"Русе":  nil,
		}},
		{Name: "Aquila heliaca", Category: "Bird", Status: model.StatusEN, Description: "Imperial eagle", Image: "https://example.org/a.jpg"},
	}

	n, err := store.WriteCatalog(catalog)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("WriteCatalog() = %d, want 2", n)
	}
	// A second write replaces the snapshot.
	if _, err := store.WriteCatalog(catalog); err != nil {
		t.Fatal(err)
	}
	if count, _ := store.Count(); count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSpecies(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Wolf" || got[1].Name != "Aquila heliaca" {
		t.Fatalf("LoadSpecies() order = %+v", got)
	}

	wolf := got[0]
	if rec, ok := wolf.PopulationIn("София"); !ok || rec.Display() != "30" {
		t.Errorf("София record = %+v", rec)
	}
	if rec, ok := wolf.PopulationIn("Видин"); !ok || rec.Total != nil {
		t.Errorf("Видин record = %+v, %v", rec, ok)
	}
	if rec, ok := wolf.PopulationIn("Ловеч"); !ok || rec.Display() != "около 50 двойки" || rec.Total != nil {
		t.Errorf("Ловеч record = %+v", rec)
	}
	if wolf.HasPopulation("Русе") {
		t.Error("null record was persisted")
	}

	eagle := got[1]
	if eagle.Status != model.StatusEN || eagle.Description != "Imperial eagle" || eagle.Image == "" {
		t.Errorf("eagle = %+v", eagle)
	}
}

func TestLoadSpeciesMissingSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	if _, err := LoadSpecies(path); err == nil {
		t.Error("expected error for database without snapshot tables")
	}
}
