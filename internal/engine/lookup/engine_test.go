package lookup

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/model"
)

func total(n int) *model.PopulationRecord {
	return model.NewCount(n)
}

func speciesNames(list []model.Species) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Name
	}
	return out
}

func testCatalog() []model.Species {
	return []model.Species{
		{Name: "Eurasian Lynx", Category: "Mammal", Status: model.StatusCR, Populations: map[string]*model.PopulationRecord{
			"София": total(4), "Смолян": total(2),
		}},
		{Name: "Imperial Eagle", Category: "Bird", Status: model.StatusEN, Populations: map[string]*model.PopulationRecord{
			"София": {}, "Бургас": total(7),
		}},
		{Name: "Brown Bear", Category: "Mammal", Status: model.StatusVU, Populations: map[string]*model.PopulationRecord{
			"Смолян": total(120), "Атлантида": total(1),
		}},
		{Name: "Pelican", Category: "Bird", Status: model.StatusNT, Populations: map[string]*model.PopulationRecord{
			"Бургас": nil,
		}},
	}
}

func TestSpeciesInProvinceScenario(t *testing.T) {
	tbl, err := names.NewTable([]names.Entry{{Local: "Sofia", External: "Sofia"}, {Local: "Varna", External: "Varna"}})
	if err != nil {
		t.Fatal(err)
	}
	a := model.Species{Name: "A", Category: "Bird", Populations: map[string]*model.PopulationRecord{"Sofia": total(12)}}
	b := model.Species{Name: "B", Category: "Mammal", Populations: map[string]*model.PopulationRecord{}}
	e := New([]model.Species{a, b}, tbl)

	if got := speciesNames(e.SpeciesInProvince("Sofia", nil)); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("SpeciesInProvince(Sofia) = %v, want [A]", got)
	}
	if got := e.ProvinceCountsForSpecies()["Sofia"]; got != 1 {
		t.Errorf("count[Sofia] = %d, want 1", got)
	}
	if got := e.ProvinceCountsForSpecies()["Varna"]; got != 0 {
		t.Errorf("count[Varna] = %d, want 0", got)
	}
}

func TestSpeciesInProvince(t *testing.T) {
	e := New(testCatalog(), names.Default())
	lynx, _ := e.Find("Eurasian Lynx")
	bear, _ := e.Find("Brown Bear")

	tests := []struct {
		name      string
		province  string
		selection *model.Species
		want      []string
	}{
		{"all in province", "София", nil, []string{"Eurasian Lynx", "Imperial Eagle"}},
		{"catalog order", "Смолян", nil, []string{"Eurasian Lynx", "Brown Bear"}},
		{"selection narrows", "София", lynx, []string{"Eurasian Lynx"}},
		{"selection absent falls back", "София", bear, []string{"Eurasian Lynx", "Imperial Eagle"}},
		{"null record skipped", "Бургас", nil, []string{"Imperial Eagle"}},
		{"empty province", "Видин", nil, []string{}},
		{"unmapped name", "Атлантида", nil, []string{}},
		{"unmapped with selection", "Атлантида", bear, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speciesNames(e.SpeciesInProvince(tt.province, tt.selection))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SpeciesInProvince(%q) = %v, want %v", tt.province, got, tt.want)
			}
		})
	}
}

func TestSelectionOfEverySpeciesIsExact(t *testing.T) {
	e := New(testCatalog(), names.Default())
	for i := range e.Species() {
		s := &e.Species()[i]
		for _, p := range e.Names().Locals() {
			if !s.HasPopulation(p) {
				continue
			}
			got := speciesNames(e.SpeciesInProvince(p, s))
			if !reflect.DeepEqual(got, []string{s.Name}) {
				t.Errorf("SpeciesInProvince(%q, %q) = %v", p, s.Name, got)
			}
		}
	}
}

func TestProvinceCountsMatchCatalog(t *testing.T) {
	e := New(testCatalog(), names.Default())
	lynx, _ := e.Find("Eurasian Lynx")
	e.Select(lynx)

	counts := e.ProvinceCountsForSpecies()
	if len(counts) != e.Names().Len() {
		t.Fatalf("len(counts) = %d, want %d", len(counts), e.Names().Len())
	}
	for _, p := range e.Names().Locals() {
		want := 0
		for _, s := range e.Species() {
			if s.HasPopulation(p) {
				want++
			}
		}
		if counts[p] != want {
			t.Errorf("counts[%q] = %d, want %d", p, counts[p], want)
		}
	}
	if counts["София"] != 2 || counts["Бургас"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	ordered := e.ProvinceCounts()
	if ordered[0].Province != "Благоевград" {
		t.Errorf("first province = %q", ordered[0].Province)
	}
}

func TestFilterCatalog(t *testing.T) {
	e := New(testCatalog(), names.Default())

	tests := []struct {
		name  string
		query string
		cats  []string
		want  []string
	}{
		{"empty", "", nil, []string{"Eurasian Lynx", "Imperial Eagle", "Brown Bear", "Pelican"}},
		{"whitespace query", "   ", nil, []string{"Eurasian Lynx", "Imperial Eagle", "Brown Bear", "Pelican"}},
		{"case insensitive", "LYNX", nil, []string{"Eurasian Lynx"}},
		{"substring", "ea", nil, []string{"Imperial Eagle", "Brown Bear"}},
		{"category", "", []string{"Bird"}, []string{"Imperial Eagle", "Pelican"}},
		{"category and query", "lynx", []string{"Mammal"}, []string{"Eurasian Lynx"}},
		{"category excludes", "lynx", []string{"Bird"}, []string{}},
		{"padded query", "  bear ", nil, []string{"Brown Bear"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := speciesNames(e.FilterCatalog(tt.query, tt.cats))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterCatalog(%q, %v) = %v, want %v", tt.query, tt.cats, got, tt.want)
			}
		})
	}
}

func TestFilterCatalogCyrillic(t *testing.T) {
	e := New([]model.Species{{Name: "Кафява мечка"}, {Name: "Вълк"}}, names.Default())
	got := speciesNames(e.FilterCatalog("МЕЧКА", nil))
	if !reflect.DeepEqual(got, []string{"Кафява мечка"}) {
		t.Errorf("FilterCatalog(МЕЧКА) = %v", got)
	}
}

func TestFilterCatalogCap(t *testing.T) {
	var catalog []model.Species
	for i := 0; i < 30; i++ {
		catalog = append(catalog, model.Species{Name: fmt.Sprintf("species %02d", i)})
	}
	e := New(catalog, names.Default())

	got := e.FilterCatalog("", nil)
	if len(got) != MaxSuggestions {
		t.Fatalf("len = %d, want %d", len(got), MaxSuggestions)
	}
	for i, s := range got {
		if s.Name != catalog[i].Name {
			t.Errorf("got[%d] = %q, want %q", i, s.Name, catalog[i].Name)
		}
	}
}

func TestSelectClearRestores(t *testing.T) {
	e := New(testCatalog(), names.Default())

	before := make(map[string][]string)
	for _, p := range e.Names().Locals() {
		before[p] = speciesNames(e.SpeciesInProvince(p, e.Selected()))
	}

	lynx, _ := e.Find("Eurasian Lynx")
	e.Select(lynx)
	if e.Selected() == nil || e.Selected().Name != "Eurasian Lynx" {
		t.Fatalf("Selected() = %v", e.Selected())
	}
	if got := speciesNames(e.SpeciesInProvince("София", e.Selected())); !reflect.DeepEqual(got, []string{"Eurasian Lynx"}) {
		t.Errorf("with selection = %v", got)
	}

	e.Select(nil)
	if e.Selected() != nil {
		t.Fatal("selection not cleared")
	}
	for _, p := range e.Names().Locals() {
		got := speciesNames(e.SpeciesInProvince(p, e.Selected()))
		if !reflect.DeepEqual(got, before[p]) {
			t.Errorf("after clear %q = %v, want %v", p, got, before[p])
		}
	}
}

func TestSelectUnknownClears(t *testing.T) {
	e := New(testCatalog(), names.Default())
	lynx, _ := e.Find("Eurasian Lynx")
	e.Select(lynx)
	e.Select(&model.Species{Name: "Dodo"})
	if e.Selected() != nil {
		t.Error("unknown species kept a selection")
	}
}

func TestPopup(t *testing.T) {
	e := New(testCatalog(), names.Default())

	entries := e.Popup("София")
	if len(entries) != 2 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Population != "4" || entries[1].Population != model.NoData {
		t.Errorf("populations = %q, %q", entries[0].Population, entries[1].Population)
	}

	eagle, _ := e.Find("Imperial Eagle")
	e.Select(eagle)
	entries = e.Popup("София")
	if len(entries) != 1 || entries[0].Species.Name != "Imperial Eagle" {
		t.Errorf("popup with selection = %+v", entries)
	}

	if got := e.Popup("Видин"); len(got) != 0 {
		t.Errorf("empty province popup = %+v", got)
	}
}

func TestHighlighted(t *testing.T) {
	e := New(testCatalog(), names.Default())
	if e.Highlighted() != nil {
		t.Error("highlight without selection")
	}
	bear, _ := e.Find("Brown Bear")
	e.Select(bear)
	want := map[string]bool{"Смолян": true}
	if got := e.Highlighted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Highlighted() = %v, want %v", got, want)
	}
}

func TestCategoriesAndUnmapped(t *testing.T) {
	e := New(testCatalog(), names.Default())
	if got := e.Categories(); !reflect.DeepEqual(got, []string{"Mammal", "Bird"}) {
		t.Errorf("Categories() = %v", got)
	}
	if got := e.Unmapped(); !reflect.DeepEqual(got, []string{"Атлантида"}) {
		t.Errorf("Unmapped() = %v", got)
	}
}

func TestTriples(t *testing.T) {
	e := New(testCatalog(), names.Default())
	got := e.Triples()

	var keys []string
	for _, tr := range got {
		keys = append(keys, tr.Species.Name+"/"+tr.Province.ExternalID)
	}
	want := []string{
		"Eurasian Lynx/Smolyan", "Eurasian Lynx/Sofia",
		"Imperial Eagle/Burgas", "Imperial Eagle/Sofia",
		"Brown Bear/Smolyan",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Triples() = %v, want %v", keys, want)
	}
}
