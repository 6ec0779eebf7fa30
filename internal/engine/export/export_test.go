package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/engine/storage"
	"github.com/rendis/redbook/internal/model"
)

func testEngine() *lookup.Engine {
	return lookup.New([]model.Species{
		{Name: "Eurasian Lynx", Category: "Mammal", Status: model.StatusCR, Populations: map[string]*model.PopulationRecord{
			"София": model.NewCount(4), "Смолян": {}, "Варна": {Text: "около 50 двойки"},
		}},
		{Name: "Pelican", Category: "Bird", Status: model.StatusVU},
	}, names.Default())
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"csv", "XLSX", " sqlite "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("pdf accepted")
	}
	if got := DefaultPath("data/species.json", FormatSQLite); got != filepath.Join("data", "species.db") {
		t.Errorf("DefaultPath() = %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteCSV(&buf, testEngine())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("rows = %d, want 3", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		header,
		{"Eurasian Lynx", "Mammal", "CR", "Варна", "Varna", "около 50 двойки"},
		{"Eurasian Lynx", "Mammal", "CR", "Смолян", "Smolyan", ""},
		{"Eurasian Lynx", "Mammal", "CR", "София", "Sofia", "4"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv = %v, want %v", records, want)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if _, err := Write(testEngine(), FormatXLSX, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(populationsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("population rows = %d, want 4", len(rows))
	}
	if rows[1][3] != "Варна" || rows[1][5] != "около 50 двойки" {
		t.Errorf("row = %v", rows[1])
	}
	if rows[3][3] != "София" || rows[3][5] != "4" {
		t.Errorf("row = %v", rows[3])
	}
	typ, err := f.GetCellType(populationsSheet, "F4")
	if err != nil {
		t.Fatal(err)
	}
	if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Errorf("numeric total stored as text (type %v)", typ)
	}

	counts, err := f.GetRows(provincesSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != names.Default().Len()+1 {
		t.Errorf("province rows = %d", len(counts))
	}
}

func TestSetRowRejectsBadCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := setRow(f, "Sheet1", 0, []any{"x"}); err == nil {
		t.Error("row 0 accepted")
	}
	if err := setRow(f, "Missing", 1, []any{"x"}); err == nil {
		t.Error("missing sheet accepted")
	}
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	n, err := Write(testEngine(), FormatSQLite, path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("species written = %d", n)
	}
	got, err := storage.LoadSpecies(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "Eurasian Lynx" {
		t.Errorf("snapshot = %+v", got)
	}
}
