// Package export writes the species/province facts of a catalog to CSV,
// XLSX and SQLite files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/engine/storage"
)

// Format is an export file format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

const (
	populationsSheet = "Populations"
	provincesSheet   = "Provinces"
)

var header = []string{"species", "category", "status", "province", "external_id", "total"}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (csv, xlsx or sqlite)", s)
	}
}

// Ext is the file extension for the format.
func (f Format) Ext() string {
	if f == FormatSQLite {
		return ".db"
	}
	return "." + string(f)
}

// DefaultPath derives an output path next to base with the format extension.
func DefaultPath(base string, f Format) string {
	dir := filepath.Dir(base)
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	return filepath.Join(dir, name+f.Ext())
}

// Write exports the catalog behind e to path and returns the number of rows
// (triples, or species for sqlite) written.
func Write(e *lookup.Engine, f Format, path string) (int, error) {
	switch f {
	case FormatCSV:
		out, err := os.Create(path)
		if err != nil {
			return 0, fmt.Errorf("creating output: %w", err)
		}
		n, err := WriteCSV(out, e)
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
		return n, err
	case FormatXLSX:
		return WriteXLSX(path, e)
	case FormatSQLite:
		store, err := storage.NewStore(path)
		if err != nil {
			return 0, fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()
		return store.WriteCatalog(e.Species())
	default:
		return 0, fmt.Errorf("unsupported format: %s", f)
	}
}

// Rows renders the triples as string rows without the header. The total is
// written as it appears in the source.
func Rows(e *lookup.Engine) [][]string {
	triples := e.Triples()
	rows := make([][]string, 0, len(triples))
	for _, t := range triples {
		rows = append(rows, []string{
			t.Species.Name,
			t.Species.Category,
			string(t.Species.Status),
			t.Province.Name,
			t.Province.ExternalID,
			t.Population.Text,
		})
	}
	return rows
}

func WriteCSV(w io.Writer, e *lookup.Engine) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}
	rows := Rows(e)
	if err := cw.WriteAll(rows); err != nil {
		return 0, fmt.Errorf("writing csv: %w", err)
	}
	return len(rows), nil
}

// WriteXLSX writes a Populations sheet with one row per triple and a
// Provinces sheet with per-province species counts. Whole-number totals are
// stored as numbers, anything else as text.
func WriteXLSX(path string, e *lookup.Engine) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", populationsSheet); err != nil {
		return 0, err
	}
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := setRow(f, populationsSheet, 1, headerRow); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(populationsSheet, "A", "A", 28); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(populationsSheet, "B", "E", 16); err != nil {
		return 0, err
	}

	triples := e.Triples()
	for i, t := range triples {
		var total any = t.Population.Text
		if t.Population.Total != nil && t.Population.Text != "" {
			total = *t.Population.Total
		}
		row := []any{
			t.Species.Name,
			t.Species.Category,
			string(t.Species.Status),
			t.Province.Name,
			t.Province.ExternalID,
			total,
		}
		if err := setRow(f, populationsSheet, i+2, row); err != nil {
			return 0, err
		}
	}

	if _, err := f.NewSheet(provincesSheet); err != nil {
		return 0, err
	}
	if err := setRow(f, provincesSheet, 1, []any{"province", "species_count"}); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(provincesSheet, "A", "A", 20); err != nil {
		return 0, err
	}
	for i, pc := range e.ProvinceCounts() {
		if err := setRow(f, provincesSheet, i+2, []any{pc.Province, pc.Count}); err != nil {
			return 0, err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("saving xlsx: %w", err)
	}
	return len(triples), nil
}

// setRow writes values into consecutive cells of row, starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell %d,%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
