package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rendis/redbook/internal/engine/lookup"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runProvinces(args []string, stdout, stderr io.Writer) error {
	fs, cfg, err := newFlagSet("provinces", stderr)
	if err != nil {
		return err
	}
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: redbook provinces [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, _, err := loadCatalog(cfg, stderr)
	if err != nil {
		return err
	}
	counts := c.Engine().ProvinceCounts()

	if *asJSON {
		type row struct {
			Province string `json:"province"`
			External string `json:"external_id"`
			Species  int    `json:"species"`
		}
		out := make([]row, len(counts))
		for i, pc := range counts {
			ext, _ := c.Names.ToExternal(pc.Province)
			out[i] = row{Province: pc.Province, External: ext, Species: pc.Count}
		}
		return writeJSON(stdout, out)
	}

	t := newTable("Province", "External", "Species")
	for _, pc := range counts {
		ext, _ := c.Names.ToExternal(pc.Province)
		t.Row(pc.Province, ext, strconv.Itoa(pc.Count))
	}
	_, err = fmt.Fprintln(stdout, t.Render())
	return err
}

func runProvince(args []string, stdout, stderr io.Writer) error {
	fs, cfg, err := newFlagSet("province", stderr)
	if err != nil {
		return err
	}
	var name, selected string
	fs.StringVar(&name, "name", "", "Province name as used in the species data (required)")
	fs.StringVar(&selected, "select", "", "Species to treat as selected (narrows the list when present)")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: redbook province -name <name> [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  redbook province -name София\n")
		fmt.Fprintf(stderr, "  redbook province -name Смолян -select \"Brown Bear\"\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("-name is required")
	}

	c, log, err := loadCatalog(cfg, stderr)
	if err != nil {
		return err
	}
	if _, ok := c.Names.ToExternal(name); !ok {
		log.Warn("province not in name table", "province", name)
	}

	e := c.Engine()
	if selected != "" {
		s, ok := e.Find(selected)
		if !ok {
			return fmt.Errorf("species %q not found", selected)
		}
		e.Select(s)
	}
	return printPopup(stdout, name, e.Popup(name), *asJSON)
}

func printPopup(w io.Writer, province string, entries []lookup.PopupEntry, asJSON bool) error {
	if asJSON {
		type row struct {
			Species    string `json:"species"`
			Category   string `json:"category"`
			Status     string `json:"status"`
			Population string `json:"population"`
		}
		out := make([]row, len(entries))
		for i, e := range entries {
			out[i] = row{e.Species.Name, e.Species.Category, string(e.Species.Status), e.Population}
		}
		return writeJSON(w, out)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No species recorded in %s\n", province)
		return err
	}
	t := newTable("Species", "Category", "Status", "Population")
	for _, e := range entries {
		t.Row(e.Species.Name, e.Species.Category, string(e.Species.Status), e.Population)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", province, t.Render())
	return err
}

func runSearch(args []string, stdout, stderr io.Writer) error {
	fs, cfg, err := newFlagSet("search", stderr)
	if err != nil {
		return err
	}
	var query, categories string
	fs.StringVar(&query, "q", "", "Text the species name must contain (case-insensitive)")
	fs.StringVar(&categories, "category", "", "Comma-separated categories to keep")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: redbook search [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nAt most %d results are printed.\n", lookup.MaxSuggestions)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cats []string
	for _, c := range strings.Split(categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}

	c, _, err := loadCatalog(cfg, stderr)
	if err != nil {
		return err
	}
	e := c.Engine()
	found := e.FilterCatalog(query, cats)

	if *asJSON {
		type row struct {
			Species   string `json:"species"`
			Category  string `json:"category"`
			Status    string `json:"status"`
			Provinces int    `json:"provinces"`
		}
		out := make([]row, len(found))
		for i, s := range found {
			out[i] = row{s.Name, s.Category, string(s.Status), provinceCount(e, s.Name)}
		}
		return writeJSON(stdout, out)
	}

	t := newTable("Species", "Category", "Status", "Provinces")
	for _, s := range found {
		t.Row(s.Name, s.Category, string(s.Status), strconv.Itoa(provinceCount(e, s.Name)))
	}
	_, err = fmt.Fprintln(stdout, t.Render())
	return err
}

// provinceCount counts the provinces where the named species has a record.
func provinceCount(e *lookup.Engine, name string) int {
	s, ok := e.Find(name)
	if !ok {
		return 0
	}
	n := 0
	for _, local := range e.Names().Locals() {
		if s.HasPopulation(local) {
			n++
		}
	}
	return n
}
