// Package lookup answers the province/species questions the map asks:
// which species live in a province, how many species each province has,
// and which catalog entries match a search.
package lookup

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/model"
)

// MaxSuggestions caps FilterCatalog results.
const MaxSuggestions = 20

// Engine owns the loaded catalog and the current selection. It is not safe
// for concurrent use; the UI loop is its only caller.
type Engine struct {
	species  []model.Species
	names    *names.Table
	selected int // index into species, -1 if none
	fold     cases.Caser
}

// ProvinceCount is one row of the province browser.
type ProvinceCount struct {
	Province string
	Count    int
}

// PopupEntry is one species line of a province popup.
type PopupEntry struct {
	Species    *model.Species
	Province   string
	Population string
}

// Triple is a (species, province, population) fact.
type Triple struct {
	Species    *model.Species
	Province   model.Province
	Population *model.PopulationRecord
}

func New(species []model.Species, tbl *names.Table) *Engine {
	if tbl == nil {
		tbl = names.Default()
	}
	return &Engine{
		species:  species,
		names:    tbl,
		selected: -1,
		fold:     cases.Fold(),
	}
}

// Species returns the catalog in load order.
func (e *Engine) Species() []model.Species {
	return e.species
}

func (e *Engine) Names() *names.Table {
	return e.names
}

// SpeciesInProvince lists the species to show for a province. A selection
// with a record in the province narrows the result to that species alone.
func (e *Engine) SpeciesInProvince(local string, selection *model.Species) []model.Species {
	if _, ok := e.names.ToExternal(local); !ok {
		return nil
	}
	if selection != nil && selection.HasPopulation(local) {
		return []model.Species{*selection}
	}
	var out []model.Species
	for i := range e.species {
		if e.species[i].HasPopulation(local) {
			out = append(out, e.species[i])
		}
	}
	return out
}

// ProvinceCountsForSpecies counts, for every canonical province, the catalog
// species with a record there. The selection is ignored.
func (e *Engine) ProvinceCountsForSpecies() map[string]int {
	counts := make(map[string]int, e.names.Len())
	for _, pc := range e.ProvinceCounts() {
		counts[pc.Province] = pc.Count
	}
	return counts
}

// ProvinceCounts is ProvinceCountsForSpecies in name table order.
func (e *Engine) ProvinceCounts() []ProvinceCount {
	locals := e.names.Locals()
	out := make([]ProvinceCount, len(locals))
	for i, local := range locals {
		out[i].Province = local
		for j := range e.species {
			if e.species[j].HasPopulation(local) {
				out[i].Count++
			}
		}
	}
	return out
}

// FilterCatalog returns up to MaxSuggestions species in catalog order whose
// category is active (no active categories means any) and whose name
// contains query, ignoring case.
func (e *Engine) FilterCatalog(query string, activeCategories []string) []model.Species {
	q := e.fold.String(strings.TrimSpace(query))

	var cats map[string]bool
	if len(activeCategories) > 0 {
		cats = make(map[string]bool, len(activeCategories))
		for _, c := range activeCategories {
			cats[c] = true
		}
	}

	var out []model.Species
	for i := range e.species {
		s := &e.species[i]
		if cats != nil && !cats[s.Category] {
			continue
		}
		if q != "" && !strings.Contains(e.fold.String(s.Name), q) {
			continue
		}
		out = append(out, *s)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

// Select sets the selection; nil clears it. A species that is not part of the
// catalog clears the selection as well.
func (e *Engine) Select(s *model.Species) {
	e.selected = -1
	if s == nil {
		return
	}
	for i := range e.species {
		if e.species[i].Name == s.Name {
			e.selected = i
			return
		}
	}
}

func (e *Engine) ClearSelection() {
	e.selected = -1
}

// Selected returns the selected species or nil.
func (e *Engine) Selected() *model.Species {
	if e.selected < 0 {
		return nil
	}
	return &e.species[e.selected]
}

// Find looks a species up by exact name.
func (e *Engine) Find(name string) (*model.Species, bool) {
	for i := range e.species {
		if e.species[i].Name == name {
			return &e.species[i], true
		}
	}
	return nil, false
}

// Popup builds the popup lines for a province using the current selection.
// An empty result means there is no popup to show.
func (e *Engine) Popup(local string) []PopupEntry {
	list := e.SpeciesInProvince(local, e.Selected())
	out := make([]PopupEntry, 0, len(list))
	for _, s := range list {
		sp, _ := e.Find(s.Name)
		rec, _ := sp.PopulationIn(local)
		out = append(out, PopupEntry{
			Species:    sp,
			Province:   local,
			Population: rec.Display(),
		})
	}
	return out
}

// Highlighted returns the provinces where the selected species has a record.
func (e *Engine) Highlighted() map[string]bool {
	sel := e.Selected()
	if sel == nil {
		return nil
	}
	out := make(map[string]bool)
	for _, local := range e.names.Locals() {
		if sel.HasPopulation(local) {
			out[local] = true
		}
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func (e *Engine) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range e.species {
		c := e.species[i].Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Triples lists every resolvable population record, catalog order first and
// name table order second.
func (e *Engine) Triples() []Triple {
	var out []Triple
	for i := range e.species {
		s := &e.species[i]
		for _, entry := range e.names.Entries() {
			rec, ok := s.PopulationIn(entry.Local)
			if !ok {
				continue
			}
			out = append(out, Triple{
				Species:    s,
				Province:   model.Province{Name: entry.Local, ExternalID: entry.External},
				Population: rec,
			})
		}
	}
	return out
}

// Unmapped lists population province names the name table cannot resolve.
func (e *Engine) Unmapped() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range e.species {
		for local, rec := range e.species[i].Populations {
			if !rec.Present() {
				continue
			}
			if _, ok := e.names.ToExternal(local); ok || seen[local] {
				continue
			}
			seen[local] = true
			out = append(out, local)
		}
	}
	sort.Strings(out)
	return out
}
