package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Fallbacks shown when optional fields are missing.
const (
	NoDescription = "No information available."
	NoImage       = "https://via.placeholder.com/400x250?text=No+Image"
	NoData        = "No data"
)

// Species is one entry of the red book catalog.
type Species struct {
	Name        string                       `json:"name"`
	Category    string                       `json:"category"`
	Status      Status                       `json:"status"`
	Description string                       `json:"description,omitempty"`
	Image       string                       `json:"image,omitempty"`
	Populations map[string]*PopulationRecord `json:"populations"`
}

// PopulationIn returns the record for a province. Null and falsy records
// count as absent.
func (s *Species) PopulationIn(province string) (*PopulationRecord, bool) {
	if s == nil || s.Populations == nil {
		return nil, false
	}
	rec, ok := s.Populations[province]
	if !ok || !rec.Present() {
		return nil, false
	}
	return rec, true
}

// HasPopulation reports whether the species has a record for the province.
func (s *Species) HasPopulation(province string) bool {
	_, ok := s.PopulationIn(province)
	return ok
}

func (s *Species) DescriptionOrDefault() string {
	if strings.TrimSpace(s.Description) == "" {
		return NoDescription
	}
	return s.Description
}

func (s *Species) ImageOrDefault() string {
	if strings.TrimSpace(s.Image) == "" {
		return NoImage
	}
	return s.Image
}

// PopulationRecord is the per-province presence entry of a species.
// Text holds the total as written in the source; Total is set only when
// that value is a whole number that fits an int.
type PopulationRecord struct {
	Text  string
	Total *int

	absent bool
}

// NewCount builds a record for a numeric total. Zero means no data.
func NewCount(n int) *PopulationRecord {
	rec := &PopulationRecord{Total: &n}
	if n != 0 {
		rec.Text = strconv.Itoa(n)
	}
	return rec
}

// Present reports whether the record marks the species as present. Records
// decoded from false, 0 or "" are absent.
func (p *PopulationRecord) Present() bool {
	return p != nil && !p.absent
}

// UnmarshalJSON accepts an object with a total of any JSON type, or a bare
// scalar. A truthy scalar marks presence without data.
func (p *PopulationRecord) UnmarshalJSON(data []byte) error {
	*p = PopulationRecord{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] != '{' {
		p.absent = falsy(data)
		return nil
	}
	var raw struct {
		Total json.RawMessage `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Text, p.Total = parseTotal(raw.Total)
	return nil
}

func falsy(raw []byte) bool {
	switch string(raw) {
	case "false", `""`:
		return true
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	return err == nil && f == 0
}

func parseTotal(raw json.RawMessage) (string, *int) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", nil
		}
		s = strings.TrimSpace(s)
		return s, wholeNumber(s)
	case 't':
		return "true", nil
	case 'n', 'f', '{', '[':
		return "", nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f == 0 {
		return "", nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), wholeNumber(string(raw))
}

// wholeNumber parses s as an integral value within int range.
func wholeNumber(s string) *int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return nil
	}
	if f < math.MinInt || f >= math.MaxInt {
		return nil
	}
	n := int(f)
	return &n
}

// Display renders the total as written, or NoData when it is missing,
// empty or zero.
func (p *PopulationRecord) Display() string {
	if p == nil || p.Text == "" {
		return NoData
	}
	return p.Text
}

// Province pairs the canonical local name with the geometry layer identifier.
type Province struct {
	Name       string
	ExternalID string
}
