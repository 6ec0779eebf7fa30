package model

import (
	"encoding/json"
	"testing"
)

func TestPopulationRecordDecoding(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		total int
		exact bool
	}{
		{"number", `{"total": 12}`, "12", 12, true},
		{"whole float", `{"total": 12.0}`, "12", 12, true},
		{"decimal", `{"total": 12.5}`, "12.5", 0, false},
		{"huge", `{"total": 1e30}`, "1000000000000000000000000000000", 0, false},
		{"negative huge", `{"total": -1e30}`, "-1000000000000000000000000000000", 0, false},
		{"numeric string", `{"total": " 40 "}`, "40", 40, true},
		{"text", `{"total": "около 50 двойки"}`, "около 50 двойки", 0, false},
		{"empty string", `{"total": ""}`, NoData, 0, false},
		{"null", `{"total": null}`, NoData, 0, false},
		{"missing", `{}`, NoData, 0, false},
		{"zero", `{"total": 0}`, NoData, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec PopulationRecord
			if err := json.Unmarshal([]byte(tt.in), &rec); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if got := rec.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
			if !rec.Present() {
				t.Error("object record should be present")
			}
			switch {
			case tt.exact && (rec.Total == nil || *rec.Total != tt.total):
				t.Errorf("Total = %v, want %d", rec.Total, tt.total)
			case !tt.exact && tt.want != NoData && rec.Total != nil:
				t.Errorf("Total = %d, want nil", *rec.Total)
			}
		})
	}
}

func TestScalarPopulationRecords(t *testing.T) {
	var s Species
	data := `{"name":"Bear","populations":{
		"София": 12, "Варна": true, "Русе": "yes", "Плевен": [1],
		"Ловеч": false, "Видин": 0, "Бургас": ""}}`
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, p := range []string{"София", "Варна", "Русе", "Плевен"} {
		rec, ok := s.PopulationIn(p)
		if !ok {
			t.Errorf("%s should be present", p)
			continue
		}
		if got := rec.Display(); got != NoData {
			t.Errorf("%s Display() = %q, want %q", p, got, NoData)
		}
	}
	for _, p := range []string{"Ловеч", "Видин", "Бургас"} {
		if s.HasPopulation(p) {
			t.Errorf("%s should be absent", p)
		}
	}
}

func TestNewCount(t *testing.T) {
	if got := NewCount(7).Display(); got != "7" {
		t.Errorf("NewCount(7).Display() = %q", got)
	}
	if got := NewCount(0).Display(); got != NoData {
		t.Errorf("NewCount(0).Display() = %q", got)
	}
}

func TestSpeciesNullPopulationIsAbsent(t *testing.T) {
	var s Species
	data := `{"name":"Lynx","category":"Mammal","status":"CR","populations":{"София":null,"Варна":{"total":3}}}`
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatal(err)
	}
	if s.HasPopulation("София") {
		t.Error("null record should count as absent")
	}
	if !s.HasPopulation("Варна") {
		t.Error("Варна should be present")
	}
	if s.HasPopulation("Русе") {
		t.Error("Русе should be absent")
	}
}

func TestSpeciesFallbacks(t *testing.T) {
	s := Species{Name: "Wolf", Description: "  "}
	if got := s.DescriptionOrDefault(); got != NoDescription {
		t.Errorf("DescriptionOrDefault() = %q", got)
	}
	if got := s.ImageOrDefault(); got != NoImage {
		t.Errorf("ImageOrDefault() = %q", got)
	}
	s.Image = "https://example.org/wolf.jpg"
	if got := s.ImageOrDefault(); got != s.Image {
		t.Errorf("ImageOrDefault() = %q", got)
	}
}

func TestStatusOrdering(t *testing.T) {
	order := []Status{StatusCR, StatusEN, StatusVU, StatusNT, StatusLC, Status("DD")}
	for i := 1; i < len(order); i++ {
		if order[i-1].Severity() <= order[i].Severity() {
			t.Errorf("%s should be more severe than %s", order[i-1], order[i])
		}
	}
	if got := Status("cr").Color(); got != "#ff0044" {
		t.Errorf("lowercase cr color = %s", got)
	}
	if got := Status("DD").Color(); got != unknownStatusColor {
		t.Errorf("unknown color = %s", got)
	}
	if Status("DD").Known() {
		t.Error("DD should be unknown")
	}
}
