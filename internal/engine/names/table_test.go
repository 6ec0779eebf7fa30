package names

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRoundTrip(t *testing.T) {
	tbl := Default()
	if tbl.Len() != len(bulgaria) {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), len(bulgaria))
	}
	for _, local := range tbl.Locals() {
		ext, ok := tbl.ToExternal(local)
		if !ok {
			t.Fatalf("ToExternal(%q) not found", local)
		}
		back, ok := tbl.ToLocal(ext)
		if !ok || back != local {
			t.Errorf("ToLocal(%q) = %q, %v; want %q", ext, back, ok, local)
		}
	}
}

func TestDefaultLookups(t *testing.T) {
	tbl := Default()
	if ext, _ := tbl.ToExternal("Велико Търново"); ext != "Veliko Tarnovo" {
		t.Errorf("ToExternal(Велико Търново) = %q", ext)
	}
	if local, _ := tbl.ToLocal("Sofia"); local != "София" {
		t.Errorf("ToLocal(Sofia) = %q", local)
	}
	if _, ok := tbl.ToExternal("Атлантида"); ok {
		t.Error("unknown local name resolved")
	}
	if _, ok := tbl.ToLocal("Sofia-grad"); ok {
		t.Error("unknown external name resolved")
	}
	if got := tbl.Locals()[0]; got != "Благоевград" {
		t.Errorf("first local = %q", got)
	}
}

func TestNewTableRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    error
	}{
		{"duplicate local", []Entry{{"A", "a"}, {"A", "b"}}, ErrDuplicate},
		{"duplicate external", []Entry{{"A", "a"}, {"B", "a"}}, ErrDuplicate},
		{"empty local", []Entry{{" ", "a"}}, ErrEmptyName},
		{"empty external", []Entry{{"A", ""}}, ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.entries)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadTable(t *testing.T) {
	tbl, err := LoadTable(strings.NewReader(`[{"local":"София","external":"Sofia City"},{"local":"Ямбол","external":"Yambol"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if ext, _ := tbl.ToExternal("София"); ext != "Sofia City" {
		t.Errorf("ToExternal(София) = %q", ext)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d", tbl.Len())
	}

	if _, err := LoadTable(strings.NewReader(`{`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestEntriesIsCopy(t *testing.T) {
	tbl := Default()
	e := tbl.Entries()
	e[0].Local = "changed"
	if tbl.Locals()[0] == "changed" {
		t.Error("Entries exposed internal slice")
	}
}
