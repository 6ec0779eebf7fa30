package views

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rendis/redbook/internal/engine/catalog"
)

func TestLoadingNavigatesWhenLoaded(t *testing.T) {
	c := testCatalog(t)
	m := NewLoadingModel(func(ctx context.Context) (*catalog.Catalog, error) {
		return c, nil
	}, catalog.Sources{Species: "s.json", Provinces: "p.json"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	msg := m.startLoading()()
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	nav, ok := cmd().(NavigateToBrowser)
	if !ok || nav.Catalog != c {
		t.Fatalf("got %#v", nav)
	}
	if next.(LoadingModel).Err() != nil {
		t.Error("unexpected error")
	}
}

func TestLoadingShowsError(t *testing.T) {
	boom := errors.New("fetch failed")
	m := NewLoadingModel(func(ctx context.Context) (*catalog.Catalog, error) {
		return nil, boom
	}, catalog.Sources{Species: "s.json", Provinces: "p.json"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	next, cmd := m.Update(m.startLoading()())
	if cmd != nil {
		t.Error("failed load must not navigate")
	}
	lm := next.(LoadingModel)
	if !errors.Is(lm.Err(), boom) {
		t.Errorf("err = %v", lm.Err())
	}
	if !strings.Contains(lm.View(), "fetch failed") {
		t.Error("view does not show the error")
	}
}
