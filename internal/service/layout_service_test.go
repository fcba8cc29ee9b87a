package service

import (
	"errors"
	"reflect"
	"testing"

	"homegrid-backend/internal/models"
)

func TestResolveLayoutNilConfig(t *testing.T) {
	items, err := ResolveLayout(nil, nil, models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected an empty non-nil sequence, got %v", items)
	}
}

func TestResolveLayoutMainScope(t *testing.T) {
	cfg := mediaPageConfig()

	desktop, err := ResolveLayout(cfg, nil, models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(desktop) != 4 || desktop[0].ID != "i1" {
		t.Fatalf("unexpected desktop projection: %v", desktop)
	}

	mobile, err := ResolveLayout(cfg, nil, models.DeviceMobile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mobile) != 4 || mobile[0].ID != "i4" {
		t.Fatalf("expected the independent mobile ordering, got %v", mobile)
	}
}

func TestResolveLayoutPageScope(t *testing.T) {
	cfg := mediaPageConfig()
	page := cfg.FindPage("p1")
	page.Layout.Desktop = []models.DashboardItem{shortcut("a")}

	items, err := ResolveLayout(cfg, strPtr("p1"), models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("unexpected page projection: %v", items)
	}
}

func TestResolveLayoutUnknownPage(t *testing.T) {
	_, err := ResolveLayout(mediaPageConfig(), strPtr("missing"), models.DeviceDesktop)
	if !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestResolveLayoutIdempotent(t *testing.T) {
	cfg := mediaPageConfig()

	first, err := ResolveLayout(cfg, nil, models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveLayout(cfg, nil, models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected element-wise equal projections")
	}
}

func TestResolveLayoutReturnsCopies(t *testing.T) {
	cfg := mediaPageConfig()

	items, err := ResolveLayout(cfg, nil, models.DeviceDesktop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items[0].Label = "mutated"
	items[0].Icon.Path = "mutated"

	if cfg.Layout.Desktop[0].Label == "mutated" || cfg.Layout.Desktop[0].Icon.Path == "mutated" {
		t.Fatalf("expected the projection to be decoupled from the document")
	}
}
