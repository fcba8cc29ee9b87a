package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"

	"homegrid-backend/internal/models"
)

type mockAssets struct {
	mu           sync.Mutex
	iconErr      error
	widgetErr    error
	icons        map[string]string
	widgetData   map[string]json.RawMessage
	iconCalls    int
	widgetCalls  int
	lastPaths    []string
	lastRequests []models.WidgetDataRequest
}

func (m *mockAssets) ResolveIcons(ctx context.Context, paths []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.iconCalls++
	m.lastPaths = paths
	if m.iconErr != nil {
		return nil, m.iconErr
	}
	resolved := make(map[string]string, len(paths))
	for _, path := range paths {
		if icon, ok := m.icons[path]; ok {
			resolved[path] = icon
		}
	}
	return resolved, nil
}

func (m *mockAssets) ResolveWidgetData(ctx context.Context, requests []models.WidgetDataRequest) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgetCalls++
	m.lastRequests = requests
	if m.widgetErr != nil {
		return nil, m.widgetErr
	}
	resolved := make(map[string]json.RawMessage, len(requests))
	for _, request := range requests {
		if payload, ok := m.widgetData[request.ID]; ok {
			resolved[request.ID] = payload
		}
	}
	return resolved, nil
}

func prefetchItems() []models.DashboardItem {
	groupCfg := models.ItemConfig{}
	groupCfg.SetGroupItems([]models.GroupItem{
		{ID: "gi1", Name: "NAS", Icon: "icons/nas.svg"},
		{ID: "gi2", Name: "Dup", Icon: "icons/a.svg"},
	})

	return []models.DashboardItem{
		{ID: "s1", Type: models.TypeShortcut, Icon: &models.Icon{Path: "icons/a.svg"}},
		{
			ID:     "w1",
			Type:   models.TypeWeather,
			Icon:   &models.Icon{Path: "icons/a.svg"},
			Config: models.ItemConfig{"icon": "icons/b.svg", "city": "Oslo"},
		},
		{ID: "g1", Type: models.TypeGroup, Config: groupCfg},
		{ID: "b1", Type: models.TypeBlank},
	}
}

func TestPrefetchCollectsDeduplicatedIconPaths(t *testing.T) {
	assets := &mockAssets{icons: map[string]string{
		"icons/a.svg":   "<svg>a</svg>",
		"icons/b.svg":   "<svg>b</svg>",
		"icons/nas.svg": "<svg>nas</svg>",
	}}
	svc := NewPrefetchService(assets)

	result := svc.Prefetch(context.Background(), prefetchItems())

	want := []string{"icons/a.svg", "icons/b.svg", "icons/nas.svg"}
	if !reflect.DeepEqual(assets.lastPaths, want) {
		t.Fatalf("expected first-seen-ordered unique paths %v, got %v", want, assets.lastPaths)
	}
	if len(result.Icons) != 3 {
		t.Fatalf("expected three resolved icons, got %v", result.Icons)
	}
	if result.Icons["icons/nas.svg"] != "<svg>nas</svg>" {
		t.Fatalf("expected group member icon resolved, got %v", result.Icons)
	}
}

func TestPrefetchSkipsStaticWidgetTypes(t *testing.T) {
	assets := &mockAssets{widgetData: map[string]json.RawMessage{
		"w1": json.RawMessage(`{"temp":3}`),
		"g1": json.RawMessage(`{"members":2}`),
	}}
	svc := NewPrefetchService(assets)

	result := svc.Prefetch(context.Background(), prefetchItems())

	ids := make([]string, 0, len(assets.lastRequests))
	for _, request := range assets.lastRequests {
		ids = append(ids, request.ID)
	}
	// Shortcuts and blank spacers need no upstream payload; group containers do.
	if !reflect.DeepEqual(ids, []string{"w1", "g1"}) {
		t.Fatalf("expected widget requests for w1 and g1 only, got %v", ids)
	}
	if string(result.WidgetData["w1"]) != `{"temp":3}` {
		t.Fatalf("expected widget payload for w1, got %v", result.WidgetData)
	}
}

func TestPrefetchEmptyLayoutMakesNoCalls(t *testing.T) {
	assets := &mockAssets{}
	svc := NewPrefetchService(assets)

	result := svc.Prefetch(context.Background(), []models.DashboardItem{
		{ID: "b1", Type: models.TypeBlank},
		{ID: "r1", Type: models.TypeBlankRow},
	})

	if assets.iconCalls != 0 || assets.widgetCalls != 0 {
		t.Fatalf("expected no upstream calls, got icons=%d widgets=%d", assets.iconCalls, assets.widgetCalls)
	}
	if len(result.Icons) != 0 || len(result.WidgetData) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestPrefetchIsolatesBatchFailures(t *testing.T) {
	assets := &mockAssets{
		iconErr: errors.New("resolver down"),
		widgetData: map[string]json.RawMessage{
			"w1": json.RawMessage(`{"temp":3}`),
		},
	}
	svc := NewPrefetchService(assets)

	result := svc.Prefetch(context.Background(), prefetchItems())

	if len(result.Icons) != 0 {
		t.Fatalf("expected no icons after a failed batch, got %v", result.Icons)
	}
	if string(result.WidgetData["w1"]) != `{"temp":3}` {
		t.Fatalf("expected the widget batch unaffected, got %v", result.WidgetData)
	}
}

func TestPrefetchCachePersistsAcrossCalls(t *testing.T) {
	assets := &mockAssets{
		icons: map[string]string{"icons/a.svg": "<svg>a</svg>"},
	}
	svc := NewPrefetchService(assets)
	items := []models.DashboardItem{
		{ID: "s1", Type: models.TypeShortcut, Icon: &models.Icon{Path: "icons/a.svg"}},
	}
	ctx := context.Background()

	if first := svc.Prefetch(ctx, items); first.Icons["icons/a.svg"] != "<svg>a</svg>" {
		t.Fatalf("expected the icon resolved on the first pass")
	}

	// The resolver fails on the second pass; the cached entry still serves.
	assets.mu.Lock()
	assets.iconErr = errors.New("resolver down")
	assets.mu.Unlock()

	second := svc.Prefetch(ctx, items)
	if second.Icons["icons/a.svg"] != "<svg>a</svg>" {
		t.Fatalf("expected the cached icon to survive a failed refresh, got %v", second.Icons)
	}
}

func TestInvalidateClearsCaches(t *testing.T) {
	assets := &mockAssets{
		icons: map[string]string{"icons/a.svg": "<svg>a</svg>"},
	}
	svc := NewPrefetchService(assets)
	items := []models.DashboardItem{
		{ID: "s1", Type: models.TypeShortcut, Icon: &models.Icon{Path: "icons/a.svg"}},
	}
	ctx := context.Background()

	svc.Prefetch(ctx, items)
	svc.Invalidate()

	assets.mu.Lock()
	assets.iconErr = errors.New("resolver down")
	assets.mu.Unlock()

	result := svc.Prefetch(ctx, items)
	if len(result.Icons) != 0 {
		t.Fatalf("expected nothing cached after invalidation, got %v", result.Icons)
	}
}
