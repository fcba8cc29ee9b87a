package service

import (
	"context"
	"encoding/json"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/errgroup"

	"homegrid-backend/internal/models"
	"homegrid-backend/pkg/logger"
	"homegrid-backend/pkg/metrics"
)

// PrefetchResult carries the warmed entries for one resolved layout.
type PrefetchResult struct {
	Icons      map[string]string          `json:"icons"`
	WidgetData map[string]json.RawMessage `json:"widget_data"`
}

// PrefetchService derives the icon and widget-data request sets from a
// resolved layout and populates two process-lifetime caches. It augments an
// already-rendered grid: failures degrade to empty results and are never
// surfaced.
type PrefetchService struct {
	assets AssetResolver

	icons      *ttlcache.Cache[string, string]
	widgetData *ttlcache.Cache[string, json.RawMessage]
}

func NewPrefetchService(assets AssetResolver) *PrefetchService {
	// No TTL: both caches live for the process and are only cleared by an
	// explicit reload.
	return &PrefetchService{
		assets:     assets,
		icons:      ttlcache.New[string, string](),
		widgetData: ttlcache.New[string, json.RawMessage](),
	}
}

// Prefetch issues at most one batched icon call and one batched widget-data
// call for the given items. The two calls run concurrently; either failing
// does not block the other's result.
func (s *PrefetchService) Prefetch(ctx context.Context, items []models.DashboardItem) *PrefetchResult {
	paths := collectIconPaths(items)
	requests := collectWidgetRequests(items)

	var (
		iconResults   map[string]string
		widgetResults map[string]json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(paths) == 0 {
			return nil
		}
		resolved, err := s.assets.ResolveIcons(gctx, paths)
		if err != nil {
			metrics.PrefetchBatches.WithLabelValues("icons", "error").Inc()
			logger.Warn("Icon batch resolve failed", map[string]interface{}{"count": len(paths), "error": err.Error()})
			return nil
		}
		metrics.PrefetchBatches.WithLabelValues("icons", "ok").Inc()
		iconResults = resolved
		return nil
	})
	g.Go(func() error {
		if len(requests) == 0 {
			return nil
		}
		resolved, err := s.assets.ResolveWidgetData(gctx, requests)
		if err != nil {
			metrics.PrefetchBatches.WithLabelValues("widget_data", "error").Inc()
			logger.Warn("Widget data batch resolve failed", map[string]interface{}{"count": len(requests), "error": err.Error()})
			return nil
		}
		metrics.PrefetchBatches.WithLabelValues("widget_data", "ok").Inc()
		widgetResults = resolved
		return nil
	})
	_ = g.Wait()

	for path, icon := range iconResults {
		s.icons.Set(path, icon, ttlcache.NoTTL)
	}
	for id, payload := range widgetResults {
		s.widgetData.Set(id, payload, ttlcache.NoTTL)
	}

	result := &PrefetchResult{
		Icons:      make(map[string]string, len(paths)),
		WidgetData: make(map[string]json.RawMessage, len(requests)),
	}
	for _, path := range paths {
		if entry := s.icons.Get(path); entry != nil {
			metrics.PrefetchCacheHits.WithLabelValues("icons").Inc()
			result.Icons[path] = entry.Value()
		}
	}
	for _, request := range requests {
		if entry := s.widgetData.Get(request.ID); entry != nil {
			metrics.PrefetchCacheHits.WithLabelValues("widget_data").Inc()
			result.WidgetData[request.ID] = entry.Value()
		}
	}

	return result
}

// Invalidate clears both caches. Only an explicit reload calls this.
func (s *PrefetchService) Invalidate() {
	s.icons.DeleteAll()
	s.widgetData.DeleteAll()
}

// collectIconPaths gathers every icon reference of the layout into a
// deduplicated, first-seen-ordered list: top-level icons, group member
// icons and plain config.icon fields of other widget kinds.
func collectIconPaths(items []models.DashboardItem) []string {
	seen := make(map[string]struct{})
	paths := make([]string, 0, len(items))

	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, item := range items {
		if item.Icon != nil {
			add(item.Icon.Path)
		}
		if item.Type == models.TypeGroup {
			for _, member := range item.Config.GroupItems() {
				add(member.Icon)
			}
			continue
		}
		if item.Config != nil {
			if path, ok := item.Config["icon"].(string); ok {
				add(path)
			}
		}
	}

	return paths
}

// collectWidgetRequests lists {id, type, config} for every item whose type
// is not static.
func collectWidgetRequests(items []models.DashboardItem) []models.WidgetDataRequest {
	requests := make([]models.WidgetDataRequest, 0, len(items))
	for _, item := range items {
		if models.StaticType(item.Type) {
			continue
		}
		requests = append(requests, models.WidgetDataRequest{
			ID:     item.ID,
			Type:   item.Type,
			Config: item.Config,
		})
	}
	return requests
}
