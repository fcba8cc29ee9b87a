package service

import (
	"context"
	"fmt"
	"time"

	"homegrid-backend/internal/models"
	"homegrid-backend/pkg/logger"
	"homegrid-backend/pkg/metrics"
)

// MoveResult is the confirmation payload of a completed relocation.
type MoveResult struct {
	Item models.DashboardItem `json:"item"`

	// Destination display name and slug for user-facing confirmation and
	// follow-navigation. The main layout reports "Home" with "/" as the
	// slug so the client always has a navigable destination.
	TargetPageID *string `json:"target_page_id"`
	TargetName   string  `json:"target_name"`
	TargetSlug   string  `json:"target_slug"`

	// Items is the reconciled projection of the scope the client was
	// viewing, resolved from fresh config after the save.
	Items []models.DashboardItem `json:"items"`
}

// RelocationService moves one item between page scopes, unwrapping
// group-nested items as needed. A single relocation may be in flight at a
// time; the MoveGuard suppresses reactive re-resolution for its duration.
type RelocationService struct {
	store ConfigSource
	guard *MoveGuard
}

func NewRelocationService(store ConfigSource, guard *MoveGuard) *RelocationService {
	return &RelocationService{
		store: store,
		guard: guard,
	}
}

// location records where the item was found within the source scope.
type location struct {
	item          models.DashboardItem
	groupItem     models.GroupItem
	parentGroupID string
	fromGroup     bool
}

// MoveItem relocates req.ItemID from the source scope to the target scope.
// The mutation is computed on a freshly fetched document, never on the
// possibly-stale local copy, and persisted as a minimal patch. On every
// outcome the guard is released and the returned (or logged) state reflects
// a reconciling re-resolve over ground truth.
func (s *RelocationService) MoveItem(ctx context.Context, req models.MoveItemRequest) (*MoveResult, error) {
	if !s.guard.TryAcquire() {
		metrics.Relocations.WithLabelValues("rejected").Inc()
		return nil, ErrMoveInProgress
	}
	defer s.guard.Release()

	start := time.Now()
	result, err := s.move(ctx, req)
	metrics.RelocationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Relocations.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.Relocations.WithLabelValues("ok").Inc()
	return result, nil
}

func (s *RelocationService) move(ctx context.Context, req models.MoveItemRequest) (*MoveResult, error) {
	// Consistency point: relocation is computed from what the document
	// store holds right now.
	cfg, err := s.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	sourceLayout, err := scopeLayout(cfg, req.SourcePageID)
	if err != nil {
		return nil, err
	}
	targetLayout, err := scopeLayout(cfg, req.TargetPageID)
	if err != nil {
		return nil, err
	}

	loc, ok := locateItem(sourceLayout, req.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, req.ItemID)
	}

	moved := materialize(loc)

	// Whether a mobile sequence counts as never arranged is judged on the
	// pre-move state: the append below can push it past the threshold.
	sourceMobileUninitialized := sourceLayout.MobileUninitialized()
	targetMobileUninitialized := targetLayout.MobileUninitialized()

	removeFromSource(sourceLayout, loc, req.ItemID)

	// Append to both device sequences so the moved item is visible no
	// matter which device views the destination next.
	targetLayout.Desktop = append(targetLayout.Desktop, moved.Clone())
	targetLayout.Mobile = append(targetLayout.Mobile, moved.Clone())

	if sourceMobileUninitialized {
		sourceLayout.SeedMobileFromDesktop()
	}
	if targetMobileUninitialized {
		targetLayout.SeedMobileFromDesktop()
	}

	patch := buildMovePatch(cfg, req.SourcePageID, req.TargetPageID)

	if err := s.store.Save(ctx, patch); err != nil {
		// Leave state to the reconciling re-resolve; no manual rollback.
		s.logReconcile(ctx, req)
		return nil, err
	}

	result := &MoveResult{
		Item:         moved,
		TargetPageID: req.TargetPageID,
		TargetName:   "Home",
		TargetSlug:   "/",
	}
	if req.TargetPageID != nil {
		if page := cfg.FindPage(*req.TargetPageID); page != nil {
			result.TargetName = page.Name
			result.TargetSlug = page.Slug()
		}
	}

	result.Items = s.reconcile(ctx, req, moved)

	return result, nil
}

// reconcile implements the two-phase update: an optimistic projection of
// the viewed scope with the moved item stripped, replaced wholesale by the
// resolver's output over fresh data when the re-fetch succeeds.
func (s *RelocationService) reconcile(ctx context.Context, req models.MoveItemRequest, moved models.DashboardItem) []models.DashboardItem {
	viewPage := req.ViewPageID
	if viewPage == nil {
		viewPage = req.SourcePageID
	}
	device := models.ParseDevice(req.ViewDevice)

	optimistic := []models.DashboardItem{}
	if cached := s.store.Cached(); cached != nil {
		if items, err := ResolveLayout(cached, viewPage, device); err == nil {
			optimistic = filterItems(items, req.ItemID)
		}
	}

	fresh, err := s.store.Fetch(ctx)
	if err != nil {
		logger.Warn("Reconciling re-fetch failed, keeping optimistic projection", map[string]interface{}{
			"item_id": req.ItemID,
			"error":   err.Error(),
		})
		return optimistic
	}

	items, err := ResolveLayout(fresh, viewPage, device)
	if err != nil {
		return optimistic
	}
	return items
}

func (s *RelocationService) logReconcile(ctx context.Context, req models.MoveItemRequest) {
	if _, err := s.store.Fetch(ctx); err != nil {
		logger.Warn("Re-fetch after failed relocation save failed", map[string]interface{}{
			"item_id": req.ItemID,
			"error":   err.Error(),
		})
	}
}

// scopeLayout returns the device layout a page id addresses, the main
// layout for nil.
func scopeLayout(cfg *models.Config, pageID *string) (*models.DeviceLayout, error) {
	if pageID == nil {
		return &cfg.Layout, nil
	}
	page := cfg.FindPage(*pageID)
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, *pageID)
	}
	return &page.Layout, nil
}

// locateItem searches desktop before mobile for a top-level item or a
// group-nested member with the given id.
func locateItem(layout *models.DeviceLayout, itemID string) (location, bool) {
	for _, items := range [][]models.DashboardItem{layout.Desktop, layout.Mobile} {
		for _, item := range items {
			if item.ID == itemID {
				return location{item: item.Clone()}, true
			}
			if item.Type != models.TypeGroup {
				continue
			}
			for _, member := range item.Config.GroupItems() {
				if member.ID == itemID {
					return location{
						groupItem:     member,
						parentGroupID: item.ID,
						fromGroup:     true,
					}, true
				}
			}
		}
	}
	return location{}, false
}

// materialize produces the DashboardItem to insert: a deep copy for a
// top-level match, a synthesized shortcut for a group member. Security
// flags of the original travel verbatim, including those of dual-container
// sub-widgets.
func materialize(loc location) models.DashboardItem {
	if loc.fromGroup {
		return loc.groupItem.ToDashboardItem()
	}
	moved := loc.item.Clone()
	models.PreserveSecurityFlags(&moved, &loc.item)
	return moved
}

// removeFromSource filters the item out of both device sequences, or out of
// the owning group's member list. A group left empty is retained.
func removeFromSource(layout *models.DeviceLayout, loc location, itemID string) {
	if !loc.fromGroup {
		layout.Desktop = filterItems(layout.Desktop, itemID)
		layout.Mobile = filterItems(layout.Mobile, itemID)
		return
	}

	for _, items := range [][]models.DashboardItem{layout.Desktop, layout.Mobile} {
		for i := range items {
			if items[i].ID != loc.parentGroupID || items[i].Config == nil {
				continue
			}
			members := items[i].Config.GroupItems()
			kept := make([]models.GroupItem, 0, len(members))
			for _, member := range members {
				if member.ID != itemID {
					kept = append(kept, member)
				}
			}
			items[i].Config.SetGroupItems(kept)
		}
	}
}

// buildMovePatch assembles the minimal patch for the touched scopes: only
// the main layout when the move stays within it, the full pages array when
// a named page is involved, and both when the main layout changed too.
func buildMovePatch(cfg *models.Config, sourcePageID, targetPageID *string) models.ConfigPatch {
	patch := models.ConfigPatch{}

	if sourcePageID == nil || targetPageID == nil {
		layout := cfg.Layout.Clone()
		patch.Layout = &layout
	}
	if sourcePageID != nil || targetPageID != nil {
		pages := make([]models.Page, 0, len(cfg.Pages))
		for _, page := range cfg.Pages {
			pages = append(pages, page.Clone())
		}
		patch.Pages = &pages
	}

	return patch
}

func filterItems(items []models.DashboardItem, itemID string) []models.DashboardItem {
	kept := make([]models.DashboardItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	return kept
}
