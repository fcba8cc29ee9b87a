package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"homegrid-backend/internal/models"
)

func navigationConfig() *models.Config {
	return &models.Config{
		Layout: models.DeviceLayout{
			Desktop: []models.DashboardItem{shortcut("i1")},
			Mobile:  []models.DashboardItem{shortcut("i1")},
		},
		Pages: []models.Page{
			{ID: "p1", Name: "Media Center"},
			{ID: "p2", Name: "Café Corner"},
		},
	}
}

func TestResolvePathHome(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	res, err := svc.ResolvePath(context.Background(), "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageID != nil || res.Path != "/" || res.Redirected {
		t.Fatalf("expected home resolution, got %+v", res)
	}
	if store.fetches != 0 {
		t.Fatalf("expected no fetch for the root path, got %d", store.fetches)
	}
}

func TestResolvePathMatchesSlug(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	res, err := svc.ResolvePath(context.Background(), "/media-center")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageID == nil || *res.PageID != "p1" {
		t.Fatalf("expected p1, got %+v", res)
	}
	if res.Path != "/media-center" || res.PageName != "Media Center" {
		t.Fatalf("unexpected resolution: %+v", res)
	}

	id, path := svc.Current()
	if id == nil || *id != "p1" || path != "/media-center" {
		t.Fatalf("expected current state updated, got %v %q", id, path)
	}
}

func TestResolvePathIgnoresCaseAndFoldsDiacritics(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	res, err := svc.ResolvePath(context.Background(), "/Cafe-Corner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageID == nil || *res.PageID != "p2" {
		t.Fatalf("expected p2 for a case-insensitive match, got %+v", res)
	}
	if res.Path != "/cafe-corner" {
		t.Fatalf("expected canonical folded path, got %q", res.Path)
	}
}

func TestResolvePathUnknownSlugRedirectsHome(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	res, err := svc.ResolvePath(context.Background(), "/does-not-exist")
	if err != nil {
		t.Fatalf("expected a local redirect, not an error: %v", err)
	}
	if !res.Redirected || res.PageID != nil || res.Path != "/" {
		t.Fatalf("expected redirect home, got %+v", res)
	}
}

func TestResolvePathReservedRoute(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())
	ctx := context.Background()

	if _, err := svc.ResolvePath(ctx, "/media-center"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.ResolvePath(ctx, "/settings")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Reserved {
		t.Fatalf("expected reserved resolution, got %+v", res)
	}

	// Page state is untouched by a shell route.
	id, path := svc.Current()
	if id == nil || *id != "p1" || path != "/media-center" {
		t.Fatalf("expected page state untouched, got %v %q", id, path)
	}
}

func TestResolvePathIdempotent(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())
	ctx := context.Background()

	first, err := svc.ResolvePath(ctx, "/media-center")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ResolvePath(ctx, "/media-center")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical resolutions, got %+v then %+v", first, second)
	}
}

func TestResolvePathSuppressedWhileMoveInFlight(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	guard := NewMoveGuard()
	svc := NewNavigationService(store, guard)
	ctx := context.Background()

	if _, err := svc.ResolvePath(ctx, "/media-center"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fetchesBefore := store.fetches

	if !guard.TryAcquire() {
		t.Fatalf("expected to acquire the guard")
	}
	defer guard.Release()

	res, err := svc.ResolvePath(ctx, "/cafe-corner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageID == nil || *res.PageID != "p1" || res.Path != "/media-center" {
		t.Fatalf("expected the pre-move state, got %+v", res)
	}
	if store.fetches != fetchesBefore {
		t.Fatalf("expected no fetch while a move is in flight")
	}
}

func TestResolvePathFetchError(t *testing.T) {
	store := &mockStore{cfg: navigationConfig(), fetchErr: errors.New("store down")}
	svc := NewNavigationService(store, NewMoveGuard())

	if _, err := svc.ResolvePath(context.Background(), "/media-center"); err == nil {
		t.Fatalf("expected the fetch error to surface")
	}
}

func TestSwitchToPage(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	res, err := svc.SwitchTo(context.Background(), strPtr("p1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Path != "/media-center" || !res.Replaced || res.PageName != "Media Center" {
		t.Fatalf("unexpected switch result: %+v", res)
	}

	// Switching to the already-current page computes the same path and does
	// not replace the history entry again.
	res, err = svc.SwitchTo(context.Background(), strPtr("p1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Replaced {
		t.Fatalf("expected no replacement for an unchanged path, got %+v", res)
	}
}

func TestSwitchToHome(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())
	ctx := context.Background()

	if _, err := svc.SwitchTo(ctx, strPtr("p2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.SwitchTo(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PageID != nil || res.Path != "/" || !res.Replaced {
		t.Fatalf("expected switch back to home, got %+v", res)
	}
}

func TestSwitchToUnknownPage(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())

	_, err := svc.SwitchTo(context.Background(), strPtr("missing"))
	if !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestRefreshReResolvesCurrentPath(t *testing.T) {
	store := &mockStore{cfg: navigationConfig()}
	svc := NewNavigationService(store, NewMoveGuard())
	ctx := context.Background()

	if _, err := svc.ResolvePath(ctx, "/media-center"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The page disappears from the config; a refresh falls back home.
	store.mu.Lock()
	store.cfg.Pages = store.cfg.Pages[1:]
	store.mu.Unlock()

	res, err := svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Redirected || res.PageID != nil {
		t.Fatalf("expected redirect home after the page vanished, got %+v", res)
	}
}
