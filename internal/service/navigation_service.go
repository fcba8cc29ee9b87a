package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"homegrid-backend/pkg/logger"
)

// Routes that belong to the application shell and are never matched as page
// slugs.
var reservedRoutes = map[string]struct{}{
	"settings": {},
	"login":    {},
	"signup":   {},
}

func IsReservedRoute(slug string) bool {
	_, ok := reservedRoutes[strings.ToLower(slug)]
	return ok
}

// Resolution is the outcome of mapping between a location path and a page
// identity.
type Resolution struct {
	// PageID is nil for the main layout.
	PageID *string `json:"page_id"`
	// Path is the canonical location after resolution.
	Path string `json:"path"`
	// Redirected is set when an unknown slug was recovered to home.
	Redirected bool `json:"redirected,omitempty"`
	// Reserved is set when the path belongs to the application shell and
	// page state was left untouched.
	Reserved bool `json:"reserved,omitempty"`
	// Replaced is set by a page switch whose computed path differed from
	// the current one, i.e. the client should replace its history entry.
	Replaced bool `json:"replaced,omitempty"`
	// PageName is the display name of the resolved page, empty for home.
	PageName string `json:"page_name,omitempty"`
}

// NavigationService maintains the invariant that the browser location and
// the current page identity stay a consistent pair.
type NavigationService struct {
	store ConfigSource
	guard *MoveGuard

	mu            sync.Mutex
	currentPageID *string
	currentPath   string
}

func NewNavigationService(store ConfigSource, guard *MoveGuard) *NavigationService {
	return &NavigationService{
		store:       store,
		guard:       guard,
		currentPath: "/",
	}
}

// ResolvePath runs forward resolution: location path → page identity. It
// always works from a freshly fetched config because at application start
// the page list may not be loaded yet. Re-running with an unchanged path
// and config is idempotent. An unknown slug is recovered locally by
// redirecting home; it is never surfaced as an error.
func (s *NavigationService) ResolvePath(ctx context.Context, path string) (*Resolution, error) {
	if s.guard.Active() {
		// A relocation is in flight; suppress the reactive transition.
		return s.currentResolution(), nil
	}

	slug, reserved := parsePath(path)
	if reserved {
		res := s.currentResolution()
		res.Path = "/" + slug
		res.Reserved = true
		return res, nil
	}

	if slug == "" {
		s.setCurrent(nil, "/")
		return &Resolution{PageID: nil, Path: "/"}, nil
	}

	cfg, err := s.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	page := cfg.PageBySlug(slug)
	if page == nil {
		logger.Warn("Unknown page slug, redirecting home", map[string]interface{}{"slug": slug})
		s.setCurrent(nil, "/")
		return &Resolution{PageID: nil, Path: "/", Redirected: true}, nil
	}

	id := page.ID
	s.setCurrent(&id, "/"+page.Slug())
	return &Resolution{PageID: &id, Path: "/" + page.Slug(), PageName: page.Name}, nil
}

// SwitchTo runs reverse resolution: page identity → location path. The
// history entry is replaced only when the computed path differs from the
// current one.
func (s *NavigationService) SwitchTo(ctx context.Context, pageID *string) (*Resolution, error) {
	if pageID == nil {
		return s.applySwitch(nil, "/", ""), nil
	}

	cfg := s.store.Cached()
	if cfg == nil {
		var err error
		cfg, err = s.store.Fetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	page := cfg.FindPage(*pageID)
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, *pageID)
	}

	id := page.ID
	return s.applySwitch(&id, "/"+page.Slug(), page.Name), nil
}

// Refresh re-resolves the current path, e.g. after a login-state change or
// an external config refresh. It no-ops while a relocation is in flight.
func (s *NavigationService) Refresh(ctx context.Context) (*Resolution, error) {
	s.mu.Lock()
	path := s.currentPath
	s.mu.Unlock()
	return s.ResolvePath(ctx, path)
}

// Current returns the page identity and path the service considers active.
func (s *NavigationService) Current() (*string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePageID(s.currentPageID), s.currentPath
}

func (s *NavigationService) applySwitch(pageID *string, path, name string) *Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.currentPath != path
	s.currentPageID = clonePageID(pageID)
	s.currentPath = path

	return &Resolution{
		PageID:   clonePageID(pageID),
		Path:     path,
		Replaced: replaced,
		PageName: name,
	}
}

func (s *NavigationService) setCurrent(pageID *string, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPageID = clonePageID(pageID)
	s.currentPath = path
}

func (s *NavigationService) currentResolution() *Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Resolution{
		PageID: clonePageID(s.currentPageID),
		Path:   s.currentPath,
	}
}

// parsePath extracts the first path segment as a candidate slug. Reserved
// shell routes are reported separately and never treated as slugs.
func parsePath(path string) (slug string, reserved bool) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "", false
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.ToLower(trimmed)
	if IsReservedRoute(trimmed) {
		return trimmed, true
	}
	return trimmed, false
}

func clonePageID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
