package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"homegrid-backend/internal/models"
	"homegrid-backend/pkg/utils"
)

// PageService creates, renames and deletes pages in the config document.
// Page names must stay unique by derived slug (case-insensitive) and must
// not shadow a reserved shell route.
type PageService struct {
	store ConfigSource
}

func NewPageService(store ConfigSource) *PageService {
	return &PageService{store: store}
}

func (s *PageService) Create(ctx context.Context, req models.CreatePageRequest) (*models.Page, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("page name is required")
	}

	slug := utils.PageSlug(name)
	if slug == "" {
		return nil, errors.New("page name must produce a non-empty slug")
	}

	cfg, err := s.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := validateSlug(cfg, slug, ""); err != nil {
		return nil, err
	}

	page := models.Page{
		ID:        uuid.New().String(),
		Name:      name,
		AdminOnly: req.AdminOnly,
		Layout: models.DeviceLayout{
			Desktop: []models.DashboardItem{},
			Mobile:  []models.DashboardItem{},
		},
	}

	pages := append(clonePages(cfg.Pages), page)
	if err := s.store.Save(ctx, models.ConfigPatch{Pages: &pages}); err != nil {
		return nil, err
	}

	return &page, nil
}

func (s *PageService) Rename(ctx context.Context, id string, req models.RenamePageRequest) (*models.Page, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("page name is required")
	}

	slug := utils.PageSlug(name)
	if slug == "" {
		return nil, errors.New("page name must produce a non-empty slug")
	}

	cfg, err := s.store.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.FindPage(id) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}

	if err := validateSlug(cfg, slug, id); err != nil {
		return nil, err
	}

	pages := clonePages(cfg.Pages)
	var renamed *models.Page
	for i := range pages {
		if pages[i].ID == id {
			pages[i].Name = name
			renamed = &pages[i]
			break
		}
	}

	if err := s.store.Save(ctx, models.ConfigPatch{Pages: &pages}); err != nil {
		return nil, err
	}

	return renamed, nil
}

// Delete removes the page from the pages array; the items it held are
// discarded with it.
func (s *PageService) Delete(ctx context.Context, id string) error {
	cfg, err := s.store.Fetch(ctx)
	if err != nil {
		return err
	}

	if cfg.FindPage(id) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}

	pages := make([]models.Page, 0, len(cfg.Pages))
	for _, page := range cfg.Pages {
		if page.ID != id {
			pages = append(pages, page.Clone())
		}
	}

	return s.store.Save(ctx, models.ConfigPatch{Pages: &pages})
}

func (s *PageService) List(ctx context.Context) ([]models.Page, error) {
	cfg := s.store.Cached()
	if cfg == nil {
		var err error
		cfg, err = s.store.Fetch(ctx)
		if err != nil {
			return nil, err
		}
	}
	return cfg.Pages, nil
}

// validateSlug rejects reserved routes and case-insensitive slug
// collisions with any page other than excludeID.
func validateSlug(cfg *models.Config, slug, excludeID string) error {
	if IsReservedRoute(slug) {
		return fmt.Errorf("%w: %s", ErrReservedSlug, slug)
	}
	for _, page := range cfg.Pages {
		if page.ID == excludeID {
			continue
		}
		if strings.EqualFold(page.Slug(), slug) {
			return fmt.Errorf("%w: %s", ErrDuplicatePageName, page.Name)
		}
	}
	return nil
}

func clonePages(pages []models.Page) []models.Page {
	cloned := make([]models.Page, 0, len(pages))
	for _, page := range pages {
		cloned = append(cloned, page.Clone())
	}
	return cloned
}
