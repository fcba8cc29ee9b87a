package service

import (
	"fmt"

	"homegrid-backend/internal/models"
)

// ResolveLayout projects the item sequence for one page scope and device.
// A nil pageID addresses the main layout. The projection never mutates the
// document: callers receive their own copy. A nil config resolves to an
// empty sequence so consumers can render a placeholder grid before the
// first fetch completes.
func ResolveLayout(cfg *models.Config, pageID *string, device models.Device) ([]models.DashboardItem, error) {
	if cfg == nil {
		return []models.DashboardItem{}, nil
	}

	if pageID == nil {
		return models.CloneItems(cfg.Layout.ForDevice(device)), nil
	}

	page := cfg.FindPage(*pageID)
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, *pageID)
	}
	return models.CloneItems(page.Layout.ForDevice(device)), nil
}
