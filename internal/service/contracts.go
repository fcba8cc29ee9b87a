package service

import (
	"context"
	"encoding/json"

	"homegrid-backend/internal/models"
)

// ConfigSource is the slice of the config store the services depend on.
type ConfigSource interface {
	// Fetch returns the full current document from the document store.
	Fetch(ctx context.Context) (*models.Config, error)
	// Save merge-patches the document remotely and in the local copy.
	Save(ctx context.Context, patch models.ConfigPatch) error
	// Cached returns a snapshot of the local copy; nil before first fetch.
	Cached() *models.Config
}

// AssetResolver is the batched icon/widget-data collaborator.
type AssetResolver interface {
	ResolveIcons(ctx context.Context, paths []string) (map[string]string, error)
	ResolveWidgetData(ctx context.Context, requests []models.WidgetDataRequest) (map[string]json.RawMessage, error)
}
