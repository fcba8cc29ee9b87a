package store

import (
	"context"
	"sync"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/remote"
	"homegrid-backend/pkg/cache"
	"homegrid-backend/pkg/logger"
	"homegrid-backend/pkg/metrics"
)

// Store fetches and persists the configuration document. It keeps a local
// cached copy that mirrors what the document store persisted: every save
// applies the same top-level merge locally that the store applies remotely,
// so concurrent reads of cached state stay consistent with disk.
type Store struct {
	client *remote.DocumentClient
	warm   *cache.Cache

	mu      sync.RWMutex
	current *models.Config
}

func New(client *remote.DocumentClient, warm *cache.Cache) *Store {
	return &Store{
		client: client,
		warm:   warm,
	}
}

// Fetch returns the full current document from the document store and
// refreshes the local cached copy. Transport failures surface as
// remote.TransportError; no retry policy lives here.
func (s *Store) Fetch(ctx context.Context) (*models.Config, error) {
	cfg, err := s.client.Get(ctx)
	if err != nil {
		metrics.ConfigFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ConfigFetches.WithLabelValues("ok").Inc()

	// Normalize absent sequences so every consumer sees non-nil slices.
	cfg.Apply(models.ConfigPatch{})

	s.mu.Lock()
	s.current = cfg.Clone()
	s.mu.Unlock()

	if s.warm != nil {
		if err := s.warm.CacheConfig(cfg); err != nil {
			logger.Warn("Failed to warm config cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return cfg, nil
}

// Save sends only the changed top-level keys, then applies the equivalent
// merge to the local cached copy. Every scope the patch touches has its
// uninitialized mobile sequence re-seeded from desktop before anything is
// persisted.
func (s *Store) Save(ctx context.Context, patch models.ConfigPatch) error {
	if patch.Layout != nil {
		patch.Layout.BootstrapMobile()
	}
	if patch.Pages != nil {
		pages := *patch.Pages
		for i := range pages {
			pages[i].Layout.BootstrapMobile()
		}
	}

	if err := s.client.Merge(ctx, patch); err != nil {
		metrics.ConfigSaves.WithLabelValues("error").Inc()
		return err
	}
	metrics.ConfigSaves.WithLabelValues("ok").Inc()

	s.mu.Lock()
	if s.current == nil {
		s.current = &models.Config{}
	}
	s.current.Apply(patch)
	snapshot := s.current.Clone()
	s.mu.Unlock()

	if s.warm != nil {
		if err := s.warm.CacheConfig(snapshot); err != nil {
			logger.Warn("Failed to refresh warm config cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

// Import replaces the document wholesale.
func (s *Store) Import(ctx context.Context, cfg *models.Config) error {
	if err := s.client.Replace(ctx, cfg); err != nil {
		return err
	}

	replaced := cfg.Clone()
	replaced.Apply(models.ConfigPatch{})

	s.mu.Lock()
	s.current = replaced
	s.mu.Unlock()

	if s.warm != nil {
		if err := s.warm.CacheConfig(replaced); err != nil {
			logger.Warn("Failed to refresh warm config cache", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

// Cached returns a snapshot of the local copy without touching the network.
// After a cold start it falls back to the warm cache; nil means nothing has
// been fetched yet.
func (s *Store) Cached() *models.Config {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current.Clone()
	}

	if s.warm != nil {
		var cfg models.Config
		if err := s.warm.GetCachedConfig(&cfg); err == nil {
			return &cfg
		}
	}

	return nil
}
