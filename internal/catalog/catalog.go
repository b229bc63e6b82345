// Package catalog caches the provider's model listing on disk so the
// models command does not hit the network on every run.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jamiehdev/commit-wizard/internal/config"
	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
)

const (
	cacheFileName = "models.json"
	defaultTTL    = 24 * time.Hour
)

// ModelLister fetches the live model listing from the provider.
type ModelLister interface {
	ListModels(ctx context.Context) ([]models.ModelInfo, error)
}

type cachedListing struct {
	FetchedAt time.Time          `json:"fetched_at"`
	Models    []models.ModelInfo `json:"models"`
}

// Catalog serves model listings from a TTL file cache, falling back to
// the provider, and records the user's default model in the config.
type Catalog struct {
	lister   ModelLister
	cfg      *config.Config
	cacheDir string
	ttl      time.Duration
}

var _ ports.ModelCatalog = (*Catalog)(nil)

func NewCatalog(lister ModelLister, cfg *config.Config) (*Catalog, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".commit-wizard", "cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Catalog{
		lister:   lister,
		cfg:      cfg,
		cacheDir: cacheDir,
		ttl:      defaultTTL,
	}, nil
}

// LoadModels returns the cached listing while it is fresh, otherwise
// fetches from the provider and rewrites the cache.
func (c *Catalog) LoadModels(ctx context.Context) ([]models.ModelInfo, error) {
	log := logger.FromContext(ctx)

	if cached, ok := c.readCache(); ok {
		log.Debug("model catalog served from cache",
			"models", len(cached.Models), "age", time.Since(cached.FetchedAt).Round(time.Second))
		return cached.Models, nil
	}

	return c.Refresh(ctx)
}

// Refresh fetches the listing from the provider regardless of cache
// freshness and rewrites the cache. A cache write failure is logged,
// not surfaced: the fetched listing is still good.
func (c *Catalog) Refresh(ctx context.Context) ([]models.ModelInfo, error) {
	log := logger.FromContext(ctx)

	listing, err := c.lister.ListModels(ctx)
	if err != nil {
		return nil, domainErrors.ErrModelCatalog.WithError(err)
	}
	log.Debug("model catalog fetched", "models", len(listing))

	if err := c.writeCache(listing); err != nil {
		log.Warn("caching model catalog failed", "error", err)
	}

	return listing, nil
}

// SavePreference records model as the default for future runs.
func (c *Catalog) SavePreference(model string) error {
	if model == "" {
		return errors.New("model name is empty")
	}

	c.cfg.Models.Default = model
	if err := config.SaveConfig(c.cfg); err != nil {
		return fmt.Errorf("saving model preference: %w", err)
	}
	return nil
}

func (c *Catalog) readCache() (cachedListing, bool) {
	data, err := os.ReadFile(filepath.Join(c.cacheDir, cacheFileName))
	if err != nil {
		return cachedListing{}, false
	}

	var cached cachedListing
	if err := json.Unmarshal(data, &cached); err != nil {
		return cachedListing{}, false
	}
	if time.Since(cached.FetchedAt) > c.ttl || len(cached.Models) == 0 {
		return cachedListing{}, false
	}

	return cached, true
}

func (c *Catalog) writeCache(listing []models.ModelInfo) error {
	cached := cachedListing{
		FetchedAt: time.Now(),
		Models:    listing,
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(c.cacheDir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing model cache: %w", err)
	}

	return nil
}
