// Package providers builds the model client for the configured AI
// provider, keeping credential checks and transport defaults in one
// place.
package providers

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jamiehdev/commit-wizard/internal/catalog"
	"github.com/jamiehdev/commit-wizard/internal/config"
	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/generation/gemini"
	"github.com/jamiehdev/commit-wizard/internal/generation/openrouter"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
)

const (
	openRouterKeyEnv = "OPENROUTER_API_KEY"
	geminiKeyEnv     = "GEMINI_API_KEY"

	// transport budget for every OpenRouter request
	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second
)

// NewModelClient returns the chat completion client for the provider
// named in the config. A missing credential fails here, before any
// repository work happens.
func NewModelClient(ctx context.Context, cfg *config.Config) (ports.ModelClient, error) {
	switch config.Provider(cfg.ActiveProvider) {
	case config.ProviderOpenRouter, "":
		key := os.Getenv(openRouterKeyEnv)
		if key == "" {
			return nil, domainErrors.ErrAPIKeyMissing
		}
		return openrouter.NewClient(key, newHTTPClient()), nil

	case config.ProviderGemini:
		key := cfg.GeminiAPIKey
		if key == "" {
			key = os.Getenv(geminiKeyEnv)
		}
		if key == "" {
			return nil, domainErrors.ErrGeminiKeyMissing
		}
		return gemini.NewClient(ctx, key)

	default:
		return nil, domainErrors.ErrProviderNotSupported.WithContext("provider", cfg.ActiveProvider)
	}
}

// NewModelLister returns the catalog source for the active provider.
// OpenRouter exposes a live listing endpoint; Gemini does not, so its
// configured routing table is served instead.
func NewModelLister(cfg *config.Config) (catalog.ModelLister, error) {
	switch config.Provider(cfg.ActiveProvider) {
	case config.ProviderOpenRouter, "":
		key := os.Getenv(openRouterKeyEnv)
		if key == "" {
			return nil, domainErrors.ErrAPIKeyMissing
		}
		return openrouter.NewClient(key, newHTTPClient()), nil

	case config.ProviderGemini:
		return staticLister{table: cfg.Models}, nil

	default:
		return nil, domainErrors.ErrProviderNotSupported.WithContext("provider", cfg.ActiveProvider)
	}
}

// staticLister serves the configured routing table as a listing.
type staticLister struct {
	table config.ModelTable
}

func (s staticLister) ListModels(_ context.Context) ([]models.ModelInfo, error) {
	routes := []struct {
		id, role string
	}{
		{s.table.Default, "default"},
		{s.table.Fast, "fast"},
		{s.table.Thinking, "thinking"},
	}

	var listing []models.ModelInfo
	seen := make(map[string]bool)
	for _, r := range routes {
		if r.id == "" || seen[r.id] {
			continue
		}
		seen[r.id] = true
		listing = append(listing, models.ModelInfo{
			ID:          r.id,
			Name:        r.id,
			Description: "configured " + r.role + " model",
		})
	}

	return listing, nil
}

// newHTTPClient keeps the default transport's proxy and pooling while
// tightening the dial deadline.
func newHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout

	return &http.Client{
		Timeout:   requestTimeout,
		Transport: transport,
	}
}
