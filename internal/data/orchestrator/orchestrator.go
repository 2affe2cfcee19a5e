// File path: internal/data/orchestrator/orchestrator.go
//
// Package orchestrator is the composition root for the durable stores:
// the per-session ledger blobs and the saved-idea catalog. Handlers reach
// storage only through the handles it exposes.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/venturelabs/venturelens/internal/blob"
	"github.com/venturelabs/venturelens/internal/catalog"
	"github.com/venturelabs/venturelens/internal/common"
)

// Config controls where the durable stores live.
type Config struct {
	SessionsPath string
	CatalogPath  string
}

// DefaultConfig returns the baseline store locations.
func DefaultConfig() Config {
	return Config{
		SessionsPath: filepath.Join("data", "sessions"),
		CatalogPath:  filepath.Join("data", "ideas.db"),
	}
}

// LoadConfig builds a Config from defaults and environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if value := strings.TrimSpace(os.Getenv("VENTURELENS_SESSIONS_PATH")); value != "" {
		cfg.SessionsPath = value
	}
	if value := strings.TrimSpace(os.Getenv("VENTURELENS_CATALOG_PATH")); value != "" {
		cfg.CatalogPath = value
	}
	return cfg, nil
}

// Orchestrator owns the opened stores for the life of the process.
type Orchestrator struct {
	sessions *blob.Store
	catalog  *catalog.Store
}

// New opens the session blob store and the idea catalog.
func New(ctx context.Context, cfg Config) (*Orchestrator, error) {
	logger := common.Logger()
	if strings.TrimSpace(cfg.SessionsPath) == "" {
		return nil, errors.New("sessions path required")
	}
	sessions, err := blob.NewStore(cfg.SessionsPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("open idea catalog: %w", err)
	}
	logger.Info("orchestrator: stores ready", "sessions", cfg.SessionsPath, "catalog", cfg.CatalogPath)
	return &Orchestrator{sessions: sessions, catalog: cat}, nil
}

// Sessions returns the per-session ledger blob store.
func (o *Orchestrator) Sessions() *blob.Store {
	if o == nil {
		return nil
	}
	return o.sessions
}

// Catalog returns the saved-idea catalog.
func (o *Orchestrator) Catalog() *catalog.Store {
	if o == nil {
		return nil
	}
	return o.catalog
}

// Close releases the catalog connection. The blob store holds no open
// handles between operations.
func (o *Orchestrator) Close() error {
	if o == nil || o.catalog == nil {
		return nil
	}
	return o.catalog.Close()
}
