// File path: internal/catalog/config.go
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite connection behind the saved-idea catalog.
type Config struct {
	Path string

	MaxOpenConns int
	MaxIdleConns int

	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	BusyTimeout     time.Duration
}

// DefaultConfig returns the baseline catalog configuration.
func DefaultConfig() Config {
	return Config{
		Path:            filepath.Join("data", "ideas.db"),
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
		BusyTimeout:     5 * time.Second,
	}
}

// LoadConfig builds a Config from defaults and VENTURELENS_CATALOG_*
// environment variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if value := strings.TrimSpace(os.Getenv("VENTURELENS_CATALOG_PATH")); value != "" {
		cfg.Path = value
	}
	if value := strings.TrimSpace(os.Getenv("VENTURELENS_CATALOG_MAX_CONNS")); value != "" {
		conns, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse VENTURELENS_CATALOG_MAX_CONNS: %w", err)
		}
		if conns > 0 {
			cfg.MaxOpenConns = conns
		}
	}
	if value := strings.TrimSpace(os.Getenv("VENTURELENS_CATALOG_BUSY_TIMEOUT")); value != "" {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("parse VENTURELENS_CATALOG_BUSY_TIMEOUT: %w", err)
		}
		cfg.BusyTimeout = dur
	}
	return cfg, nil
}

// Merge overlays non-zero override fields onto the receiver.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.Path) != "" {
		result.Path = strings.TrimSpace(override.Path)
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		result.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		result.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}
