package store

import (
	"fmt"
	"os"
	"path/filepath"

	"scout/config"
)

// New builds the transcript store described by the storage config.
func New(cfg *config.StorageConfig) (TranscriptStore, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory %s: %w", dir, err)
			}
		}
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
