package config

import "fmt"

// StorageConfig defines the transcript store backend.
type StorageConfig struct {
	Backend string `hcl:"backend,optional"` // "memory" or "sqlite"
	Path    string `hcl:"path,optional"`    // SQLite file path
}

func (s *StorageConfig) Defaults() {
	if s.Backend == "" {
		s.Backend = "memory"
	}
	if s.Path == "" {
		s.Path = ".scout/store.db"
	}
}

func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case "memory", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown storage backend: %s (expected 'memory' or 'sqlite')", s.Backend)
	}
}
