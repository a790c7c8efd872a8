package store

import (
	"fmt"
	"log/slog"
)

// BackendType selects the KV backend behind the adapter.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string { return string(bt) }

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Open creates the KV backend for the given type. The memory backend is
// also the fallback path when the durable store cannot be opened: the
// application stays usable with empty/default state rather than failing.
func Open(logger *slog.Logger, backend BackendType, dbPath string) (KV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case SQLiteBackend:
		kv, err := NewSQLiteKV(dbPath)
		if err != nil {
			logger.Warn("SQLite store unavailable, continuing with in-memory state", "error", err, "path", dbPath)
			return NewMemoryKV(), nil
		}
		logger.Info("Initialized SQLite store", "path", dbPath)
		return kv, nil
	case MemoryBackend:
		logger.Info("Initialized in-memory store")
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("invalid store backend: %s", backend)
	}
}
