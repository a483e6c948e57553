package store

import (
	"errors"
	"fmt"
	"log/slog"
)

var errFailWrites = errors.New("writes disabled")

// Backend identifies a KV implementation.
type Backend string

const (
	BoltBackend   Backend = "bolt"
	SQLiteBackend Backend = "sqlite"
	MemoryBackend Backend = "memory"
)

func (b Backend) String() string { return string(b) }

func (b Backend) IsValid() bool {
	switch b {
	case BoltBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Backends returns all valid backend names.
func Backends() []string {
	return []string{BoltBackend.String(), SQLiteBackend.String(), MemoryBackend.String()}
}

// Options selects and parameterizes the backend to open.
type Options struct {
	Backend    Backend
	BoltPath   string
	SQLitePath string
}

// Open creates the configured KV backend and wraps it in the fail-soft slot
// adapter. The caller owns the returned Slots and must Close it.
func Open(opts Options) (*Slots, error) {
	if !opts.Backend.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %q (valid: %v)", opts.Backend, Backends())
	}

	var (
		kv  KV
		err error
	)
	switch opts.Backend {
	case BoltBackend:
		kv, err = NewBolt(opts.BoltPath)
	case SQLiteBackend:
		kv, err = NewSQLite(opts.SQLitePath)
	case MemoryBackend:
		kv = NewMemory()
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", opts.Backend, err)
	}

	slog.Info("Initialized store backend",
		"backend", opts.Backend.String(),
		"bolt_path", opts.BoltPath,
		"sqlite_path", opts.SQLitePath)

	return NewSlots(kv), nil
}
