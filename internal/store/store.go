// Package store persists the catalog and the ledger. It mimics the named-slot
// shape of browser local storage: each collection is serialized as one JSON
// value under a fixed key, and the in-memory copy always stays authoritative.
package store

import (
	"encoding/json"
	"log/slog"

	applog "spendlog/internal/log"
)

// Slot keys for the two persisted collections.
const (
	SlotItems    = "curated_items"
	SlotExpenses = "expenses"
)

// KV is the minimal key-value contract every backend implements.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool, error)

	// Put stores value under key, replacing any prior value.
	Put(key string, value []byte) error

	Close() error
}

// Slots wraps a KV backend with the fail-soft load/save contract: a load that
// cannot be read or parsed leaves the destination untouched, and a save that
// fails is logged and swallowed so the session keeps running on its in-memory
// state.
type Slots struct {
	kv KV
}

func NewSlots(kv KV) *Slots {
	return &Slots{kv: kv}
}

// Load unmarshals the value stored under key into v. On a missing key, a
// backend error or unparsable data, v is left exactly as the caller passed it.
func (s *Slots) Load(key string, v any) {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		slog.Warn("Slot read failed, keeping defaults",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldOperation, applog.OpLoad,
			applog.FieldKey, key,
			applog.FieldError, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("Slot value unparsable, keeping defaults",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldOperation, applog.OpLoad,
			applog.FieldKey, key,
			applog.FieldError, err)
	}
}

// Save serializes v and writes it under key. Errors never reach the caller;
// the worst case is that the persisted copy lags until the next save.
func (s *Slots) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Slot value not serializable",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldOperation, applog.OpSave,
			applog.FieldKey, key,
			applog.FieldError, err)
		return
	}
	if err := s.kv.Put(key, data); err != nil {
		slog.Error("Slot write failed, in-memory state still current",
			applog.FieldComponent, applog.ComponentStore,
			applog.FieldOperation, applog.OpSave,
			applog.FieldKey, key,
			applog.FieldError, err)
	}
}

func (s *Slots) Close() error {
	return s.kv.Close()
}
