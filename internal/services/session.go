package services

import "spendlog/internal/store"

// Session is the top-level owner of the catalog and the ledger. It is created
// at startup, loads both collections from the store, and is torn down at
// process exit; the store only serializes state, never owns it.
type Session struct {
	Catalog *Catalog
	Ledger  *Ledger

	slots *store.Slots
}

func NewSession(slots *store.Slots) *Session {
	catalog := NewCatalog(slots)
	return &Session{
		Catalog: catalog,
		Ledger:  NewLedger(slots, catalog),
		slots:   slots,
	}
}

func (s *Session) Close() error {
	return s.slots.Close()
}
