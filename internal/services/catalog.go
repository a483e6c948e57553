// Package services implements the two collection managers the application is
// built around: the curated item catalog and the expense ledger. Both keep
// their collection in memory and mirror it to a store slot after every
// mutation, so the persisted copy never lags by more than one operation.
package services

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
)

// Catalog manages the curated item list. All operations are synchronous and
// total: a missing id makes update/delete a no-op, never an error.
type Catalog struct {
	mu    sync.Mutex
	items []core.CuratedItem
	slots *store.Slots
	newID func() string
}

func NewCatalog(slots *store.Slots) *Catalog {
	c := &Catalog{
		slots: slots,
		newID: uuid.NewString,
	}
	c.slots.Load(store.SlotItems, &c.items)
	return c
}

// AddItem validates and appends a new item, preserving insertion order.
func (c *Catalog) AddItem(name string, price core.Money) (core.CuratedItem, error) {
	item := core.CuratedItem{
		ID:    c.newID(),
		Name:  strings.TrimSpace(name),
		Price: price,
	}
	if err := item.Validate(); err != nil {
		return core.CuratedItem{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	c.persistLocked()

	slog.Info("Catalog item added",
		applog.FieldComponent, applog.ComponentCatalog,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldItemID, item.ID,
		applog.FieldItemName, item.Name,
		applog.FieldPriceCents, item.Price.Cents)
	return item, nil
}

// UpdateItem replaces name and price of the matching item in place. The id is
// immutable and an unknown id is a no-op.
func (c *Catalog) UpdateItem(id, name string, price core.Money) error {
	updated := core.CuratedItem{ID: id, Name: strings.TrimSpace(name), Price: price}
	if err := updated.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		c.items[i].Name = updated.Name
		c.items[i].Price = updated.Price
		c.persistLocked()

		slog.Info("Catalog item updated",
			applog.FieldComponent, applog.ComponentCatalog,
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldItemID, id,
			applog.FieldItemName, updated.Name,
			applog.FieldPriceCents, updated.Price.Cents)
		return nil
	}
	return nil
}

// DeleteItem removes the matching item. Previously recorded expenses keep
// their snapshots; the ledger is never touched from here.
func (c *Catalog) DeleteItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		c.persistLocked()

		slog.Info("Catalog item deleted",
			applog.FieldComponent, applog.ComponentCatalog,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldItemID, id)
		return
	}
}

// Items returns a copy of the catalog in insertion order.
func (c *Catalog) Items() []core.CuratedItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.CuratedItem(nil), c.items...)
}

// Find looks up an item by id.
func (c *Catalog) Find(id string) (core.CuratedItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return core.CuratedItem{}, false
}

func (c *Catalog) persistLocked() {
	items := c.items
	if items == nil {
		items = []core.CuratedItem{}
	}
	c.slots.Save(store.SlotItems, items)
}
