package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// CuratedItem is an entry of the user-maintained catalog of
	// frequently-purchased items. The ID is opaque and never changes.
	CuratedItem struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price Money  `json:"price_cents"`
	}

	// Expense is a single recorded purchase. ItemName and ItemPrice are a
	// snapshot of the catalog entry at the moment of purchase; editing or
	// deleting the item later must not change them. ItemID is kept for
	// traceability only and is never dereferenced again.
	Expense struct {
		ID        string    `json:"id"`
		Date      time.Time `json:"date"`
		ItemID    string    `json:"item_id"`
		ItemName  string    `json:"item_name"`
		ItemPrice Money     `json:"item_price_cents"`
		Quantity  int64     `json:"quantity"`
	}
)

var (
	ErrEmptyName       = errors.New("empty item name")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUnknownItem     = errors.New("unknown catalog item")
)

func (i CuratedItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if len(i.Name) > 200 {
		return errors.New("item name too long (max 200 characters)")
	}
	if err := i.Price.Validate(); err != nil {
		return err
	}
	return nil
}

func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if strings.TrimSpace(e.ItemName) == "" {
		return ErrEmptyName
	}
	if err := e.ItemPrice.Validate(); err != nil {
		return err
	}
	if e.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Total is the expense cost computed from the snapshot, never from the
// current catalog.
func (e Expense) Total() Money {
	return Money{Cents: e.ItemPrice.Cents * e.Quantity}
}
