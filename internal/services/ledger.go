package services

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
)

// ItemFinder resolves a catalog item at the moment an expense is recorded.
type ItemFinder interface {
	Find(id string) (core.CuratedItem, bool)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Ledger manages the recorded purchase history, kept in strict descending
// date order. Entries are immutable once recorded; the only removal is a
// full clear.
type Ledger struct {
	mu       sync.Mutex
	expenses []core.Expense
	slots    *store.Slots
	finder   ItemFinder
	clock    Clock
	newID    func() string
}

func NewLedger(slots *store.Slots, finder ItemFinder) *Ledger {
	l := &Ledger{
		slots:  slots,
		finder: finder,
		clock:  systemClock{},
		newID:  uuid.NewString,
	}
	l.slots.Load(store.SlotExpenses, &l.expenses)
	return l
}

// NewLedgerWithDeps builds a Ledger with injected id and time sources, for
// deterministic tests.
func NewLedgerWithDeps(slots *store.Slots, finder ItemFinder, clock Clock, newID func() string) *Ledger {
	l := NewLedger(slots, finder)
	if clock != nil {
		l.clock = clock
	}
	if newID != nil {
		l.newID = newID
	}
	return l
}

// AddExpense records a purchase of the given catalog item. The item's current
// name and price are copied into the expense; later catalog edits never
// change recorded history. An unknown item declines the operation with the
// ledger unchanged: you cannot log a purchase of an item that no longer
// exists, even though old entries referencing deleted items stay valid.
func (l *Ledger) AddExpense(itemID string, quantity int64) (core.Expense, error) {
	if quantity < 1 {
		return core.Expense{}, core.ErrInvalidQuantity
	}
	item, ok := l.finder.Find(itemID)
	if !ok {
		slog.Warn("Expense declined, item not in catalog",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpCreate,
			applog.FieldItemID, itemID)
		return core.Expense{}, core.ErrUnknownItem
	}

	expense := core.Expense{
		ID:        l.newID(),
		Date:      l.clock.Now(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		ItemPrice: item.Price,
		Quantity:  quantity,
	}
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.expenses = append(l.expenses, expense)
	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(l.expenses, func(i, j int) bool {
		return l.expenses[i].Date.After(l.expenses[j].Date)
	})
	l.persistLocked()

	slog.Info("Expense recorded",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldExpenseID, expense.ID,
		applog.FieldItemName, expense.ItemName,
		applog.FieldPriceCents, expense.ItemPrice.Cents,
		applog.FieldQuantity, expense.Quantity)
	return expense, nil
}

// Expenses returns a copy of the ledger, newest first.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Expense(nil), l.expenses...)
}

// Clear empties the ledger and persists the empty value. Irreversible; any
// confirmation step belongs to the calling interaction layer.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	cleared := len(l.expenses)
	l.expenses = nil
	l.persistLocked()

	slog.Info("Ledger cleared",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpClear,
		applog.FieldCount, cleared)
}

func (l *Ledger) persistLocked() {
	expenses := l.expenses
	if expenses == nil {
		expenses = []core.Expense{}
	}
	l.slots.Save(store.SlotExpenses, expenses)
}
