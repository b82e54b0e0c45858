// Package ledger keeps the current house snapshot in sync with a record
// store and runs the settlement engine against it.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
	"github.com/mmynk/messledger/internal/storage"
)

// DefaultRecordLimit caps the number of records a house may hold.
const DefaultRecordLimit = 999

// Action describes a mutation.
type Action string

const (
	ActionCreated Action = "created"
	ActionDeleted Action = "deleted"
)

// Change describes one successful mutation.
type Change struct {
	Action Action
	Kind   models.RecordKind
	ID     string
	At     time.Time
}

// Observer is told about every successful mutation.
// Implementations handle their own failures; the mutation is already committed.
type Observer interface {
	RecordChanged(ctx context.Context, c Change)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRecordLimit overrides DefaultRecordLimit. Non-positive values disable the limit.
func WithRecordLimit(n int) Option {
	return func(l *Ledger) { l.limit = n }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observers = append(l.observers, o) }
}

// WithClock overrides time.Now, used for default join dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Ledger validates mutations, forwards them to the store and recomputes its
// snapshot whenever the store reports a change.
type Ledger struct {
	store storage.Store
	limit int
	now   func() time.Time

	obsMu     sync.Mutex
	observers []Observer

	// writeMu serializes mutations so the limit check and the snapshot
	// rebuilt by the store's notification stay consistent.
	writeMu sync.Mutex

	mu     sync.RWMutex
	snap   Snapshot
	cancel func()
}

// New loads the store's records and subscribes to its changes.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		limit: DefaultRecordLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	l.apply(records)
	l.cancel = store.Subscribe(l.apply)

	return l, nil
}

// Close stops listening to store changes. It does not close the store.
func (l *Ledger) Close() {
	if l.cancel != nil {
		l.cancel()
	}
}

// apply replaces the snapshot with one built from records.
func (l *Ledger) apply(records []models.Record) {
	snap := BuildSnapshot(records)

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	slog.Debug("Ledger snapshot rebuilt",
		"members", len(snap.Members),
		"bills", len(snap.Bills),
		"payments", len(snap.Payments),
		"meal_entries", snap.Meals.Len(),
	)
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}

// Refresh reloads every record from the store.
func (l *Ledger) Refresh(ctx context.Context) error {
	records, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	l.apply(records)
	return nil
}

// Create validates rec and persists it. On success rec carries the stored ID.
func (l *Ledger) Create(ctx context.Context, rec *models.Record) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	snap := l.Snapshot()

	if err := normalize(rec, snap, l.now()); err != nil {
		return err
	}
	if l.limit > 0 && snap.RecordCount() >= l.limit && !isSlotUpdate(*rec, snap) {
		return fmt.Errorf("%w: %d records", ErrRecordLimit, l.limit)
	}

	if err := l.store.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to create %s: %w", rec.Kind, err)
	}

	slog.Info("Record created", "kind", rec.Kind, "id", rec.ID())
	l.emit(ctx, Change{Action: ActionCreated, Kind: rec.Kind, ID: rec.ID(), At: l.now()})
	return nil
}

// isSlotUpdate reports whether rec overwrites an existing meal slot and so
// does not grow the collection.
func isSlotUpdate(rec models.Record, snap Snapshot) bool {
	if rec.Kind != models.KindMealEntry {
		return false
	}
	_, ok := snap.Meals.Get(rec.MealEntry.MemberID, rec.MealEntry.Date)
	return ok
}

// Delete removes a record by kind and ID. Deleting a member leaves its
// payments and meal entries in place.
func (l *Ledger) Delete(ctx context.Context, kind models.RecordKind, id string) error {
	rec, err := recordRef(kind, id)
	if err != nil {
		return err
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.store.Delete(ctx, rec); err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	slog.Info("Record deleted", "kind", kind, "id", id)
	l.emit(ctx, Change{Action: ActionDeleted, Kind: kind, ID: id, At: l.now()})
	return nil
}

// recordRef builds a record carrying only kind and ID.
func recordRef(kind models.RecordKind, id string) (models.Record, error) {
	if id == "" {
		return models.Record{}, fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	var rec models.Record
	switch kind {
	case models.KindMember:
		rec = models.MemberRecord(models.Member{ID: id})
	case models.KindBill:
		rec = models.BillRecord(models.Bill{ID: id})
	case models.KindPayment:
		rec = models.PaymentRecord(models.Payment{ID: id})
	case models.KindMealEntry:
		rec = models.MealEntryRecord(models.MealEntry{ID: id})
	default:
		return models.Record{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, kind)
	}
	return rec, nil
}

// Observe registers an observer on a running ledger.
func (l *Ledger) Observe(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, o)
}

func (l *Ledger) emit(ctx context.Context, c Change) {
	l.obsMu.Lock()
	observers := append([]Observer(nil), l.observers...)
	l.obsMu.Unlock()

	for _, o := range observers {
		o.RecordChanged(ctx, c)
	}
}

// Settlement computes the house report for the meal period p.
// filter narrows bills and payments; nil keeps them all.
func (l *Ledger) Settlement(p period.Period, filter *period.Period) calculator.Report {
	return l.Snapshot().Input(filter).Report(p)
}

// MemberMetrics computes one member's settlement for p.
func (l *Ledger) MemberMetrics(memberID string, p period.Period, filter *period.Period) (calculator.MemberMetrics, bool) {
	return l.Snapshot().Input(filter).Metrics(memberID, p)
}

// MealCount returns a member's meal count on date.
func (l *Ledger) MealCount(memberID, date string) int {
	return l.Snapshot().Input(nil).MealCountForDate(memberID, date)
}
