// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
// It is the "local" record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	storage.Notifier
	db *sql.DB

	// writeMu orders each write with its reload, so subscribers see
	// collections in commit order.
	writeMu sync.Mutex
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// dsn enables WAL and waits on locks instead of failing with SQLITE_BUSY.
func dsn(dbPath string) string {
	return dbPath + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=synchronous(normal)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every record, members first, each kind in creation order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Record, error) {
	var records []models.Record

	members, err := s.listMembers(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		records = append(records, models.MemberRecord(m))
	}

	bills, err := s.listBills(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bills {
		records = append(records, models.BillRecord(b))
	}

	payments, err := s.listPayments(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		records = append(records, models.PaymentRecord(p))
	}

	entries, err := s.listMealEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		records = append(records, models.MealEntryRecord(e))
	}

	return records, nil
}

// Create persists a new record and notifies subscribers.
func (s *SQLiteStore) Create(ctx context.Context, rec *models.Record) error {
	if err := rec.Check(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var err error
	switch rec.Kind {
	case models.KindMember:
		err = s.createMember(ctx, rec.Member)
	case models.KindBill:
		err = s.createBill(ctx, rec.Bill)
	case models.KindPayment:
		err = s.createPayment(ctx, rec.Payment)
	case models.KindMealEntry:
		err = s.upsertMealEntry(ctx, rec.MealEntry)
	}
	if err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// Delete removes a record by kind and ID and notifies subscribers.
func (s *SQLiteStore) Delete(ctx context.Context, rec models.Record) error {
	table, ok := tables[rec.Kind]
	if !ok {
		return fmt.Errorf("unknown record kind %q", rec.Kind)
	}
	id := rec.ID()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", rec.Kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", rec.Kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, rec.Kind, id)
	}

	s.notify(ctx)
	return nil
}

// tables maps record kinds to their table. Values are constants, never user input.
var tables = map[models.RecordKind]string{
	models.KindMember:    "members",
	models.KindBill:      "bills",
	models.KindPayment:   "payments",
	models.KindMealEntry: "meal_entries",
}

// notify reloads the full collection for subscribers.
// A failed reload is logged; the mutation itself already succeeded.
func (s *SQLiteStore) notify(ctx context.Context) {
	if s.Subscribers() == 0 {
		return
	}
	records, err := s.Load(ctx)
	if err != nil {
		slog.Warn("Failed to reload records for subscribers", "error", err)
		return
	}
	s.Notify(records)
}
