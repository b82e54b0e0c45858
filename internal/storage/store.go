// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/messledger/internal/models"
)

// ErrNotFound is returned when a record to delete does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the record store the ledger runs on.
// This abstraction allows swapping storage backends (local SQLite, a remote
// ledger server) without changing the ledger or service layer.
//
// A nil error from a mutation is the store's "ok" signal.
type Store interface {
	// Load returns every record currently held, members first.
	Load(ctx context.Context) ([]models.Record, error)

	// Create persists a new record. The record ID is populated by the store
	// when empty. A meal entry for an existing (member, day) slot replaces the
	// stored count and takes over the existing ID.
	Create(ctx context.Context, rec *models.Record) error

	// Delete removes the record with the kind and ID of rec.
	// Returns ErrNotFound if no such record exists.
	Delete(ctx context.Context, rec models.Record) error

	// Subscribe registers fn to receive the full record collection after every
	// successful mutation. The returned function cancels the subscription.
	Subscribe(fn func([]models.Record)) (cancel func())

	// Close releases any resources held by the store.
	Close() error
}
