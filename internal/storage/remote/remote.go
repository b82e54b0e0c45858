// Package remote provides a storage.Store backed by a messledger server.
// It is the "remote" record store: every call is a LedgerService RPC.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/messledger/internal/api"
	"github.com/mmynk/messledger/internal/api/apiconnect"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over the LedgerService RPC API.
type Store struct {
	storage.Notifier
	client apiconnect.LedgerServiceClient

	// reloadMu keeps a slower reload from delivering after a newer one.
	reloadMu sync.Mutex

	mu   sync.Mutex
	last []byte // encoded collection last delivered to subscribers
}

// New creates a remote store talking to the server at baseURL.
// A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient connect.HTTPClient, opts ...connect.ClientOption) *Store {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Store{
		client: apiconnect.NewLedgerServiceClient(httpClient, baseURL, opts...),
	}
}

// Close is a no-op; the HTTP client owns its connections.
func (s *Store) Close() error { return nil }

// Load fetches every record from the server.
func (s *Store) Load(ctx context.Context) ([]models.Record, error) {
	resp, err := s.client.ListRecords(ctx, connect.NewRequest(&api.ListRecordsRequest{}))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]models.Record, 0, len(resp.Msg.Records))
	for _, r := range resp.Msg.Records {
		rec, err := r.ToRecord()
		if err != nil {
			slog.Warn("Skipping malformed remote record", "kind", r.Kind, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Create sends rec to the server and copies back the stored form.
func (s *Store) Create(ctx context.Context, rec *models.Record) error {
	if err := rec.Check(); err != nil {
		return err
	}

	resp, err := s.client.CreateRecord(ctx, connect.NewRequest(&api.CreateRecordRequest{
		Record: api.FromRecord(*rec),
	}))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", rec.Kind, err)
	}

	stored, err := resp.Msg.Record.ToRecord()
	if err != nil {
		return fmt.Errorf("server returned malformed %s: %w", rec.Kind, err)
	}
	*rec = stored

	s.notify(ctx)
	return nil
}

// Delete removes rec on the server.
func (s *Store) Delete(ctx context.Context, rec models.Record) error {
	_, err := s.client.DeleteRecord(ctx, connect.NewRequest(&api.DeleteRecordRequest{
		Kind: string(rec.Kind),
		ID:   rec.ID(),
	}))
	if err != nil {
		if connect.CodeOf(err) == connect.CodeNotFound {
			return fmt.Errorf("%s %s: %w", rec.Kind, rec.ID(), storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s: %w", rec.Kind, err)
	}

	s.notify(ctx)
	return nil
}

// Poll reloads the collection every interval and notifies subscribers when it
// differs from the last delivered one. It returns when ctx is done.
func (s *Store) Poll(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("Remote poll failed", "error", err)
			}
		}
	}
}

// Sync loads the collection once and notifies subscribers if it changed.
func (s *Store) Sync(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	s.deliver(records, false)
	return nil
}

// notify reloads after a local mutation and always delivers.
func (s *Store) notify(ctx context.Context) {
	if s.Subscribers() == 0 {
		return
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		slog.Error("Failed to reload records after mutation", "error", err)
		return
	}
	s.deliver(records, true)
}

func (s *Store) deliver(records []models.Record, force bool) {
	encoded, err := json.Marshal(api.FromRecords(records))
	if err != nil {
		slog.Error("Failed to encode records", "error", err)
		return
	}

	s.mu.Lock()
	changed := !bytes.Equal(encoded, s.last)
	s.last = encoded
	s.mu.Unlock()

	if changed || force {
		s.Notify(records)
	}
}
