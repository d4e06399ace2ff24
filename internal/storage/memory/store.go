// Package memory provides an in-memory store for tests and storage-less runs.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/studyhall/internal/storage"
)

// Store keeps snapshot blobs and telemetry events in memory.
// The zero value is not usable; call New.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	telemetry []storage.TelemetryEvent
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{snapshots: map[string][]byte{}}
}

// PutSnapshot overwrites the blob stored under key.
func (s *Store) PutSnapshot(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.snapshots[key] = buf
	return nil
}

// GetSnapshot returns the blob stored under key, or storage.ErrNotFound.
func (s *Store) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.snapshots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return buf, nil
}

// AppendTelemetryEvent records an operational telemetry event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.telemetry = append(s.telemetry, evt)
	return nil
}

// TelemetryEvents returns a copy of the recorded telemetry events.
func (s *Store) TelemetryEvents() []storage.TelemetryEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.TelemetryEvent, len(s.telemetry))
	copy(out, s.telemetry)
	return out
}

var (
	_ storage.SnapshotStore  = (*Store)(nil)
	_ storage.TelemetryStore = (*Store)(nil)
)
