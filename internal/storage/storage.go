// Package storage defines the persistence interfaces for the study engine.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// SnapshotStore persists the serialized progress snapshot as a single blob
// under a fixed key. The whole snapshot is always written and read as one
// atomic payload; there are no partial-field updates.
type SnapshotStore interface {
	// PutSnapshot overwrites the blob stored under key.
	PutSnapshot(ctx context.Context, key string, payload []byte) error
	// GetSnapshot returns the blob stored under key, or ErrNotFound.
	GetSnapshot(ctx context.Context, key string) ([]byte, error)
}

// TelemetryEvent records an operational occurrence worth keeping.
type TelemetryEvent struct {
	Timestamp time.Time
	Severity  string
	Name      string
	Detail    string
}

// TelemetryStore appends operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}
