// Package telemetry records operational events from the study engine.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/studyhall/internal/storage"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Operational event names emitted by the study service.
const (
	EventSnapshotLoaded     = "snapshot.loaded"
	EventSnapshotLoadFailed = "snapshot.load_failed"
	EventSnapshotSaveFailed = "snapshot.save_failed"
	EventSnapshotInvalid    = "snapshot.invalid_payload"
	EventProgressReset      = "progress.reset"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil, so callers never need to guard.
func (e *Emitter) Emit(ctx context.Context, severity Severity, name, detail string) error {
	if e == nil || e.store == nil {
		return nil
	}
	now := time.Now
	if e.clock != nil {
		now = e.clock
	}
	return e.store.AppendTelemetryEvent(ctx, storage.TelemetryEvent{
		Timestamp: now().UTC(),
		Severity:  string(severity),
		Name:      name,
		Detail:    detail,
	})
}
