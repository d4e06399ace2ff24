package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/studyhall/internal/storage"
	"github.com/louisbranch/studyhall/internal/storage/memory"
)

func TestEmitRecordsEvent(t *testing.T) {
	store := memory.New()
	emitter := NewEmitter(store)
	emitter.clock = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	if err := emitter.Emit(context.Background(), SeverityWarn, EventSnapshotSaveFailed, "disk full"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	events := store.TelemetryEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := storage.TelemetryEvent{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Severity:  "WARN",
		Name:      EventSnapshotSaveFailed,
		Detail:    "disk full",
	}
	if events[0] != want {
		t.Fatalf("expected %+v, got %+v", want, events[0])
	}
}

func TestEmitNilEmitterIsNoop(t *testing.T) {
	var emitter *Emitter
	if err := emitter.Emit(context.Background(), SeverityInfo, EventSnapshotLoaded, ""); err != nil {
		t.Fatalf("expected nil emitter to be a no-op, got %v", err)
	}
}

func TestEmitNilStoreIsNoop(t *testing.T) {
	emitter := NewEmitter(nil)
	if err := emitter.Emit(context.Background(), SeverityInfo, EventSnapshotLoaded, ""); err != nil {
		t.Fatalf("expected nil store to be a no-op, got %v", err)
	}
}
