// Package service serializes study events through a single writer and keeps
// the resulting snapshot durable in a key-value store.
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/studyhall/internal/storage"
	"github.com/louisbranch/studyhall/internal/study/domain"
	"github.com/louisbranch/studyhall/internal/study/engine"
	"github.com/louisbranch/studyhall/internal/study/event"
	"github.com/louisbranch/studyhall/internal/telemetry"
)

const (
	loadErrorMessage = "Failed to load your saved progress. Starting with a fresh session."
	saveErrorMessage = "Failed to save your progress. Your session data may not persist."

	// Transient errors clear themselves after this long unless a newer
	// error or an explicit clear supersedes them.
	defaultErrorClearDelay = 5 * time.Second
)

// Service owns the authoritative snapshot. All transitions funnel through
// Dispatch, which applies them one at a time under a single lock, so
// concurrent callers never observe or produce interleaved state.
type Service struct {
	engine  *engine.Engine
	store   storage.SnapshotStore
	emitter *telemetry.Emitter
	tracer  trace.Tracer

	clock           func() time.Time
	errorClearDelay time.Duration

	mu          sync.Mutex
	snap        domain.Snapshot
	initialized bool
	errTimer    *time.Timer
	errGen      uint64

	saves sync.WaitGroup
}

// New creates a service over the given engine and snapshot store. The store
// may be nil, in which case state is held in memory only and nothing
// persists. The emitter may be nil to disable operational telemetry.
func New(eng *engine.Engine, store storage.SnapshotStore, emitter *telemetry.Emitter) *Service {
	if eng == nil {
		eng = engine.New(nil)
	}
	return &Service{
		engine:          eng,
		store:           store,
		emitter:         emitter,
		tracer:          otel.Tracer("github.com/louisbranch/studyhall/internal/study/service"),
		clock:           time.Now,
		errorClearDelay: defaultErrorClearDelay,
		snap:            eng.InitialSnapshot(),
	}
}

// Init runs the startup protocol: raise the loading flag, fetch the
// persisted snapshot, validate it, and either install it or fall back to
// defaults. Absence of a stored snapshot is a normal first run, not an
// error. Faults surface as a transient error message but never prevent the
// service from becoming usable. Init always returns a ready service.
func (s *Service) Init(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "study.init")
	defer span.End()

	s.applyEvent(event.LoadingSet(s.clock(), true))

	defer func() {
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
	}()

	if s.store == nil {
		s.applyEvent(event.LoadingSet(s.clock(), false))
		return
	}

	payload, err := s.store.GetSnapshot(ctx, SnapshotKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.applyEvent(event.LoadingSet(s.clock(), false))
		return
	}
	if err != nil {
		log.Printf("load snapshot: %v", err)
		s.emitter.Emit(ctx, telemetry.SeverityError, telemetry.EventSnapshotLoadFailed, err.Error())
		s.applyEvent(event.ErrorSet(s.clock(), loadErrorMessage))
		return
	}

	snap, err := DecodeSnapshot(payload, s.engine.Catalog())
	if errors.Is(err, ErrPayloadInvalid) {
		// Structurally invalid data is dropped quietly; the learner starts
		// fresh without an error banner.
		log.Printf("load snapshot: %v", err)
		s.emitter.Emit(ctx, telemetry.SeverityWarn, telemetry.EventSnapshotInvalid, err.Error())
		s.applyEvent(event.LoadingSet(s.clock(), false))
		return
	}
	if err != nil {
		log.Printf("load snapshot: %v", err)
		s.emitter.Emit(ctx, telemetry.SeverityError, telemetry.EventSnapshotLoadFailed, err.Error())
		s.applyEvent(event.ErrorSet(s.clock(), loadErrorMessage))
		return
	}

	s.applyEvent(event.ProgressLoaded(s.clock(), snap))
	s.emitter.Emit(ctx, telemetry.SeverityInfo, telemetry.EventSnapshotLoaded, "")
}

// Dispatch stamps the event with the service clock, applies it, and
// schedules an asynchronous save of the resulting snapshot. Saves are
// fire-and-forget with last-write-wins semantics; a failed save sets a
// transient error but never rolls the snapshot back.
func (s *Service) Dispatch(ctx context.Context, evt event.Event) domain.Snapshot {
	ctx, span := s.tracer.Start(ctx, "study.dispatch", trace.WithAttributes(
		attribute.String("study.event_type", string(evt.Type)),
	))
	defer span.End()

	if evt.Timestamp.IsZero() {
		evt.Timestamp = s.clock()
	}

	snap, persist := s.applyEvent(evt)
	if persist {
		s.saves.Add(1)
		go func() {
			defer s.saves.Done()
			s.save(context.WithoutCancel(ctx), snap)
		}()
	}
	if evt.Type == event.TypeProgressReset {
		s.emitter.Emit(ctx, telemetry.SeverityInfo, telemetry.EventProgressReset, "")
	}
	return snap
}

// applyEvent runs one transition under the lock and reports whether the
// resulting snapshot should be persisted. Status events only touch the
// transient flags, which are never stored, so they skip the save; that also
// keeps a failing save from re-saving when it reports its own error.
func (s *Service) applyEvent(evt event.Event) (domain.Snapshot, bool) {
	s.mu.Lock()
	prevError := s.snap.Error
	s.snap = s.engine.Apply(s.snap, evt)
	snap := s.snap.Clone()
	persist := s.initialized && !snap.IsLoading && evt.Type.Domain() != event.DomainStatus
	s.mu.Unlock()

	s.rescheduleErrorClear(prevError, snap.Error)
	return snap, persist
}

// rescheduleErrorClear manages the auto-clear timer. A newly raised error
// arms a fresh timer; clearing the error, or replacing it with a different
// one, cancels whatever timer was pending.
func (s *Service) rescheduleErrorClear(prevError, newError string) {
	if newError == prevError {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errTimer != nil {
		s.errTimer.Stop()
		s.errTimer = nil
	}
	if newError == "" {
		return
	}

	s.errGen++
	gen := s.errGen
	s.errTimer = time.AfterFunc(s.errorClearDelay, func() {
		s.clearError(gen)
	})
}

func (s *Service) clearError(gen uint64) {
	s.mu.Lock()
	if s.errGen != gen || s.snap.Error == "" {
		s.mu.Unlock()
		return
	}
	s.snap = s.engine.Apply(s.snap, event.ErrorCleared(s.clock()))
	s.errTimer = nil
	s.mu.Unlock()
}

func (s *Service) save(ctx context.Context, snap domain.Snapshot) {
	if s.store == nil {
		return
	}
	payload, err := EncodeSnapshot(snap)
	if err == nil {
		err = s.store.PutSnapshot(ctx, SnapshotKey, payload)
	}
	if err == nil {
		return
	}

	log.Printf("save snapshot: %v", err)
	s.emitter.Emit(ctx, telemetry.SeverityError, telemetry.EventSnapshotSaveFailed, err.Error())
	s.applyEvent(event.ErrorSet(s.clock(), saveErrorMessage))
}

// Snapshot returns a deep copy of the current state. Callers may mutate the
// result freely without affecting the service.
func (s *Service) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Close cancels any pending error timer and waits for in-flight saves to
// finish. The service must not be dispatched to after Close.
func (s *Service) Close() {
	s.mu.Lock()
	if s.errTimer != nil {
		s.errTimer.Stop()
		s.errTimer = nil
	}
	s.mu.Unlock()

	s.saves.Wait()
}
