// Package engine implements the pure transition function that applies study
// events to progress snapshots.
package engine

import (
	"strings"

	apperrors "github.com/louisbranch/studyhall/internal/platform/errors"
	"github.com/louisbranch/studyhall/internal/study/domain"
	"github.com/louisbranch/studyhall/internal/study/event"
)

// transitionFaultMessage is the generic user-facing message for unexpected
// faults recovered at the Apply boundary.
const transitionFaultMessage = "An error occurred while updating your progress. Please try again."

var (
	// ErrUnknownDomain indicates an answer for a domain the snapshot does not track.
	ErrUnknownDomain = apperrors.New(apperrors.CodeStudyUnknownDomain, "unknown study domain")
	// ErrEmptyDomain indicates an answer or session with no domain identifier.
	ErrEmptyDomain = apperrors.New(apperrors.CodeStudyEmptyDomain, "study domain is required")
)

// Engine computes snapshot transitions. It holds only immutable reference
// data; all mutable state lives in the snapshots it is handed.
type Engine struct {
	catalog domain.Catalog
}

// New creates an engine over the given domain catalog. A nil catalog falls
// back to the default exam domains.
func New(catalog domain.Catalog) *Engine {
	if catalog == nil {
		catalog = domain.DefaultCatalog()
	}
	return &Engine{catalog: catalog}
}

// Catalog returns the reference data the engine was built with.
func (e *Engine) Catalog() domain.Catalog {
	return e.catalog
}

// InitialSnapshot returns the default snapshot for the engine's catalog.
func (e *Engine) InitialSnapshot() domain.Snapshot {
	return domain.NewSnapshot(e.catalog)
}

// Apply computes the next snapshot from the current one and an event.
// It is pure, deterministic, and total: unexpected faults are recovered and
// converted into a snapshot carrying a transient error instead of a panic.
// Every successful transition clears the error flag; only the status events
// manage it explicitly.
func (e *Engine) Apply(snap domain.Snapshot, evt event.Event) (out domain.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			out = snap.Clone()
			out.Error = transitionFaultMessage
			out.IsLoading = false
		}
	}()

	switch evt.Type {
	case event.TypeQuestionAnswered:
		return e.applyQuestionAnswered(snap, evt)
	case event.TypeSessionStarted:
		return e.applySessionStarted(snap, evt)
	case event.TypeSessionEnded:
		return e.applySessionEnded(snap)
	case event.TypeSettingsUpdated:
		return e.applySettingsUpdated(snap, evt)
	case event.TypeBadgeAwarded:
		return e.applyBadgeAwarded(snap, evt)
	case event.TypeUserRenamed:
		return e.applyUserRenamed(snap, evt)
	case event.TypeProgressReset:
		return e.applyProgressReset(snap)
	case event.TypeProgressLoaded:
		return e.applyProgressLoaded(snap, evt)
	case event.TypeLoadingSet:
		return e.applyLoadingSet(snap, evt)
	case event.TypeErrorSet:
		return e.applyErrorSet(snap, evt)
	case event.TypeErrorCleared:
		return e.applyErrorCleared(snap)
	default:
		return snap
	}
}

func (e *Engine) applyQuestionAnswered(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	payload := evt.QuestionAnswered
	if payload == nil || strings.TrimSpace(payload.Domain) == "" {
		return fail(snap, ErrEmptyDomain)
	}
	if !snap.HasDomain(payload.Domain) {
		return fail(snap, apperrors.WithMetadata(
			apperrors.CodeStudyUnknownDomain,
			"unknown study domain: "+payload.Domain,
			map[string]string{"Domain": payload.Domain},
		))
	}

	next := snap.Clone()

	oldLevel := next.User.Level
	next.User.Points += pointsFor(payload.Correct)
	next.User.Level = domain.LevelForPoints(next.User.Points)

	// Level badge first, then points milestone; both may fire on one answer.
	if next.User.Level > oldLevel {
		next.User, _, _ = domain.AwardBadge(next.User, domain.LevelBadgeName(next.User.Level))
	}
	if next.User.Points > 0 && next.User.Points%domain.PointsMilestoneInterval == 0 {
		next.User, _, _ = domain.AwardBadge(next.User, domain.PointsMilestoneBadgeName(next.User.Points))
	}

	next.Progress[payload.Domain] = domain.ApplyAnswer(next.Progress[payload.Domain], payload.Correct)

	// Session counters credit any answer while a session is active, even
	// when the answered domain differs from the session domain.
	if next.CurrentSession.Active() {
		next.CurrentSession = next.CurrentSession.RecordAnswer(payload.Correct)
	}

	next.Error = ""
	return next
}

func (e *Engine) applySessionStarted(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	payload := evt.SessionStarted
	if payload == nil || strings.TrimSpace(payload.Domain) == "" {
		return fail(snap, apperrors.New(apperrors.CodeSessionEmptyDomain, "session domain is required"))
	}

	// A prior unfinished session is discarded without committing its
	// partial counters; only session_ended has streak effects.
	next := snap.Clone()
	next.CurrentSession = domain.NewSession(payload.Domain, evt.Timestamp)
	next.Error = ""
	return next
}

func (e *Engine) applySessionEnded(snap domain.Snapshot) domain.Snapshot {
	next := snap.Clone()

	if next.CurrentSession.Qualifying() {
		next.User.Streak++
		if next.User.Streak%domain.StreakBadgeInterval == 0 {
			next.User, _, _ = domain.AwardBadge(next.User, domain.StreakBadgeName(next.User.Streak))
		}
	}

	next.CurrentSession = domain.Session{}
	next.Error = ""
	return next
}

func (e *Engine) applySettingsUpdated(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	next := snap.Clone()
	if evt.SettingsUpdated != nil {
		next.Settings = domain.Merge(next.Settings, evt.SettingsUpdated.Patch)
	}
	next.Error = ""
	return next
}

func (e *Engine) applyBadgeAwarded(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	if evt.BadgeAwarded == nil {
		return fail(snap, domain.ErrEmptyBadgeName)
	}

	next := snap.Clone()
	user, _, err := domain.AwardBadge(next.User, evt.BadgeAwarded.Name)
	if err != nil {
		return fail(snap, err)
	}
	next.User = user
	next.Error = ""
	return next
}

func (e *Engine) applyUserRenamed(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	if evt.UserRenamed == nil {
		return fail(snap, domain.ErrEmptyUserName)
	}

	next := snap.Clone()
	user, err := domain.Rename(next.User, evt.UserRenamed.Name)
	if err != nil {
		return fail(snap, err)
	}
	next.User = user
	next.Error = ""
	return next
}

func (e *Engine) applyProgressReset(snap domain.Snapshot) domain.Snapshot {
	next := e.InitialSnapshot()
	next.User.Name = snap.User.Name
	return next
}

func (e *Engine) applyProgressLoaded(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	if evt.ProgressLoaded == nil {
		return fail(snap, apperrors.New(apperrors.CodeSnapshotInvalidPayload, "loaded snapshot is missing"))
	}

	next := evt.ProgressLoaded.Snapshot.Clone()
	next.IsLoading = false
	next.Error = ""
	return next
}

func (e *Engine) applyLoadingSet(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	next := snap.Clone()
	if evt.LoadingSet != nil {
		next.IsLoading = evt.LoadingSet.Loading
	}
	return next
}

func (e *Engine) applyErrorSet(snap domain.Snapshot, evt event.Event) domain.Snapshot {
	next := snap.Clone()
	next.Error = ""
	if evt.ErrorSet != nil {
		next.Error = evt.ErrorSet.Message
	}
	next.IsLoading = false
	return next
}

func (e *Engine) applyErrorCleared(snap domain.Snapshot) domain.Snapshot {
	next := snap.Clone()
	next.Error = ""
	return next
}

func pointsFor(correct bool) int {
	if correct {
		return domain.PointsPerCorrectAnswer
	}
	return 0
}

func fail(snap domain.Snapshot, err error) domain.Snapshot {
	next := snap.Clone()
	next.Error = apperrors.UserMessage(err, apperrors.DefaultLocale)
	next.IsLoading = false
	return next
}
