// Package event defines the discrete inputs the transition engine consumes.
package event

import "time"

// Type identifies the type of a study event.
type Type string

// Study events.
const (
	// TypeQuestionAnswered records an answered practice question.
	TypeQuestionAnswered Type = "study.question_answered"
	// TypeSessionStarted records the start of a study session.
	TypeSessionStarted Type = "study.session_started"
	// TypeSessionEnded records the end of a study session.
	TypeSessionEnded Type = "study.session_ended"
)

// Profile events.
const (
	// TypeSettingsUpdated records a partial settings update.
	TypeSettingsUpdated Type = "settings.updated"
	// TypeBadgeAwarded records a direct badge award.
	TypeBadgeAwarded Type = "badge.awarded"
	// TypeUserRenamed records a user display-name change.
	TypeUserRenamed Type = "user.renamed"
)

// Lifecycle events.
const (
	// TypeProgressReset records a full reset back to the default snapshot.
	TypeProgressReset Type = "progress.reset"
	// TypeProgressLoaded records replacement of the snapshot with a
	// validated persisted payload. Issued only by the persistence layer.
	TypeProgressLoaded Type = "progress.loaded"
)

// DomainStatus is the domain prefix shared by the transient status events.
// Status events never change persisted state.
const DomainStatus = "status"

// Status events (transient UI-facing flags).
const (
	// TypeLoadingSet toggles the loading flag.
	TypeLoadingSet Type = "status.loading_set"
	// TypeErrorSet sets the transient error message.
	TypeErrorSet Type = "status.error_set"
	// TypeErrorCleared clears the transient error message.
	TypeErrorCleared Type = "status.error_cleared"
)

// Event is one discrete input to the transition engine. Exactly one payload
// field matching Type is set; the rest are nil.
type Event struct {
	// Type identifies the kind of event.
	Type Type
	// Timestamp is when the event was dispatched. Assigned by the service
	// clock so the engine itself stays deterministic.
	Timestamp time.Time

	QuestionAnswered *QuestionAnsweredPayload
	SessionStarted   *SessionStartedPayload
	SettingsUpdated  *SettingsUpdatedPayload
	BadgeAwarded     *BadgeAwardedPayload
	UserRenamed      *UserRenamedPayload
	ProgressLoaded   *ProgressLoadedPayload
	LoadingSet       *LoadingSetPayload
	ErrorSet         *ErrorSetPayload
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	switch t {
	case TypeQuestionAnswered, TypeSessionStarted, TypeSessionEnded,
		TypeSettingsUpdated, TypeBadgeAwarded, TypeUserRenamed,
		TypeProgressReset, TypeProgressLoaded,
		TypeLoadingSet, TypeErrorSet, TypeErrorCleared:
		return true
	}
	return false
}

// Domain returns the domain prefix of the event type (e.g. "study", "user").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
