package event

import (
	"time"

	"github.com/louisbranch/studyhall/internal/study/domain"
)

// QuestionAnsweredPayload carries an answered practice question.
type QuestionAnsweredPayload struct {
	Domain  string `json:"domain"`
	Correct bool   `json:"correct"`
}

// SessionStartedPayload carries the domain of a new study session.
type SessionStartedPayload struct {
	Domain string `json:"domain"`
}

// SettingsUpdatedPayload carries a partial settings update.
type SettingsUpdatedPayload struct {
	Patch domain.SettingsPatch `json:"patch"`
}

// BadgeAwardedPayload carries a direct badge award.
type BadgeAwardedPayload struct {
	Name string `json:"name"`
}

// UserRenamedPayload carries a display-name change.
type UserRenamedPayload struct {
	Name string `json:"name"`
}

// ProgressLoadedPayload carries a validated persisted snapshot.
type ProgressLoadedPayload struct {
	Snapshot domain.Snapshot `json:"snapshot"`
}

// LoadingSetPayload toggles the transient loading flag.
type LoadingSetPayload struct {
	Loading bool `json:"loading"`
}

// ErrorSetPayload carries the transient error message.
type ErrorSetPayload struct {
	Message string `json:"message"`
}

// Constructors keep dispatch call sites terse and make sure the payload
// field always matches the event type.

// QuestionAnswered builds a study.question_answered event.
func QuestionAnswered(at time.Time, domainID string, correct bool) Event {
	return Event{
		Type:             TypeQuestionAnswered,
		Timestamp:        at,
		QuestionAnswered: &QuestionAnsweredPayload{Domain: domainID, Correct: correct},
	}
}

// SessionStarted builds a study.session_started event.
func SessionStarted(at time.Time, domainID string) Event {
	return Event{
		Type:           TypeSessionStarted,
		Timestamp:      at,
		SessionStarted: &SessionStartedPayload{Domain: domainID},
	}
}

// SessionEnded builds a study.session_ended event.
func SessionEnded(at time.Time) Event {
	return Event{Type: TypeSessionEnded, Timestamp: at}
}

// SettingsUpdated builds a settings.updated event.
func SettingsUpdated(at time.Time, patch domain.SettingsPatch) Event {
	return Event{
		Type:            TypeSettingsUpdated,
		Timestamp:       at,
		SettingsUpdated: &SettingsUpdatedPayload{Patch: patch},
	}
}

// BadgeAwarded builds a badge.awarded event.
func BadgeAwarded(at time.Time, name string) Event {
	return Event{
		Type:         TypeBadgeAwarded,
		Timestamp:    at,
		BadgeAwarded: &BadgeAwardedPayload{Name: name},
	}
}

// UserRenamed builds a user.renamed event.
func UserRenamed(at time.Time, name string) Event {
	return Event{
		Type:        TypeUserRenamed,
		Timestamp:   at,
		UserRenamed: &UserRenamedPayload{Name: name},
	}
}

// ProgressReset builds a progress.reset event.
func ProgressReset(at time.Time) Event {
	return Event{Type: TypeProgressReset, Timestamp: at}
}

// ProgressLoaded builds a progress.loaded event.
func ProgressLoaded(at time.Time, snapshot domain.Snapshot) Event {
	return Event{
		Type:           TypeProgressLoaded,
		Timestamp:      at,
		ProgressLoaded: &ProgressLoadedPayload{Snapshot: snapshot},
	}
}

// LoadingSet builds a status.loading_set event.
func LoadingSet(at time.Time, loading bool) Event {
	return Event{
		Type:       TypeLoadingSet,
		Timestamp:  at,
		LoadingSet: &LoadingSetPayload{Loading: loading},
	}
}

// ErrorSet builds a status.error_set event.
func ErrorSet(at time.Time, message string) Event {
	return Event{
		Type:      TypeErrorSet,
		Timestamp: at,
		ErrorSet:  &ErrorSetPayload{Message: message},
	}
}

// ErrorCleared builds a status.error_cleared event.
func ErrorCleared(at time.Time) Event {
	return Event{Type: TypeErrorCleared, Timestamp: at}
}
