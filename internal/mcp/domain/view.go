package domain

import (
	"time"

	"github.com/louisbranch/studyhall/internal/study/domain"
)

// zeroTime defers event timestamping to the service clock.
var zeroTime time.Time

// UserView is the tool-facing projection of the learner profile.
type UserView struct {
	Name   string   `json:"name" jsonschema:"learner display name"`
	Level  int      `json:"level" jsonschema:"current level"`
	Points int      `json:"points" jsonschema:"total points earned"`
	Streak int      `json:"streak" jsonschema:"current study streak in days"`
	Badges []string `json:"badges" jsonschema:"earned badges in award order"`
}

// DomainProgressView is the tool-facing projection of one exam domain.
type DomainProgressView struct {
	Completed int     `json:"completed" jsonschema:"questions answered"`
	Total     int     `json:"total" jsonschema:"question bank size"`
	Accuracy  float64 `json:"accuracy" jsonschema:"running accuracy percentage"`
}

// SettingsView is the tool-facing projection of the study settings.
type SettingsView struct {
	StudyHoursPerWeek float64 `json:"study_hours_per_week" jsonschema:"planned weekly study hours"`
	TargetDate        string  `json:"target_date,omitempty" jsonschema:"target exam date (YYYY-MM-DD), empty when unset"`
	LearningStyle     string  `json:"learning_style" jsonschema:"preferred learning style"`
}

// SessionView is the tool-facing projection of the active study session.
type SessionView struct {
	Domain            string `json:"domain,omitempty" jsonschema:"domain the session targets"`
	QuestionsAnswered int    `json:"questions_answered" jsonschema:"questions answered this session"`
	CorrectAnswers    int    `json:"correct_answers" jsonschema:"correct answers this session"`
	StartedAt         string `json:"started_at,omitempty" jsonschema:"RFC3339 timestamp when the session started"`
	Active            bool   `json:"active" jsonschema:"whether a session is in progress"`
}

// SnapshotView is the complete tool-facing projection of the progress state.
type SnapshotView struct {
	User           UserView                      `json:"user"`
	Progress       map[string]DomainProgressView `json:"progress"`
	Settings       SettingsView                  `json:"settings"`
	CurrentSession SessionView                   `json:"current_session"`
	Error          string                        `json:"error,omitempty" jsonschema:"transient error message, if any"`
}

func viewUser(user domain.UserProfile) UserView {
	badges := user.Badges
	if badges == nil {
		badges = []string{}
	}
	return UserView{
		Name:   user.Name,
		Level:  user.Level,
		Points: user.Points,
		Streak: user.Streak,
		Badges: badges,
	}
}

func viewProgress(progress map[string]domain.DomainProgress) map[string]DomainProgressView {
	out := make(map[string]DomainProgressView, len(progress))
	for id, p := range progress {
		out[id] = DomainProgressView{Completed: p.Completed, Total: p.Total, Accuracy: p.Accuracy}
	}
	return out
}

func viewSettings(settings domain.Settings) SettingsView {
	return SettingsView{
		StudyHoursPerWeek: settings.StudyHoursPerWeek,
		TargetDate:        settings.TargetDate,
		LearningStyle:     settings.LearningStyle,
	}
}

func viewSession(session domain.Session) SessionView {
	view := SessionView{
		Domain:            session.Domain,
		QuestionsAnswered: session.QuestionsAnswered,
		CorrectAnswers:    session.CorrectAnswers,
		Active:            session.Active(),
	}
	if session.StartTime != nil {
		view.StartedAt = session.StartTime.UTC().Format(time.RFC3339)
	}
	return view
}

func viewSnapshot(snap domain.Snapshot) SnapshotView {
	return SnapshotView{
		User:           viewUser(snap.User),
		Progress:       viewProgress(snap.Progress),
		Settings:       viewSettings(snap.Settings),
		CurrentSession: viewSession(snap.CurrentSession),
		Error:          snap.Error,
	}
}
