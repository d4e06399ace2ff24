package domain

import "time"

// SessionPassingAccuracy is the session accuracy threshold, in percent,
// required to extend the streak.
const SessionPassingAccuracy = 70.0

// Session is the ephemeral state of the active study session. The zero
// value is the idle session.
type Session struct {
	Domain            string     `json:"domain"`
	QuestionsAnswered int        `json:"questionsAnswered"`
	CorrectAnswers    int        `json:"correctAnswers"`
	StartTime         *time.Time `json:"startTime"`
}

// NewSession starts a session for a domain at the given time.
func NewSession(domainID string, start time.Time) Session {
	return Session{
		Domain:            domainID,
		QuestionsAnswered: 0,
		CorrectAnswers:    0,
		StartTime:         &start,
	}
}

// Active reports whether a session is in progress.
func (s Session) Active() bool {
	return s.StartTime != nil
}

// Accuracy returns the session accuracy percentage. A session with no
// answered questions scores zero.
func (s Session) Accuracy() float64 {
	if s.QuestionsAnswered <= 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered) * 100
}

// Qualifying reports whether ending the session now would extend the streak.
func (s Session) Qualifying() bool {
	return s.Accuracy() >= SessionPassingAccuracy
}

// RecordAnswer credits one answered question to the session counters.
// The domain of the answer is deliberately not cross-checked against the
// session domain; any answer given while a session is active counts.
func (s Session) RecordAnswer(correct bool) Session {
	updated := s
	updated.QuestionsAnswered++
	if correct {
		updated.CorrectAnswers++
	}
	return updated
}
