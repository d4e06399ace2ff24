package engine

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/studyhall/internal/study/domain"
	"github.com/louisbranch/studyhall/internal/study/event"
)

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newEngine() *Engine {
	return New(domain.DefaultCatalog())
}

func answer(e *Engine, snap domain.Snapshot, domainID string, correct bool) domain.Snapshot {
	return e.Apply(snap, event.QuestionAnswered(testTime, domainID, correct))
}

func TestAnswerQuestionCorrect(t *testing.T) {
	e := newEngine()
	snap := answer(e, e.InitialSnapshot(), domain.DomainHealthWellness, true)

	if snap.User.Points != 10 {
		t.Fatalf("expected 10 points, got %d", snap.User.Points)
	}
	if snap.User.Level != 1 {
		t.Fatalf("expected level 1, got %d", snap.User.Level)
	}
	progress := snap.Progress[domain.DomainHealthWellness]
	if progress.Completed != 1 {
		t.Fatalf("expected completed 1, got %d", progress.Completed)
	}
	if progress.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %v", progress.Accuracy)
	}
	if snap.Error != "" {
		t.Fatalf("expected clear error, got %q", snap.Error)
	}
}

func TestAnswerQuestionIncorrect(t *testing.T) {
	e := newEngine()
	snap := answer(e, e.InitialSnapshot(), domain.DomainEthicsLegal, false)

	if snap.User.Points != 0 {
		t.Fatalf("expected 0 points, got %d", snap.User.Points)
	}
	progress := snap.Progress[domain.DomainEthicsLegal]
	if progress.Completed != 1 || progress.Accuracy != 0 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestAnswerQuestionPointsMonotonic(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()

	answers := []bool{true, false, true, true, false, false, true}
	wantPoints := 0
	for _, correct := range answers {
		prev := snap.User.Points
		snap = answer(e, snap, domain.DomainCoachingProcess, correct)
		if correct {
			wantPoints += 10
		}
		if snap.User.Points < prev {
			t.Fatalf("points decreased from %d to %d", prev, snap.User.Points)
		}
		if snap.User.Points != wantPoints {
			t.Fatalf("expected %d points, got %d", wantPoints, snap.User.Points)
		}
		if want := snap.User.Points/1000 + 1; snap.User.Level != want {
			t.Fatalf("expected level %d at %d points, got %d", want, snap.User.Points, snap.User.Level)
		}
	}
}

func TestAnswerQuestionLevelUpBadge(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()

	// 100 correct answers reach 1000 points and level 2.
	for i := 0; i < 100; i++ {
		snap = answer(e, snap, domain.DomainCoachingStructure, true)
	}

	if snap.User.Points != 1000 {
		t.Fatalf("expected 1000 points, got %d", snap.User.Points)
	}
	if snap.User.Level != 2 {
		t.Fatalf("expected level 2, got %d", snap.User.Level)
	}
	if !hasBadge(snap.User, "Level 2 Achieved") {
		t.Fatalf("expected level badge, got %v", snap.User.Badges)
	}
	if !hasBadge(snap.User, "1000 Points Milestone") {
		t.Fatalf("expected milestone badge, got %v", snap.User.Badges)
	}
	// Both fired on the same answer: level badge must come first.
	badges := snap.User.Badges
	if badges[len(badges)-2] != "Level 2 Achieved" || badges[len(badges)-1] != "1000 Points Milestone" {
		t.Fatalf("unexpected badge order %v", badges)
	}
}

func TestAnswerQuestionMilestoneBadge(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()

	for i := 0; i < 50; i++ {
		snap = answer(e, snap, domain.DomainCoachingProcess, true)
	}

	if snap.User.Points != 500 {
		t.Fatalf("expected 500 points, got %d", snap.User.Points)
	}
	if !hasBadge(snap.User, "500 Points Milestone") {
		t.Fatalf("expected milestone badge, got %v", snap.User.Badges)
	}
	if hasBadge(snap.User, "Level 2 Achieved") {
		t.Fatalf("did not expect level badge yet, got %v", snap.User.Badges)
	}
}

func TestAnswerQuestionNoDuplicateBadges(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()

	for i := 0; i < 200; i++ {
		snap = answer(e, snap, domain.DomainCoachingProcess, true)
	}

	seen := map[string]bool{}
	for _, badge := range snap.User.Badges {
		if seen[badge] {
			t.Fatalf("duplicate badge %q in %v", badge, snap.User.Badges)
		}
		seen[badge] = true
	}
}

func TestAnswerQuestionAccuracyMean(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()

	// 8 correct out of 10, interleaved.
	answers := []bool{true, true, false, true, true, true, false, true, true, true}
	for _, correct := range answers {
		snap = answer(e, snap, domain.DomainEthicsLegal, correct)
	}

	progress := snap.Progress[domain.DomainEthicsLegal]
	if progress.Completed != 10 {
		t.Fatalf("expected completed 10, got %d", progress.Completed)
	}
	if math.Abs(progress.Accuracy-80) > 1e-9 {
		t.Fatalf("expected accuracy 80, got %v", progress.Accuracy)
	}
}

func TestAnswerQuestionUnknownDomain(t *testing.T) {
	e := newEngine()
	initial := e.InitialSnapshot()

	snap := answer(e, initial, "quantum-coaching", true)
	if snap.Error == "" {
		t.Fatal("expected error for unknown domain")
	}
	if !strings.Contains(snap.Error, "quantum-coaching") {
		t.Fatalf("expected domain in error, got %q", snap.Error)
	}
	if snap.User.Points != 0 {
		t.Fatalf("expected no points on failed transition, got %d", snap.User.Points)
	}
	for id, progress := range snap.Progress {
		if progress.Completed != 0 {
			t.Fatalf("expected no progress mutation on %q, got %+v", id, progress)
		}
	}
}

func TestAnswerQuestionEmptyDomain(t *testing.T) {
	e := newEngine()
	snap := answer(e, e.InitialSnapshot(), "", true)
	if snap.Error == "" {
		t.Fatal("expected error for empty domain")
	}
}

// Answers credit the active session counters even when the answered domain
// differs from the session domain. This mirrors the lenient historical
// behavior: the session tracks effort, not domain fidelity.
func TestAnswerQuestionCreditsSessionAcrossDomains(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, domain.DomainEthicsLegal))

	snap = answer(e, snap, domain.DomainHealthWellness, true)
	snap = answer(e, snap, domain.DomainEthicsLegal, false)

	if snap.CurrentSession.QuestionsAnswered != 2 {
		t.Fatalf("expected 2 session answers, got %d", snap.CurrentSession.QuestionsAnswered)
	}
	if snap.CurrentSession.CorrectAnswers != 1 {
		t.Fatalf("expected 1 session correct, got %d", snap.CurrentSession.CorrectAnswers)
	}
}

func TestAnswerQuestionWithoutSessionLeavesSessionIdle(t *testing.T) {
	e := newEngine()
	snap := answer(e, e.InitialSnapshot(), domain.DomainHealthWellness, true)

	if snap.CurrentSession.Active() {
		t.Fatal("expected idle session")
	}
	if snap.CurrentSession.QuestionsAnswered != 0 {
		t.Fatalf("expected no session counters, got %d", snap.CurrentSession.QuestionsAnswered)
	}
}

func TestSessionStartOverwritesPriorSession(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, domain.DomainEthicsLegal))
	snap = answer(e, snap, domain.DomainEthicsLegal, true)

	// Starting a new session discards the unfinished one without streak effects.
	restart := testTime.Add(time.Hour)
	snap = e.Apply(snap, event.SessionStarted(restart, domain.DomainCoachingProcess))

	if snap.CurrentSession.Domain != domain.DomainCoachingProcess {
		t.Fatalf("expected new session domain, got %q", snap.CurrentSession.Domain)
	}
	if snap.CurrentSession.QuestionsAnswered != 0 {
		t.Fatalf("expected reset counters, got %d", snap.CurrentSession.QuestionsAnswered)
	}
	if !snap.CurrentSession.StartTime.Equal(restart) {
		t.Fatalf("expected start time %v, got %v", restart, snap.CurrentSession.StartTime)
	}
	if snap.User.Streak != 0 {
		t.Fatalf("expected streak untouched, got %d", snap.User.Streak)
	}
}

func TestSessionStartEmptyDomain(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, " "))
	if snap.Error == "" {
		t.Fatal("expected error for empty session domain")
	}
}

func TestSessionEndQualifying(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, domain.DomainEthicsLegal))

	// 8 of 10 correct: 80% >= 70% extends the streak.
	for i := 0; i < 8; i++ {
		snap = answer(e, snap, domain.DomainEthicsLegal, true)
	}
	for i := 0; i < 2; i++ {
		snap = answer(e, snap, domain.DomainEthicsLegal, false)
	}
	snap = e.Apply(snap, event.SessionEnded(testTime))

	if snap.User.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", snap.User.Streak)
	}
	if snap.CurrentSession.Active() {
		t.Fatal("expected session reset to idle")
	}
}

func TestSessionEndBelowThreshold(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, domain.DomainEthicsLegal))

	// 6 of 10 correct: 60% < 70% leaves the streak unchanged, never resets it.
	for i := 0; i < 6; i++ {
		snap = answer(e, snap, domain.DomainEthicsLegal, true)
	}
	for i := 0; i < 4; i++ {
		snap = answer(e, snap, domain.DomainEthicsLegal, false)
	}
	snap = e.Apply(snap, event.SessionEnded(testTime))

	if snap.User.Streak != 0 {
		t.Fatalf("expected streak 0, got %d", snap.User.Streak)
	}
}

func TestSessionEndKeepsExistingStreak(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()
	snap.User.Streak = 3

	snap = e.Apply(snap, event.SessionStarted(testTime, domain.DomainEthicsLegal))
	snap = answer(e, snap, domain.DomainEthicsLegal, false)
	snap = e.Apply(snap, event.SessionEnded(testTime))

	if snap.User.Streak != 3 {
		t.Fatalf("expected streak preserved at 3, got %d", snap.User.Streak)
	}
}

func TestSessionEndEmptySessionNoStreak(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.SessionStarted(testTime, domain.DomainEthicsLegal))
	snap = e.Apply(snap, event.SessionEnded(testTime))

	if snap.User.Streak != 0 {
		t.Fatalf("expected no streak for empty session, got %d", snap.User.Streak)
	}
}

func TestSessionEndStreakBadge(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()
	snap.User.Streak = 6

	snap = e.Apply(snap, event.SessionStarted(testTime, domain.DomainCoachingStructure))
	snap = answer(e, snap, domain.DomainCoachingStructure, true)
	snap = e.Apply(snap, event.SessionEnded(testTime))

	if snap.User.Streak != 7 {
		t.Fatalf("expected streak 7, got %d", snap.User.Streak)
	}
	if !hasBadge(snap.User, "7 Day Streak") {
		t.Fatalf("expected streak badge, got %v", snap.User.Badges)
	}
}

func TestSettingsUpdatedMerges(t *testing.T) {
	e := newEngine()
	hours := 20.0

	snap := e.Apply(e.InitialSnapshot(), event.SettingsUpdated(testTime, domain.SettingsPatch{StudyHoursPerWeek: &hours}))
	if snap.Settings.StudyHoursPerWeek != 20 {
		t.Fatalf("expected 20 hours, got %v", snap.Settings.StudyHoursPerWeek)
	}
	if snap.Settings.LearningStyle != "visual" {
		t.Fatalf("expected untouched learning style, got %q", snap.Settings.LearningStyle)
	}
}

func TestBadgeAwardedIdempotent(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.BadgeAwarded(testTime, "Early Bird"))
	snap = e.Apply(snap, event.BadgeAwarded(testTime, "Early Bird"))

	if len(snap.User.Badges) != 1 {
		t.Fatalf("expected 1 badge, got %v", snap.User.Badges)
	}
}

func TestUserRenamed(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.UserRenamed(testTime, "Jordan"))
	if snap.User.Name != "Jordan" {
		t.Fatalf("expected name Jordan, got %q", snap.User.Name)
	}
}

func TestProgressResetPreservesName(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.UserRenamed(testTime, "Jordan"))
	for i := 0; i < 30; i++ {
		snap = answer(e, snap, domain.DomainHealthWellness, true)
	}

	snap = e.Apply(snap, event.ProgressReset(testTime))

	if snap.User.Name != "Jordan" {
		t.Fatalf("expected preserved name, got %q", snap.User.Name)
	}
	if snap.User.Points != 0 || snap.User.Level != 1 || len(snap.User.Badges) != 0 {
		t.Fatalf("expected reset gamification state, got %+v", snap.User)
	}
	if snap.Progress[domain.DomainHealthWellness].Completed != 0 {
		t.Fatalf("expected reset progress, got %+v", snap.Progress[domain.DomainHealthWellness])
	}
}

func TestProgressLoadedReplacesSnapshot(t *testing.T) {
	e := newEngine()
	loaded := e.InitialSnapshot()
	loaded.User.Points = 250
	loaded.IsLoading = true
	loaded.Error = "stale"

	snap := e.Apply(e.InitialSnapshot(), event.ProgressLoaded(testTime, loaded))

	if snap.User.Points != 250 {
		t.Fatalf("expected loaded points, got %d", snap.User.Points)
	}
	if snap.IsLoading {
		t.Fatal("expected loading cleared after load")
	}
	if snap.Error != "" {
		t.Fatalf("expected error cleared after load, got %q", snap.Error)
	}
}

func TestStatusEvents(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.LoadingSet(testTime, true))
	if !snap.IsLoading {
		t.Fatal("expected loading flag set")
	}

	snap = e.Apply(snap, event.ErrorSet(testTime, "something failed"))
	if snap.Error != "something failed" {
		t.Fatalf("expected error set, got %q", snap.Error)
	}
	if snap.IsLoading {
		t.Fatal("expected error_set to clear loading flag")
	}

	snap = e.Apply(snap, event.ErrorCleared(testTime))
	if snap.Error != "" {
		t.Fatalf("expected error cleared, got %q", snap.Error)
	}
}

func TestLoadingSetLeavesErrorUntouched(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.ErrorSet(testTime, "boom"))
	snap = e.Apply(snap, event.LoadingSet(testTime, false))
	if snap.Error != "boom" {
		t.Fatalf("expected error untouched by loading_set, got %q", snap.Error)
	}
}

func TestSuccessClearsPriorError(t *testing.T) {
	e := newEngine()
	snap := e.Apply(e.InitialSnapshot(), event.ErrorSet(testTime, "boom"))
	snap = answer(e, snap, domain.DomainHealthWellness, true)
	if snap.Error != "" {
		t.Fatalf("expected successful transition to clear error, got %q", snap.Error)
	}
}

func TestUnknownEventTypeIsNoop(t *testing.T) {
	e := newEngine()
	initial := e.InitialSnapshot()
	snap := e.Apply(initial, event.Event{Type: "study.unknown", Timestamp: testTime})
	if snap.User.Points != 0 || snap.User.Name != initial.User.Name || snap.Error != "" {
		t.Fatalf("expected snapshot unchanged, got %+v", snap.User)
	}
}

func TestApplyRecoverFromNilProgress(t *testing.T) {
	e := newEngine()
	snap := e.InitialSnapshot()
	snap.Progress = nil

	// HasDomain on a nil map reports false, so this surfaces as a regular
	// unknown-domain error rather than a panic either way; the fault path
	// is still exercised through the recover boundary on Clone.
	out := e.Apply(snap, event.QuestionAnswered(testTime, domain.DomainEthicsLegal, true))
	if out.Error == "" {
		t.Fatal("expected error-bearing snapshot")
	}
}

func TestApplyIsPure(t *testing.T) {
	e := newEngine()
	initial := e.InitialSnapshot()

	_ = answer(e, initial, domain.DomainHealthWellness, true)

	if initial.User.Points != 0 {
		t.Fatalf("expected input snapshot unmodified, got %d points", initial.User.Points)
	}
	if initial.Progress[domain.DomainHealthWellness].Completed != 0 {
		t.Fatalf("expected input progress unmodified, got %+v", initial.Progress[domain.DomainHealthWellness])
	}
}

func hasBadge(user domain.UserProfile, name string) bool {
	for _, badge := range user.Badges {
		if badge == name {
			return true
		}
	}
	return false
}
