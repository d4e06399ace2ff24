// Package insights derives read-only study recommendations from progress
// snapshots. Nothing here mutates state; the dashboard reads these values
// after each transition.
package insights

import (
	"math"
	"time"

	"github.com/louisbranch/studyhall/internal/study/domain"
)

// defaultPlanningWeeks is the planning horizon used when no target exam
// date is configured.
const defaultPlanningWeeks = 12

// OverallProgress returns the percentage of the combined question banks
// answered so far, in [0, 100] for normal progress.
func OverallProgress(progress map[string]domain.DomainProgress) float64 {
	var total, completed int
	for _, p := range progress {
		total += p.Total
		completed += p.Completed
	}
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// OverallAccuracy returns the mean accuracy across domains with at least one
// answered question. Untouched domains do not drag the average down.
func OverallAccuracy(progress map[string]domain.DomainProgress) float64 {
	var sum float64
	var count int
	for _, p := range progress {
		if p.Completed > 0 {
			sum += p.Accuracy
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// WeakestDomain returns the identifier of the started domain with the lowest
// accuracy. The boolean is false when no domain has been started yet.
// Ties break toward the lexically smallest identifier so the result is
// deterministic across map iteration orders.
func WeakestDomain(progress map[string]domain.DomainProgress) (string, bool) {
	weakest := ""
	lowest := math.Inf(1)
	for id, p := range progress {
		if p.Completed == 0 {
			continue
		}
		if p.Accuracy < lowest || (p.Accuracy == lowest && id < weakest) {
			weakest = id
			lowest = p.Accuracy
		}
	}
	return weakest, weakest != ""
}

// RecommendedStudyHours estimates the total study hours still needed to
// cover the remaining material before the target date. Without a target
// date a default planning horizon applies.
func RecommendedStudyHours(settings domain.Settings, progress map[string]domain.DomainProgress, now time.Time) int {
	remainingShare := (100 - OverallProgress(progress)) / 100
	if remainingShare < 0 {
		remainingShare = 0
	}

	weeks := float64(defaultPlanningWeeks)
	if settings.TargetDate != "" {
		if target, err := time.Parse("2006-01-02", settings.TargetDate); err == nil {
			weeks = math.Ceil(target.Sub(now).Hours() / (7 * 24))
			if weeks < 1 {
				weeks = 1
			}
		}
	}

	return int(math.Ceil(remainingShare * settings.StudyHoursPerWeek * weeks))
}
