package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/studyhall/internal/platform/errors"
)

const (
	// PointsPerCorrectAnswer is awarded for each correctly answered question.
	PointsPerCorrectAnswer = 10
	// PointsPerLevel is the point span of a single level.
	PointsPerLevel = 1000
	// PointsMilestoneInterval triggers a milestone badge at each multiple.
	PointsMilestoneInterval = 500
	// StreakBadgeInterval triggers a streak badge at each multiple.
	StreakBadgeInterval = 7
)

var (
	// ErrEmptyUserName indicates a rename with an empty name.
	ErrEmptyUserName = apperrors.New(apperrors.CodeUserEmptyName, "user name cannot be empty")
	// ErrEmptyBadgeName indicates a badge award with an empty name.
	ErrEmptyBadgeName = apperrors.New(apperrors.CodeBadgeEmptyName, "badge name cannot be empty")
)

// UserProfile represents the learner's gamification state.
type UserProfile struct {
	Name   string   `json:"name"`
	Level  int      `json:"level"`
	Points int      `json:"points"`
	Streak int      `json:"streak"`
	Badges []string `json:"badges"`
}

// NewUserProfile returns the default profile for a fresh snapshot.
func NewUserProfile() UserProfile {
	return UserProfile{
		Name:   "Student",
		Level:  1,
		Points: 0,
		Streak: 0,
		Badges: []string{},
	}
}

// LevelForPoints derives the level for a point total.
func LevelForPoints(points int) int {
	return points/PointsPerLevel + 1
}

// LevelBadgeName formats the badge awarded when a new level is reached.
func LevelBadgeName(level int) string {
	return fmt.Sprintf("Level %d Achieved", level)
}

// PointsMilestoneBadgeName formats the badge awarded at point milestones.
func PointsMilestoneBadgeName(points int) string {
	return fmt.Sprintf("%d Points Milestone", points)
}

// StreakBadgeName formats the badge awarded at streak milestones.
func StreakBadgeName(streak int) string {
	return fmt.Sprintf("%d Day Streak", streak)
}

// AwardBadge appends a badge unless it is already present. Badges are
// insertion-ordered and never removed. The boolean reports whether the
// badge was newly awarded.
func AwardBadge(user UserProfile, name string) (UserProfile, bool, error) {
	if strings.TrimSpace(name) == "" {
		return UserProfile{}, false, ErrEmptyBadgeName
	}
	for _, badge := range user.Badges {
		if badge == name {
			return user, false, nil
		}
	}
	updated := user
	updated.Badges = append(append([]string{}, user.Badges...), name)
	return updated, true, nil
}

// Rename overwrites the user's display name.
func Rename(user UserProfile, name string) (UserProfile, error) {
	if strings.TrimSpace(name) == "" {
		return UserProfile{}, ErrEmptyUserName
	}
	updated := user
	updated.Name = name
	return updated, nil
}

// CloneUserProfile returns a deep copy of the profile.
func CloneUserProfile(user UserProfile) UserProfile {
	clone := user
	clone.Badges = append([]string{}, user.Badges...)
	return clone
}
