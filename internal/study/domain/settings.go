package domain

// Settings holds the learner's study plan preferences.
type Settings struct {
	StudyHoursPerWeek float64 `json:"studyHoursPerWeek"`
	// TargetDate is an ISO date string, or empty when no exam date is set.
	TargetDate    string `json:"targetDate"`
	LearningStyle string `json:"learningStyle"`
}

// SettingsPatch carries a partial settings update. Nil fields are left
// unchanged by Merge.
type SettingsPatch struct {
	StudyHoursPerWeek *float64 `json:"studyHoursPerWeek,omitempty"`
	TargetDate        *string  `json:"targetDate,omitempty"`
	LearningStyle     *string  `json:"learningStyle,omitempty"`
}

// NewSettings returns the default settings for a fresh snapshot.
func NewSettings() Settings {
	return Settings{
		StudyHoursPerWeek: 10,
		TargetDate:        "",
		LearningStyle:     "visual",
	}
}

// Merge shallow-merges the patch into the settings and returns the result.
func Merge(settings Settings, patch SettingsPatch) Settings {
	updated := settings
	if patch.StudyHoursPerWeek != nil {
		updated.StudyHoursPerWeek = *patch.StudyHoursPerWeek
	}
	if patch.TargetDate != nil {
		updated.TargetDate = *patch.TargetDate
	}
	if patch.LearningStyle != nil {
		updated.LearningStyle = *patch.LearningStyle
	}
	return updated
}
