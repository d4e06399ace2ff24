package domain

// DomainProgress tracks answered questions for one exam domain.
type DomainProgress struct {
	// Completed is the number of answered questions. It is not clamped at
	// Total: the catalog size is advisory and repeat passes may exceed it.
	Completed int `json:"completed"`
	// Total is the fixed question-bank size from the catalog.
	Total int `json:"total"`
	// Accuracy is the running percentage of correct answers in [0, 100].
	Accuracy float64 `json:"accuracy"`
	// TimeSpentMinutes is reserved for future session timing.
	TimeSpentMinutes float64 `json:"timeSpent"`
}

// ApplyAnswer folds one answered question into the running accuracy mean.
// Each answer contributes 100 (correct) or 0 (incorrect) to a cumulative
// percentage mean keyed on the completed count before the increment, so the
// result after n answers with k correct is 100*k/n regardless of order.
func ApplyAnswer(progress DomainProgress, correct bool) DomainProgress {
	contribution := 0.0
	if correct {
		contribution = 100.0
	}

	updated := progress
	before := float64(progress.Completed)
	updated.Accuracy = (progress.Accuracy*before + contribution) / (before + 1)
	updated.Completed = progress.Completed + 1
	return updated
}

// NewProgress builds the zero-progress record for a catalog entry.
func NewProgress(info DomainInfo) DomainProgress {
	return DomainProgress{Completed: 0, Total: info.Total, Accuracy: 0, TimeSpentMinutes: 0}
}
