package domain

// Snapshot is the complete in-memory state of the progress engine at a point
// in time. The whole snapshot is the unit of persistence and the unit of the
// transition function's input and output.
type Snapshot struct {
	User           UserProfile               `json:"user"`
	Progress       map[string]DomainProgress `json:"progress"`
	Settings       Settings                  `json:"settings"`
	CurrentSession Session                   `json:"currentSession"`

	// IsLoading and Error are transient UI-facing flags, never persisted.
	IsLoading bool `json:"isLoading"`
	// Error is the current transient error message, empty when none.
	Error string `json:"error,omitempty"`
}

// NewSnapshot builds the default snapshot for a catalog: fresh profile,
// zero progress per domain, default settings, idle session.
func NewSnapshot(catalog Catalog) Snapshot {
	progress := make(map[string]DomainProgress, len(catalog))
	for id, info := range catalog {
		progress[id] = NewProgress(info)
	}
	return Snapshot{
		User:           NewUserProfile(),
		Progress:       progress,
		Settings:       NewSettings(),
		CurrentSession: Session{},
		IsLoading:      false,
		Error:          "",
	}
}

// Clone returns a deep copy of the snapshot. Callers can hold the copy
// without observing later transitions.
func (s Snapshot) Clone() Snapshot {
	clone := s
	clone.User = CloneUserProfile(s.User)
	clone.Progress = make(map[string]DomainProgress, len(s.Progress))
	for id, p := range s.Progress {
		clone.Progress[id] = p
	}
	if s.CurrentSession.StartTime != nil {
		start := *s.CurrentSession.StartTime
		clone.CurrentSession.StartTime = &start
	}
	return clone
}

// HasDomain reports whether the snapshot tracks the domain identifier.
func (s Snapshot) HasDomain(id string) bool {
	_, ok := s.Progress[id]
	return ok
}
