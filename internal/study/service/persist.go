package service

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/studyhall/internal/platform/errors"
	"github.com/louisbranch/studyhall/internal/study/domain"
)

// SnapshotKey is the fixed storage key for the persisted progress blob.
const SnapshotKey = "nbhwc-progress"

// ErrPayloadInvalid indicates a structurally invalid persisted payload:
// it parsed, but the required user or progress fields are missing.
var ErrPayloadInvalid = apperrors.New(apperrors.CodeSnapshotInvalidPayload, "snapshot payload is missing required fields")

// persistedSnapshot is the durable layout of a snapshot. Transient flags
// (isLoading, error) are excluded; unknown extra fields in stored payloads
// are tolerated on read.
type persistedSnapshot struct {
	User           *domain.UserProfile              `json:"user"`
	Progress       map[string]domain.DomainProgress `json:"progress"`
	Settings       *domain.Settings                 `json:"settings"`
	CurrentSession *domain.Session                  `json:"currentSession"`
}

// EncodeSnapshot serializes the persisted fields of a snapshot.
func EncodeSnapshot(snap domain.Snapshot) ([]byte, error) {
	user := domain.CloneUserProfile(snap.User)
	if user.Badges == nil {
		user.Badges = []string{}
	}
	record := persistedSnapshot{
		User:           &user,
		Progress:       snap.Progress,
		Settings:       &snap.Settings,
		CurrentSession: &snap.CurrentSession,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot payload: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses and validates a persisted payload. A payload is
// valid when it parses as JSON and carries both a user and a progress
// object; everything else is optional and falls back to defaults. Domains
// the catalog tracks but the payload lacks are backfilled at zero so a
// catalog upgrade never strands the learner.
func DecodeSnapshot(payload []byte, catalog domain.Catalog) (domain.Snapshot, error) {
	var record persistedSnapshot
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot payload: %w", err)
	}
	if record.User == nil || record.Progress == nil {
		return domain.Snapshot{}, ErrPayloadInvalid
	}

	snap := domain.NewSnapshot(catalog)
	snap.User = *record.User
	if snap.User.Badges == nil {
		snap.User.Badges = []string{}
	}
	if snap.User.Level < 1 {
		snap.User.Level = domain.LevelForPoints(snap.User.Points)
	}
	for id, progress := range record.Progress {
		snap.Progress[id] = progress
	}
	if record.Settings != nil {
		snap.Settings = *record.Settings
	}
	if record.CurrentSession != nil {
		snap.CurrentSession = *record.CurrentSession
	}
	return snap, nil
}
