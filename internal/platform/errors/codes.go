package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Study domain errors
	CodeStudyEmptyDomain   Code = "STUDY_EMPTY_DOMAIN"
	CodeStudyUnknownDomain Code = "STUDY_UNKNOWN_DOMAIN"

	// User errors
	CodeUserEmptyName  Code = "USER_EMPTY_NAME"
	CodeBadgeEmptyName Code = "BADGE_EMPTY_NAME"

	// Settings errors
	CodeSettingsInvalidStudyHours Code = "SETTINGS_INVALID_STUDY_HOURS"
	CodeSettingsInvalidTargetDate Code = "SETTINGS_INVALID_TARGET_DATE"

	// Session errors
	CodeSessionEmptyDomain Code = "SESSION_EMPTY_DOMAIN"

	// Persistence errors
	CodeSnapshotInvalidPayload Code = "SNAPSHOT_INVALID_PAYLOAD"
	CodeNotFound               Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeStudyEmptyDomain,
		CodeUserEmptyName,
		CodeBadgeEmptyName,
		CodeSettingsInvalidStudyHours,
		CodeSettingsInvalidTargetDate,
		CodeSessionEmptyDomain:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeSnapshotInvalidPayload:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeStudyUnknownDomain:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
