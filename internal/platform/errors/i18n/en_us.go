package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeStudyEmptyDomain          = "STUDY_EMPTY_DOMAIN"
	CodeStudyUnknownDomain        = "STUDY_UNKNOWN_DOMAIN"
	CodeUserEmptyName             = "USER_EMPTY_NAME"
	CodeBadgeEmptyName            = "BADGE_EMPTY_NAME"
	CodeSettingsInvalidStudyHours = "SETTINGS_INVALID_STUDY_HOURS"
	CodeSettingsInvalidTargetDate = "SETTINGS_INVALID_TARGET_DATE"
	CodeSessionEmptyDomain        = "SESSION_EMPTY_DOMAIN"
	CodeSnapshotInvalidPayload    = "SNAPSHOT_INVALID_PAYLOAD"
	CodeNotFound                  = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Study domain errors
		CodeStudyEmptyDomain:   "Study domain cannot be empty",
		CodeStudyUnknownDomain: "Unknown study domain {{.Domain}}",

		// User errors
		CodeUserEmptyName:  "User name cannot be empty",
		CodeBadgeEmptyName: "Badge name cannot be empty",

		// Settings errors
		CodeSettingsInvalidStudyHours: "Study hours per week must be greater than zero",
		CodeSettingsInvalidTargetDate: "Target date must be an ISO date or empty",

		// Session errors
		CodeSessionEmptyDomain: "Session domain cannot be empty",

		// Persistence errors
		CodeSnapshotInvalidPayload: "Saved progress data is invalid",
		CodeNotFound:               "Requested record was not found",
	},
}
