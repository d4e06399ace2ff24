package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/studyhall/internal/platform/errors"
	"github.com/louisbranch/studyhall/internal/study/domain"
	"github.com/louisbranch/studyhall/internal/study/event"
)

// SettingsUpdateInput represents the MCP tool input for updating settings.
// Omitted fields are left unchanged.
type SettingsUpdateInput struct {
	StudyHoursPerWeek *float64 `json:"study_hours_per_week,omitempty" jsonschema:"planned weekly study hours"`
	TargetDate        *string  `json:"target_date,omitempty" jsonschema:"target exam date (YYYY-MM-DD), empty string clears it"`
	LearningStyle     *string  `json:"learning_style,omitempty" jsonschema:"preferred learning style"`
}

// SettingsUpdateResult represents the MCP tool output for updating settings.
type SettingsUpdateResult struct {
	Settings SettingsView `json:"settings"`
	Error    string       `json:"error,omitempty"`
}

// SettingsUpdateTool defines the MCP tool schema for updating settings.
func SettingsUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "settings_update",
		Description: "Partially updates the study plan settings. Omitted fields keep their current values.",
	}
}

// SettingsUpdateHandler executes a settings update request.
func SettingsUpdateHandler(svc ProgressService) mcp.ToolHandlerFor[SettingsUpdateInput, SettingsUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SettingsUpdateInput) (*mcp.CallToolResult, SettingsUpdateResult, error) {
		patch := domain.SettingsPatch{
			StudyHoursPerWeek: input.StudyHoursPerWeek,
			TargetDate:        input.TargetDate,
			LearningStyle:     input.LearningStyle,
		}
		snap := svc.Dispatch(ctx, event.SettingsUpdated(zeroTime, patch))
		return nil, SettingsUpdateResult{Settings: viewSettings(snap.Settings), Error: snap.Error}, nil
	}
}

// UserRenameInput represents the MCP tool input for renaming the learner.
type UserRenameInput struct {
	Name string `json:"name" jsonschema:"new display name"`
}

// UserRenameResult represents the MCP tool output for renaming the learner.
type UserRenameResult struct {
	User  UserView `json:"user"`
	Error string   `json:"error,omitempty"`
}

// UserRenameTool defines the MCP tool schema for renaming the learner.
func UserRenameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_rename",
		Description: "Changes the learner's display name.",
	}
}

// UserRenameHandler executes a rename request.
func UserRenameHandler(svc ProgressService) mcp.ToolHandlerFor[UserRenameInput, UserRenameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UserRenameInput) (*mcp.CallToolResult, UserRenameResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, UserRenameResult{}, apperrors.HandleError(domain.ErrEmptyUserName, "")
		}

		snap := svc.Dispatch(ctx, event.UserRenamed(zeroTime, input.Name))
		return nil, UserRenameResult{User: viewUser(snap.User), Error: snap.Error}, nil
	}
}

// BadgeAwardInput represents the MCP tool input for a direct badge award.
type BadgeAwardInput struct {
	Name string `json:"name" jsonschema:"badge name to award"`
}

// BadgeAwardResult represents the MCP tool output for a direct badge award.
type BadgeAwardResult struct {
	Awarded bool     `json:"awarded" jsonschema:"false when the badge was already held"`
	Badges  []string `json:"badges" jsonschema:"all earned badges in award order"`
	Error   string   `json:"error,omitempty"`
}

// BadgeAwardTool defines the MCP tool schema for a direct badge award.
func BadgeAwardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "badge_award",
		Description: "Awards a named badge. Awarding a badge the learner already holds is a no-op.",
	}
}

// BadgeAwardHandler executes a badge award request.
func BadgeAwardHandler(svc ProgressService) mcp.ToolHandlerFor[BadgeAwardInput, BadgeAwardResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BadgeAwardInput) (*mcp.CallToolResult, BadgeAwardResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, BadgeAwardResult{}, apperrors.HandleError(domain.ErrEmptyBadgeName, "")
		}

		before := len(svc.Snapshot().User.Badges)
		snap := svc.Dispatch(ctx, event.BadgeAwarded(zeroTime, input.Name))
		result := BadgeAwardResult{
			Awarded: len(snap.User.Badges) > before,
			Badges:  viewUser(snap.User).Badges,
			Error:   snap.Error,
		}
		return nil, result, nil
	}
}
