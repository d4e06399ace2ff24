package domain

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/studyhall/internal/study/event"
	"github.com/louisbranch/studyhall/internal/study/insights"
)

// ProgressGetInput represents the MCP tool input for reading the snapshot.
type ProgressGetInput struct{}

// ProgressGetTool defines the MCP tool schema for reading the snapshot.
func ProgressGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "progress_get",
		Description: "Returns the complete current study progress snapshot.",
	}
}

// ProgressGetHandler returns the current snapshot.
func ProgressGetHandler(svc ProgressService) mcp.ToolHandlerFor[ProgressGetInput, SnapshotView] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ProgressGetInput) (*mcp.CallToolResult, SnapshotView, error) {
		return nil, viewSnapshot(svc.Snapshot()), nil
	}
}

// ProgressResetInput represents the MCP tool input for resetting progress.
type ProgressResetInput struct{}

// ProgressResetTool defines the MCP tool schema for resetting progress.
func ProgressResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "progress_reset",
		Description: "Resets all progress, points, badges, and settings to defaults. The display name is kept.",
	}
}

// ProgressResetHandler executes a full reset.
func ProgressResetHandler(svc ProgressService) mcp.ToolHandlerFor[ProgressResetInput, SnapshotView] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ProgressResetInput) (*mcp.CallToolResult, SnapshotView, error) {
		return nil, viewSnapshot(svc.Dispatch(ctx, event.ProgressReset(zeroTime))), nil
	}
}

// InsightsGetInput represents the MCP tool input for study recommendations.
type InsightsGetInput struct{}

// InsightsGetResult represents the MCP tool output for study recommendations.
type InsightsGetResult struct {
	OverallProgress       float64 `json:"overall_progress" jsonschema:"percentage of the combined question banks answered"`
	OverallAccuracy       float64 `json:"overall_accuracy" jsonschema:"mean accuracy across started domains"`
	WeakestDomain         string  `json:"weakest_domain,omitempty" jsonschema:"started domain with the lowest accuracy, empty when none started"`
	RecommendedStudyHours int     `json:"recommended_study_hours" jsonschema:"estimated total study hours to cover the remaining material"`
}

// InsightsGetTool defines the MCP tool schema for study recommendations.
func InsightsGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "insights_get",
		Description: "Derives study recommendations from the current progress: overall progress and accuracy, the weakest domain, and a study-hour estimate.",
	}
}

// InsightsGetHandler computes study recommendations from the snapshot.
func InsightsGetHandler(svc ProgressService) mcp.ToolHandlerFor[InsightsGetInput, InsightsGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ InsightsGetInput) (*mcp.CallToolResult, InsightsGetResult, error) {
		snap := svc.Snapshot()
		weakest, _ := insights.WeakestDomain(snap.Progress)
		result := InsightsGetResult{
			OverallProgress:       insights.OverallProgress(snap.Progress),
			OverallAccuracy:       insights.OverallAccuracy(snap.Progress),
			WeakestDomain:         weakest,
			RecommendedStudyHours: insights.RecommendedStudyHours(snap.Settings, snap.Progress, time.Now()),
		}
		return nil, result, nil
	}
}
