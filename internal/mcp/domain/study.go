package domain

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/studyhall/internal/platform/errors"
	"github.com/louisbranch/studyhall/internal/study/domain"
	"github.com/louisbranch/studyhall/internal/study/event"
)

// ProgressService is the slice of the study service the tool handlers need.
type ProgressService interface {
	Dispatch(ctx context.Context, evt event.Event) domain.Snapshot
	Snapshot() domain.Snapshot
}

// AnswerQuestionInput represents the MCP tool input for answering a question.
type AnswerQuestionInput struct {
	Domain  string `json:"domain" jsonschema:"exam domain identifier (e.g. coaching-structure)"`
	Correct bool   `json:"correct" jsonschema:"whether the answer was correct"`
}

// AnswerQuestionResult represents the MCP tool output for answering a question.
type AnswerQuestionResult struct {
	User     UserView           `json:"user"`
	Progress DomainProgressView `json:"progress" jsonschema:"updated progress for the answered domain"`
	Session  SessionView        `json:"session"`
	Error    string             `json:"error,omitempty" jsonschema:"transient error message, if the answer was rejected"`
}

// AnswerQuestionTool defines the MCP tool schema for answering a question.
func AnswerQuestionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "answer_question",
		Description: "Records one answered practice question, awarding points, levels, and badges.",
	}
}

// AnswerQuestionHandler executes an answer request against the study service.
func AnswerQuestionHandler(svc ProgressService) mcp.ToolHandlerFor[AnswerQuestionInput, AnswerQuestionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AnswerQuestionInput) (*mcp.CallToolResult, AnswerQuestionResult, error) {
		if strings.TrimSpace(input.Domain) == "" {
			err := apperrors.New(apperrors.CodeStudyEmptyDomain, "study domain is required")
			return nil, AnswerQuestionResult{}, apperrors.HandleError(err, "")
		}

		snap := svc.Dispatch(ctx, event.QuestionAnswered(zeroTime, input.Domain, input.Correct))
		result := AnswerQuestionResult{
			User:     viewUser(snap.User),
			Progress: viewOneDomain(snap, input.Domain),
			Session:  viewSession(snap.CurrentSession),
			Error:    snap.Error,
		}
		return nil, result, nil
	}
}

// SessionStartInput represents the MCP tool input for starting a session.
type SessionStartInput struct {
	Domain string `json:"domain" jsonschema:"exam domain identifier the session targets"`
}

// SessionStartResult represents the MCP tool output for starting a session.
type SessionStartResult struct {
	Session SessionView `json:"session"`
	Error   string      `json:"error,omitempty" jsonschema:"transient error message, if the session was rejected"`
}

// SessionStartTool defines the MCP tool schema for starting a session.
func SessionStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_start",
		Description: "Starts a study session for a domain. An unfinished prior session is discarded.",
	}
}

// SessionStartHandler executes a session start request.
func SessionStartHandler(svc ProgressService) mcp.ToolHandlerFor[SessionStartInput, SessionStartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionStartInput) (*mcp.CallToolResult, SessionStartResult, error) {
		if strings.TrimSpace(input.Domain) == "" {
			err := apperrors.New(apperrors.CodeSessionEmptyDomain, "session domain is required")
			return nil, SessionStartResult{}, apperrors.HandleError(err, "")
		}

		snap := svc.Dispatch(ctx, event.SessionStarted(zeroTime, input.Domain))
		return nil, SessionStartResult{Session: viewSession(snap.CurrentSession), Error: snap.Error}, nil
	}
}

// SessionEndInput represents the MCP tool input for ending a session.
type SessionEndInput struct{}

// SessionEndResult represents the MCP tool output for ending a session.
type SessionEndResult struct {
	User  UserView `json:"user" jsonschema:"profile after streak and badge effects"`
	Error string   `json:"error,omitempty"`
}

// SessionEndTool defines the MCP tool schema for ending a session.
func SessionEndTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_end",
		Description: "Ends the active study session. A session at 70% accuracy or better extends the streak.",
	}
}

// SessionEndHandler executes a session end request.
func SessionEndHandler(svc ProgressService) mcp.ToolHandlerFor[SessionEndInput, SessionEndResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SessionEndInput) (*mcp.CallToolResult, SessionEndResult, error) {
		snap := svc.Dispatch(ctx, event.SessionEnded(zeroTime))
		return nil, SessionEndResult{User: viewUser(snap.User), Error: snap.Error}, nil
	}
}

func viewOneDomain(snap domain.Snapshot, id string) DomainProgressView {
	p := snap.Progress[id]
	return DomainProgressView{Completed: p.Completed, Total: p.Total, Accuracy: p.Accuracy}
}
