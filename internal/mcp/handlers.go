package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Veraticus/capture/internal/activity"
	"github.com/Veraticus/capture/internal/model"
)

// DefaultSource is recorded for captures that arrive without one.
const DefaultSource = "mcp"

// Error codes returned in tool error payloads.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRoutingFailed  = "ROUTING_FAILED"
)

var errEmptyText = errors.New("text is required")

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	runner     Runner
	classifier Classifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(runner Runner, classifier Classifier) *Handlers {
	return &Handlers{runner: runner, classifier: classifier}
}

// CaptureArgs are the arguments of both tools.
type CaptureArgs struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// CaptureResult describes a routed capture.
type CaptureResult struct {
	Classification model.Classification `json:"classification"`
	Destination    string               `json:"destination"`
	Status         model.RunStatus      `json:"status"`
}

// HandleCapture runs the capture pipeline and reports where the text went.
// A routing failure is still recorded in the activity log before the error
// result is returned.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(req)
	if err != nil {
		return errorResult(CodeInvalidRequest, err, nil), nil
	}

	c, err := h.runner.Run(ctx, model.CaptureRequest{Text: args.Text, Source: args.Source})
	if err != nil {
		return errorResult(CodeRoutingFailed, err, &c), nil
	}

	return successResult(CaptureResult{
		Classification: c,
		Destination:    activity.Destination(c),
		Status:         model.RunSuccess,
	})
}

// HandleClassify returns the classification for the text without routing it.
func (h *Handlers) HandleClassify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(req)
	if err != nil {
		return errorResult(CodeInvalidRequest, err, nil), nil
	}

	return successResult(h.classifier.Classify(ctx, args.Text, args.Source))
}

func decodeArgs(req mcp.CallToolRequest) (CaptureArgs, error) {
	args, err := decode[CaptureArgs](req)
	if err != nil {
		return args, err
	}
	if args.Text == "" {
		return args, errEmptyText
	}
	if args.Source == "" {
		args.Source = DefaultSource
	}
	return args, nil
}

// decode unmarshals MCP request arguments into a typed struct.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

func errorResult(code string, err error, c *model.Classification) *mcp.CallToolResult {
	errorObj := map[string]any{
		"code":    code,
		"message": err.Error(),
	}
	if c != nil {
		errorObj["classification"] = c
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
