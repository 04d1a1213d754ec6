// Package mcp exposes the capture pipeline as Model Context Protocol tools
// over stdio, so an assistant can file captures directly.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Veraticus/capture/internal/model"
)

// Tool names.
const (
	CaptureToolName  = "capture_text"
	ClassifyToolName = "capture_classify"
)

// Runner runs one capture through the whole pipeline.
type Runner interface {
	Run(ctx context.Context, req model.CaptureRequest) (model.Classification, error)
}

// Classifier classifies text without routing it.
type Classifier interface {
	Classify(ctx context.Context, rawText, source string) model.Classification
}

var captureToolDef = mcp.NewTool(CaptureToolName,
	mcp.WithDescription("File a short note or link. It is classified and routed to the links log, "+
		"a new idea document, an existing project document or the inbox."),
	mcp.WithString("text", mcp.Required(), mcp.Description("The captured text, verbatim")),
	mcp.WithString("source", mcp.Description("Where the capture came from (default: mcp)")),
)

var classifyToolDef = mcp.NewTool(ClassifyToolName,
	mcp.WithDescription("Show how a capture would be classified without writing anything."),
	mcp.WithString("text", mcp.Required(), mcp.Description("The text to classify")),
	mcp.WithString("source", mcp.Description("Source reported to the classifier (default: mcp)")),
)

// NewServer creates an MCP server with the capture tools registered.
func NewServer(runner Runner, classifier Classifier, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"capture",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(runner, classifier)
	s.AddTool(captureToolDef, h.HandleCapture)
	s.AddTool(classifyToolDef, h.HandleClassify)

	return s
}

// Run serves the tools on stdin and stdout until the input closes.
func Run(runner Runner, classifier Classifier, version string) error {
	return server.ServeStdio(NewServer(runner, classifier, version))
}
