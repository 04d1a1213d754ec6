// Package actions routes a classification to exactly one destination and
// implements the four destination writes.
package actions

import (
	"context"
	"log/slog"

	"github.com/Veraticus/capture/internal/model"
)

// Handler performs one destination write for a classified capture.
type Handler interface {
	Handle(ctx context.Context, c model.Classification, rawText, source string) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, c model.Classification, rawText, source string) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, c model.Classification, rawText, source string) error {
	return f(ctx, c, rawText, source)
}

// Dispatcher selects the handler for a classification's action.
type Dispatcher struct {
	saveLink        Handler
	newIdea         Handler
	appendToProject Handler
	inbox           Handler
	logger          *slog.Logger
}

// NewDispatcher wires one handler per action.
func NewDispatcher(saveLink, newIdea, appendToProject, inbox Handler, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		saveLink:        saveLink,
		newIdea:         newIdea,
		appendToProject: appendToProject,
		inbox:           inbox,
		logger:          logger,
	}
}

// Dispatch runs exactly one handler and returns its error unchanged. Unknown
// actions go to the inbox.
func (d *Dispatcher) Dispatch(ctx context.Context, c model.Classification, rawText, source string) error {
	var h Handler
	switch c.Action {
	case model.ActionSaveLink:
		h = d.saveLink
	case model.ActionNewIdea:
		h = d.newIdea
	case model.ActionAppendToProject:
		h = d.appendToProject
	case model.ActionInbox:
		h = d.inbox
	default:
		d.logger.Warn("Unknown action, routing to inbox", "action", c.Action)
		h = d.inbox
	}

	return h.Handle(ctx, c, rawText, source)
}
