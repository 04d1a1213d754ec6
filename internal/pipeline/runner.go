// Package pipeline runs one capture through classification, dispatch and the
// audit record, either inline or detached from the request that submitted it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
)

// Classifier decides where a capture goes. It never fails.
type Classifier interface {
	Classify(ctx context.Context, rawText, source string) model.Classification
}

// Dispatcher performs the destination write for a classification.
type Dispatcher interface {
	Dispatch(ctx context.Context, c model.Classification, rawText, source string) error
}

// Recorder writes the audit row for a run. It never fails.
type Recorder interface {
	Record(ctx context.Context, rawText, source string, c model.Classification, status model.RunStatus, errMsg string)
}

// Runner executes pipeline runs. Detached runs are tracked so shutdown can
// wait for them.
type Runner struct {
	classifier Classifier
	dispatcher Dispatcher
	recorder   Recorder
	logger     *slog.Logger
	inflight   sync.WaitGroup
}

// NewRunner wires the three pipeline stages.
func NewRunner(classifier Classifier, dispatcher Dispatcher, recorder Recorder, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		classifier: classifier,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// Run classifies and dispatches req, then records exactly one audit row. The
// returned error is the dispatch failure, if any; it has already been recorded.
func (r *Runner) Run(ctx context.Context, req model.CaptureRequest) (model.Classification, error) {
	req = req.Normalize()
	logger := common.LoggerFromOr(ctx, r.logger)

	result, err := r.process(ctx, req)
	if err != nil {
		logger.Error("Capture processing failed",
			"source", req.Source,
			"error", err)
		r.recorder.Record(ctx, req.Text, req.Source, model.ErrorPlaceholder(req.Text), model.RunError, err.Error())
		return result, err
	}

	r.recorder.Record(ctx, req.Text, req.Source, result, model.RunSuccess, "")
	logger.Info("Processed capture",
		"source", req.Source,
		"action", result.Action,
		"title", result.Title)
	return result, nil
}

func (r *Runner) process(ctx context.Context, req model.CaptureRequest) (result model.Classification, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during capture processing: %v", p)
		}
	}()

	result = r.classifier.Classify(ctx, req.Text, req.Source)
	if err := r.dispatcher.Dispatch(ctx, result, req.Text, req.Source); err != nil {
		return result, err
	}
	return result, nil
}

// Submit starts a detached run and returns its id. The run ignores
// cancellation of ctx; values such as the logger are kept.
func (r *Runner) Submit(ctx context.Context, req model.CaptureRequest) string {
	runID := uuid.NewString()
	runCtx := common.WithLogger(context.WithoutCancel(ctx), r.logger.With("run_id", runID))

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		_, _ = r.Run(runCtx, req)
	}()

	return runID
}

// Wait blocks until every submitted run has finished or ctx is done. It never
// cancels a run.
func (r *Runner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight captures: %w", ctx.Err())
	}
}
