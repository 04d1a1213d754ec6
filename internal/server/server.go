// Package server exposes the capture webhook over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Veraticus/capture/internal/model"
)

// DefaultMaxBodyBytes caps the webhook payload size.
const DefaultMaxBodyBytes = 1 << 20

const shutdownTimeout = 30 * time.Second

// Runner accepts captures for detached processing and drains them on shutdown.
type Runner interface {
	Submit(ctx context.Context, req model.CaptureRequest) string
	Wait(ctx context.Context) error
}

// Config holds the listener settings.
type Config struct {
	Addr          string
	WebhookSecret string
	MaxBodyBytes  int64
}

// Server is the webhook HTTP server.
type Server struct {
	cfg        Config
	runner     Runner
	logger     *slog.Logger
	validate   *validator.Validate
	httpServer *http.Server
}

// FieldError describes one rejected field of a webhook body.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// New builds a server around runner.
func New(cfg Config, runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	s := &Server{
		cfg:      cfg,
		runner:   runner,
		logger:   logger,
		validate: v,
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("GET /health", s.handleHealth)
	return s.withLogging(s.withBodyLimit(mux))
}

// ListenAndServe listens on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully and waits for in-flight pipeline runs.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := s.runner.Wait(shutdownCtx); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req model.CaptureRequest
	if err := decodeBody(r.Body, &req); err != nil {
		s.invalidBody(w, []FieldError{{Field: "body", Tag: "json", Message: decodeMessage(err)}})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.invalidBody(w, fieldErrors(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "accepted"})
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	runID := s.runner.Submit(r.Context(), req)
	s.logger.Debug("capture accepted", "run_id", runID, "source", req.Source)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) authorized(r *http.Request) bool {
	if s.cfg.WebhookSecret == "" {
		return true
	}
	return r.Header.Get("Authorization") == "Bearer "+s.cfg.WebhookSecret
}

func (s *Server) invalidBody(w http.ResponseWriter, details []FieldError) {
	s.jsonResponse(w, http.StatusBadRequest, map[string]any{
		"error":   "Invalid request body",
		"details": details,
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Tag: "invalid", Message: err.Error()}}
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s character(s)", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

var errTrailingData = errors.New("body must contain a single JSON object")

// decodeBody decodes exactly one JSON value from body. Anything but
// whitespace after it is rejected.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errTrailingData
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Sprintf("body exceeds %d bytes", maxErr.Limit)
	}
	return err.Error()
}
