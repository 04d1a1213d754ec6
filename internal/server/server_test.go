package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/capture/internal/model"
)

type fakeRunner struct {
	mu        sync.Mutex
	submitted []model.CaptureRequest
	waited    bool
}

func (f *fakeRunner) Submit(_ context.Context, req model.CaptureRequest) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, req)
	return "run-1"
}

func (f *fakeRunner) Wait(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waited = true
	return nil
}

func (f *fakeRunner) Submitted() []model.CaptureRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CaptureRequest(nil), f.submitted...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(secret string) (*Server, *fakeRunner) {
	runner := &fakeRunner{}
	return New(Config{Addr: "127.0.0.1:0", WebhookSecret: secret}, runner, discardLogger()), runner
}

func postWebhook(t *testing.T, h http.Handler, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

func TestWebhook_Accepted(t *testing.T) {
	srv, runner := newTestServer("s3cret")

	rec := postWebhook(t, srv.Handler(),
		`{"text":"save https://x.io","source":"iphone","timestamp":"2025-01-01T00:00:00Z"}`,
		"Bearer s3cret")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"accepted"}`, rec.Body.String())

	submitted := runner.Submitted()
	require.Len(t, submitted, 1)
	assert.Equal(t, "save https://x.io", submitted[0].Text)
	assert.Equal(t, "iphone", submitted[0].Source)
	require.NotNil(t, submitted[0].Timestamp)
	assert.Equal(t, "2025-01-01T00:00:00Z", *submitted[0].Timestamp)
}

func TestWebhook_Authorization(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		auth   string
		want   int
	}{
		{name: "no secret configured", secret: "", auth: "", want: http.StatusOK},
		{name: "no secret configured ignores header", secret: "", auth: "Bearer anything", want: http.StatusOK},
		{name: "matching bearer", secret: "s3cret", auth: "Bearer s3cret", want: http.StatusOK},
		{name: "missing header", secret: "s3cret", auth: "", want: http.StatusUnauthorized},
		{name: "wrong secret", secret: "s3cret", auth: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing scheme", secret: "s3cret", auth: "s3cret", want: http.StatusUnauthorized},
		{name: "lowercase scheme", secret: "s3cret", auth: "bearer s3cret", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, runner := newTestServer(tt.secret)
			rec := postWebhook(t, srv.Handler(), `{"text":"hello"}`, tt.auth)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
				assert.Empty(t, runner.Submitted())
			}
		})
	}
}

func TestWebhook_UnauthorizedBeforeValidation(t *testing.T) {
	srv, _ := newTestServer("s3cret")

	rec := postWebhook(t, srv.Handler(), `not json`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhook_InvalidBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantTag   string
	}{
		{name: "missing text", body: `{"source":"iphone"}`, wantField: "text", wantTag: "required"},
		{name: "empty text", body: `{"text":""}`, wantField: "text", wantTag: "required"},
		{name: "malformed json", body: `{"text":`, wantField: "body", wantTag: "json"},
		{name: "wrong type", body: `{"text":42}`, wantField: "body", wantTag: "json"},
		{name: "trailing garbage", body: `{"text":"x"} trailing-garbage`, wantField: "body", wantTag: "json"},
		{name: "second object", body: `{"text":"x"}{"text":"y"}`, wantField: "body", wantTag: "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, runner := newTestServer("")
			rec := postWebhook(t, srv.Handler(), tt.body, "")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Invalid request body", body.Error)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.wantField, body.Details[0].Field)
			assert.Equal(t, tt.wantTag, body.Details[0].Tag)
			assert.NotEmpty(t, body.Details[0].Message)
			assert.Empty(t, runner.Submitted())
		})
	}
}

func TestWebhook_TrailingWhitespaceAccepted(t *testing.T) {
	srv, runner := newTestServer("")
	rec := postWebhook(t, srv.Handler(), "{\"text\":\"x\"}\n  \n", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, runner.Submitted(), 1)
}

func TestWebhook_BodyLimit(t *testing.T) {
	runner := &fakeRunner{}
	srv := New(Config{MaxBodyBytes: 32}, runner, discardLogger())

	rec := postWebhook(t, srv.Handler(), `{"text":"`+strings.Repeat("a", 64)+`"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, runner.Submitted())
}

func TestWebhook_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer("")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/webhook", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer("s3cret")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestServe_ShutdownDrainsRunner(t *testing.T) {
	srv, runner := newTestServer("")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.True(t, runner.waited)
}
