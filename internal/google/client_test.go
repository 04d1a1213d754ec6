package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/service"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// fakeWorkspace answers Sheets, Docs and Drive calls from a routing function
// and records every request.
type fakeWorkspace struct {
	route    func(r *http.Request) (int, string)
	requests []recordedRequest
	mu       sync.Mutex
}

func (f *fakeWorkspace) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
	for k := range r.URL.Query() {
		rec.Query[k] = r.URL.Query().Get(k)
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	status, resp := f.route(r)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp)
}

func (f *fakeWorkspace) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func newTestClient(t *testing.T, route func(r *http.Request) (int, string)) (*Client, *fakeWorkspace) {
	t.Helper()
	fake := &fakeWorkspace{route: route}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := newClient(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)
	return client, fake
}

func TestClient_ReadRows(t *testing.T) {
	client, fake := newTestClient(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"range":"Projects!A2:D","majorDimension":"ROWS","values":[["Smart Router","doc-1","active","Routing"],["CLI Tools"]]}`
	})

	rows, err := client.ReadRows(context.Background(), "config-sheet", "Projects!A2:D")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Smart Router", "doc-1", "active", "Routing"}, {"CLI Tools"}}, rows)

	reqs := fake.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Contains(t, reqs[0].Path, "config-sheet/values/Projects!A2:D")
}

func TestClient_AppendRowKeepsRawInput(t *testing.T) {
	client, fake := newTestClient(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"spreadsheetId":"activity"}`
	})

	cells := []string{"=HYPERLINK(\"x\")", "+1 555 0100", "3/14", "0042"}
	require.NoError(t, client.AppendRow(context.Background(), "activity", "Sheet1!A:H", cells))

	reqs := fake.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "RAW", reqs[0].Query["valueInputOption"])

	values, ok := reqs[0].Body["values"].([]any)
	require.True(t, ok)
	require.Len(t, values, 1)
	assert.Equal(t, []any{"=HYPERLINK(\"x\")", "+1 555 0100", "3/14", "0042"}, values[0])
}

func TestClient_ReadRowsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(_ *http.Request) (int, string) {
		return http.StatusNotFound, `{"error":{"code":404,"message":"Requested entity was not found."}}`
	})

	_, err := client.ReadRows(context.Background(), "missing", "Tags!A2:B")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.False(t, common.IsRetryable(err))
}

func TestClient_AppendRow(t *testing.T) {
	client, fake := newTestClient(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"spreadsheetId":"links"}`
	})

	err := client.AppendRow(context.Background(), "links", "Sheet1!A:F", []string{"2025-01-01T00:00:00.000Z", "https://example.com", "c", "go", "", "raw"})
	require.NoError(t, err)

	reqs := fake.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.True(t, strings.HasSuffix(reqs[0].Path, ":append"), reqs[0].Path)
	assert.Equal(t, "RAW", reqs[0].Query["valueInputOption"])

	values, ok := reqs[0].Body["values"].([]any)
	require.True(t, ok)
	require.Len(t, values, 1)
	assert.Equal(t, []any{"2025-01-01T00:00:00.000Z", "https://example.com", "c", "go", "", "raw"}, values[0])
}

func TestClient_AppendSection(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantIndex float64
	}{
		{
			name:      "appends before final newline",
			document:  `{"documentId":"doc-1","body":{"content":[{"endIndex":1},{"startIndex":1,"endIndex":42}]}}`,
			wantIndex: 41,
		},
		{
			name:      "empty body",
			document:  `{"documentId":"doc-1","body":{}}`,
			wantIndex: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newTestClient(t, func(r *http.Request) (int, string) {
				if r.Method == http.MethodGet {
					return http.StatusOK, tt.document
				}
				return http.StatusOK, `{"documentId":"doc-1"}`
			})

			require.NoError(t, client.AppendSection(context.Background(), "doc-1", "hello"))

			reqs := fake.recorded()
			require.Len(t, reqs, 2)
			assert.Equal(t, http.MethodGet, reqs[0].Method)
			assert.True(t, strings.HasSuffix(reqs[1].Path, "doc-1:batchUpdate"), reqs[1].Path)

			insert := insertTextRequest(t, reqs[1].Body)
			assert.Equal(t, "\n---\nhello\n", insert["text"])
			location, _ := insert["location"].(map[string]any)
			index, _ := location["index"].(float64)
			assert.InDelta(t, tt.wantIndex, index, 0)
		})
	}
}

func TestClient_CreateDocument(t *testing.T) {
	client, fake := newTestClient(t, func(r *http.Request) (int, string) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/documents"):
			return http.StatusOK, `{"documentId":"new-doc","title":"Idea"}`
		case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			return http.StatusOK, `{"documentId":"new-doc"}`
		case r.Method == http.MethodPatch:
			return http.StatusOK, `{"id":"new-doc","parents":["ideas"]}`
		}
		return http.StatusNotFound, `{"error":{"code":404,"message":"unexpected"}}`
	})

	id, err := client.CreateDocument(context.Background(), "ideas", "Idea", "# Idea\n")
	require.NoError(t, err)
	assert.Equal(t, "new-doc", id)

	reqs := fake.recorded()
	require.Len(t, reqs, 3)
	assert.Equal(t, "Idea", reqs[0].Body["title"])

	insert := insertTextRequest(t, reqs[1].Body)
	assert.Equal(t, "# Idea\n", insert["text"])

	assert.Equal(t, http.MethodPatch, reqs[2].Method)
	assert.True(t, strings.HasSuffix(reqs[2].Path, "/files/new-doc"), reqs[2].Path)
	assert.Equal(t, "ideas", reqs[2].Query["addParents"])
}

func TestClient_CreateDocumentWithoutID(t *testing.T) {
	client, _ := newTestClient(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"title":"Idea"}`
	})

	_, err := client.CreateDocument(context.Background(), "ideas", "Idea", "body")
	assert.ErrorIs(t, err, common.ErrDocumentNotCreated)
}

func TestClient_CreateFolderAndTable(t *testing.T) {
	client, fake := newTestClient(t, func(r *http.Request) (int, string) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files"):
			return http.StatusOK, `{"id":"folder-1"}`
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/spreadsheets"):
			return http.StatusOK, `{"spreadsheetId":"sheet-1"}`
		case strings.HasSuffix(r.URL.Path, "values:batchUpdate"):
			return http.StatusOK, `{"spreadsheetId":"sheet-1"}`
		case r.Method == http.MethodPatch:
			return http.StatusOK, `{"id":"sheet-1"}`
		}
		return http.StatusNotFound, `{"error":{"code":404,"message":"unexpected"}}`
	})

	folderID, err := client.CreateFolder(context.Background(), "root", "System")
	require.NoError(t, err)
	assert.Equal(t, "folder-1", folderID)

	sheetID, err := client.CreateTable(context.Background(), folderID, "Config", []service.TabSpec{
		{Name: "Projects", Header: []string{"Project Name", "Doc ID", "Status", "Description"}},
		{Name: "Tags", Header: []string{"Tag Name", "Category"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sheet-1", sheetID)

	reqs := fake.recorded()
	require.Len(t, reqs, 4)
	assert.Equal(t, folderMimeType, reqs[0].Body["mimeType"])
	assert.Equal(t, []any{"root"}, reqs[0].Body["parents"])

	data, ok := reqs[2].Body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
	assert.Equal(t, "folder-1", reqs[3].Query["addParents"])
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		target    error
		name      string
		code      int
		retryable bool
	}{
		{name: "rate limited", code: http.StatusTooManyRequests, target: common.ErrRateLimit, retryable: true},
		{name: "not found", code: http.StatusNotFound, target: common.ErrNotFound, retryable: false},
		{name: "forbidden", code: http.StatusForbidden, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyAPIError(fmt.Errorf("call: %w", &googleapi.Error{Code: tt.code}))
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			assert.Equal(t, tt.retryable, common.IsRetryable(err))
		})
	}

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classifyAPIError(plain))
}

func insertTextRequest(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	requests, ok := body["requests"].([]any)
	require.True(t, ok)
	require.Len(t, requests, 1)
	req, ok := requests[0].(map[string]any)
	require.True(t, ok)
	insert, ok := req["insertText"].(map[string]any)
	require.True(t, ok)
	return insert
}
