package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/capture/internal/llm"
	"github.com/Veraticus/capture/internal/service"
)

// ReadCall records a ReadRows invocation.
type ReadCall struct {
	TableID string
	Range   string
}

// AppendRowCall records an AppendRow invocation.
type AppendRowCall struct {
	TableID string
	Range   string
	Cells   []string
}

// MockTables is an in-memory service.TableStore. Rows are keyed by table and
// range; appended rows are recorded but not readable.
type MockTables struct {
	ReadFunc    func(ctx context.Context, tableID, rng string) ([][]string, error)
	AppendFunc  func(ctx context.Context, tableID, rng string, cells []string) error
	rows        map[string][][]string
	ReadCalls   []ReadCall
	AppendCalls []AppendRowCall
	mu          sync.Mutex
}

var _ service.TableStore = (*MockTables)(nil)

// NewMockTables creates an empty table store.
func NewMockTables() *MockTables {
	return &MockTables{rows: make(map[string][][]string)}
}

// SetRows sets the rows returned for tableID and rng.
func (m *MockTables) SetRows(tableID, rng string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[tableID+"|"+rng] = rows
}

// ReadRows implements service.TableStore.
func (m *MockTables) ReadRows(ctx context.Context, tableID, rng string) ([][]string, error) {
	m.mu.Lock()
	m.ReadCalls = append(m.ReadCalls, ReadCall{TableID: tableID, Range: rng})
	readFunc := m.ReadFunc
	rows := m.rows[tableID+"|"+rng]
	m.mu.Unlock()

	if readFunc != nil {
		return readFunc(ctx, tableID, rng)
	}
	return rows, nil
}

// AppendRow implements service.TableStore.
func (m *MockTables) AppendRow(ctx context.Context, tableID, rng string, cells []string) error {
	m.mu.Lock()
	m.AppendCalls = append(m.AppendCalls, AppendRowCall{
		TableID: tableID,
		Range:   rng,
		Cells:   append([]string(nil), cells...),
	})
	appendFunc := m.AppendFunc
	m.mu.Unlock()

	if appendFunc != nil {
		return appendFunc(ctx, tableID, rng, cells)
	}
	return nil
}

// Appends returns a copy of every recorded AppendRow call.
func (m *MockTables) Appends() []AppendRowCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AppendRowCall(nil), m.AppendCalls...)
}

// Reads returns a copy of every recorded ReadRows call.
func (m *MockTables) Reads() []ReadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReadCall(nil), m.ReadCalls...)
}

// CreateDocumentCall records a CreateDocument invocation.
type CreateDocumentCall struct {
	ParentID string
	Title    string
	Body     string
}

// AppendSectionCall records an AppendSection invocation.
type AppendSectionCall struct {
	DocID string
	Text  string
}

// MockDocuments is an in-memory service.DocumentStore.
type MockDocuments struct {
	CreateFunc  func(ctx context.Context, parentID, title, body string) (string, error)
	AppendFunc  func(ctx context.Context, docID, text string) error
	CreateCalls []CreateDocumentCall
	AppendCalls []AppendSectionCall
	nextID      int
	mu          sync.Mutex
}

var _ service.DocumentStore = (*MockDocuments)(nil)

// NewMockDocuments creates an empty document store.
func NewMockDocuments() *MockDocuments {
	return &MockDocuments{}
}

// CreateDocument implements service.DocumentStore. Without CreateFunc it
// returns ids doc-1, doc-2 and so on.
func (m *MockDocuments) CreateDocument(ctx context.Context, parentID, title, body string) (string, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, CreateDocumentCall{ParentID: parentID, Title: title, Body: body})
	m.nextID++
	id := fmt.Sprintf("doc-%d", m.nextID)
	createFunc := m.CreateFunc
	m.mu.Unlock()

	if createFunc != nil {
		return createFunc(ctx, parentID, title, body)
	}
	return id, nil
}

// AppendSection implements service.DocumentStore.
func (m *MockDocuments) AppendSection(ctx context.Context, docID, text string) error {
	m.mu.Lock()
	m.AppendCalls = append(m.AppendCalls, AppendSectionCall{DocID: docID, Text: text})
	appendFunc := m.AppendFunc
	m.mu.Unlock()

	if appendFunc != nil {
		return appendFunc(ctx, docID, text)
	}
	return nil
}

// Creates returns a copy of every recorded CreateDocument call.
func (m *MockDocuments) Creates() []CreateDocumentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateDocumentCall(nil), m.CreateCalls...)
}

// Sections returns a copy of every recorded AppendSection call.
func (m *MockDocuments) Sections() []AppendSectionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AppendSectionCall(nil), m.AppendCalls...)
}

// MockCompleter is a scripted llm.Completer.
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error)
	Err          error
	Response     string
	Calls        []llm.CompletionRequest
	mu           sync.Mutex
}

var _ llm.Completer = (*MockCompleter)(nil)

// NewMockCompleter returns a completer that always replies with response as a
// single text block.
func NewMockCompleter(response string) *MockCompleter {
	return &MockCompleter{Response: response}
}

// Complete implements llm.Completer.
func (m *MockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Completion, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	completeFunc, response, err := m.CompleteFunc, m.Response, m.Err
	m.mu.Unlock()

	if completeFunc != nil {
		return completeFunc(ctx, req)
	}
	if err != nil {
		return llm.Completion{}, err
	}
	return llm.Completion{Content: []llm.ContentBlock{{Type: llm.BlockTypeText, Text: response}}}, nil
}

// Requests returns a copy of every recorded request.
func (m *MockCompleter) Requests() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.CompletionRequest(nil), m.Calls...)
}
