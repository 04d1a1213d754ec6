package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/capture/internal/common"
	"github.com/Veraticus/capture/internal/model"
)

type fakeRunner struct {
	result model.Classification
	err    error
	reqs   []model.CaptureRequest
}

func (f *fakeRunner) Run(_ context.Context, req model.CaptureRequest) (model.Classification, error) {
	f.reqs = append(f.reqs, req)
	return f.result, f.err
}

type classifyFunc func(ctx context.Context, rawText, source string) model.Classification

func (f classifyFunc) Classify(ctx context.Context, rawText, source string) model.Classification {
	return f(ctx, rawText, source)
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func payload(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is not TextContent")

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func errorCode(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	errObj, ok := payload(t, result)["error"].(map[string]any)
	require.True(t, ok, "no error object in payload")
	code, _ := errObj["code"].(string)
	return code
}

func linkClassification(t *testing.T) model.Classification {
	t.Helper()
	action := "save_link"
	url := "https://example.com/post"
	title := "A post"
	comment := "worth reading"
	confidence := 0.9
	c, err := model.NewClassification(model.ClassificationInput{
		Action:     &action,
		URL:        &url,
		Title:      &title,
		Comment:    &comment,
		Tags:       []string{"reading"},
		Confidence: &confidence,
	})
	require.NoError(t, err)
	return c
}

func TestHandleCapture(t *testing.T) {
	t.Run("routes and reports destination", func(t *testing.T) {
		runner := &fakeRunner{result: linkClassification(t)}
		h := NewHandlers(runner, nil)

		result, err := h.HandleCapture(context.Background(), makeRequest(map[string]any{
			"text":   "read https://example.com/post",
			"source": "claude",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		out := payload(t, result)
		assert.Equal(t, "Links Sheet", out["destination"])
		assert.Equal(t, "success", out["status"])
		require.Len(t, runner.reqs, 1)
		assert.Equal(t, model.CaptureRequest{Text: "read https://example.com/post", Source: "claude"}, runner.reqs[0])
	})

	t.Run("defaults source", func(t *testing.T) {
		runner := &fakeRunner{result: model.FallbackClassification("hello")}
		h := NewHandlers(runner, nil)

		result, err := h.HandleCapture(context.Background(), makeRequest(map[string]any{"text": "hello"}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		require.Len(t, runner.reqs, 1)
		assert.Equal(t, DefaultSource, runner.reqs[0].Source)
	})

	t.Run("routing failure", func(t *testing.T) {
		runner := &fakeRunner{
			result: linkClassification(t),
			err:    common.ErrNotFound,
		}
		h := NewHandlers(runner, nil)

		result, err := h.HandleCapture(context.Background(), makeRequest(map[string]any{"text": "x"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Equal(t, CodeRoutingFailed, errorCode(t, result))

		errObj := payload(t, result)["error"].(map[string]any)
		assert.Contains(t, errObj, "classification")
	})

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing text", args: map[string]any{"source": "claude"}},
		{name: "empty text", args: map[string]any{"text": ""}},
		{name: "wrong type", args: map[string]any{"text": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			h := NewHandlers(runner, nil)

			result, err := h.HandleCapture(context.Background(), makeRequest(tt.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Equal(t, CodeInvalidRequest, errorCode(t, result))
			assert.Empty(t, runner.reqs)
		})
	}
}

func TestHandleClassify(t *testing.T) {
	var gotText, gotSource string
	cls := classifyFunc(func(_ context.Context, rawText, source string) model.Classification {
		gotText, gotSource = rawText, source
		return model.FallbackClassification(rawText)
	})
	runner := &fakeRunner{err: errors.New("must not run")}
	h := NewHandlers(runner, cls)

	result, err := h.HandleClassify(context.Background(), makeRequest(map[string]any{"text": "some thought"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := payload(t, result)
	assert.Equal(t, "inbox", out["action"])
	assert.Equal(t, model.FallbackTitle, out["title"])
	assert.Equal(t, "some thought", gotText)
	assert.Equal(t, DefaultSource, gotSource)
	assert.Empty(t, runner.reqs)
}

func TestNewServer(t *testing.T) {
	s := NewServer(&fakeRunner{}, classifyFunc(func(_ context.Context, rawText, _ string) model.Classification {
		return model.FallbackClassification(rawText)
	}), "test")
	require.NotNil(t, s)
}
