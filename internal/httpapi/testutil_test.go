package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inferd/internal/auth"
	"inferd/internal/engine"
	"inferd/pkg/types"
)

const (
	stdKey   = "sk-test-standard"
	adminKey = "sk-admin-test"
)

// mockService is a canned Service implementation for handler tests.
type mockService struct {
	ready bool
	model string
	info  types.ServerInfo

	reloadErr   error
	reloadCalls int
	lastReload  types.ReloadRequest

	completeFn func(ctx context.Context, req types.ChatCompletionRequest) (engine.Result, error)
	streamFn   func(ctx context.Context, req types.ChatCompletionRequest, onDelta func(string) error) (engine.Result, error)
}

func (m *mockService) Ready() bool            { return m.ready }
func (m *mockService) ModelName() string      { return m.model }
func (m *mockService) Info() types.ServerInfo { return m.info }

func (m *mockService) Reload(ctx context.Context, req types.ReloadRequest) error {
	m.reloadCalls++
	m.lastReload = req
	return m.reloadErr
}

func (m *mockService) Complete(ctx context.Context, req types.ChatCompletionRequest) (engine.Result, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	return engine.Result{
		Content:      "Hello there.",
		FinishReason: "stop",
		Usage:        engine.Usage{PromptTokens: 4, CompletionTokens: 3, TotalTokens: 7},
	}, nil
}

func (m *mockService) Stream(ctx context.Context, req types.ChatCompletionRequest, onDelta func(string) error) (engine.Result, error) {
	if m.streamFn != nil {
		return m.streamFn(ctx, req, onDelta)
	}
	for _, tok := range []string{"Hello", " there", "."} {
		if err := onDelta(tok); err != nil {
			return engine.Result{}, err
		}
	}
	return engine.Result{
		Content:      "Hello there.",
		FinishReason: "stop",
		Usage:        engine.Usage{PromptTokens: 4, CompletionTokens: 3, TotalTokens: 7},
	}, nil
}

func newMockService() *mockService {
	return &mockService{
		ready: true,
		model: "test-model",
		info:  types.ServerInfo{ModelName: "test-model", State: "ready", ModelLoaded: true},
	}
}

func testKeys() *auth.Keys {
	return auth.NewKeys([]string{stdKey}, []string{adminKey})
}

// newTestServer starts an httptest server over the full mux.
func newTestServer(t *testing.T, svc Service) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewMux(svc, testKeys()))
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}
