package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// createModelFile creates a small stand-in model file.
func createModelFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("gguf-stub"), 0o644); err != nil {
		t.Fatalf("create model file: %v", err)
	}
	return p
}

// fakeRuntime is a deterministic in-memory Runtime for tests.
type fakeRuntime struct {
	mu         sync.Mutex
	loads      int
	generates  int
	failLoad   error
	tokenDelay time.Duration
	gate       chan struct{} // when set, Generate blocks until the gate closes
	sessions   []*fakeSession
}

func (r *fakeRuntime) Load(path string, cfg ModelConfig) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.failLoad != nil {
		return nil, r.failLoad
	}
	s := &fakeSession{r: r, path: path, cfg: cfg}
	r.sessions = append(r.sessions, s)
	return s, nil
}

func (r *fakeRuntime) loadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

func (r *fakeRuntime) generateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generates
}

type fakeSession struct {
	r    *fakeRuntime
	path string
	cfg  ModelConfig

	mu     sync.Mutex
	closed bool
}

func (s *fakeSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// fakeTokens derives a deterministic token sequence from the prompt and seed.
// The prompt text is echoed back so tests can match responses to requests.
func fakeTokens(prompt string, seed int) []string {
	toks := []string{fmt.Sprintf("echo(seed=%d):", seed)}
	for _, w := range strings.Fields(prompt) {
		toks = append(toks, " "+w)
	}
	return toks
}

func (s *fakeSession) Generate(ctx context.Context, prompt string, params GenParams, onToken func(string) error) (Result, error) {
	s.r.mu.Lock()
	s.r.generates++
	gate := s.r.gate
	delay := s.r.tokenDelay
	s.r.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	toks := fakeTokens(prompt, params.Seed)
	finish := "stop"
	var b strings.Builder
	count := 0
	for _, tok := range toks {
		if count >= params.MaxTokens {
			finish = "length"
			break
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}
		if onToken != nil {
			if err := onToken(tok); err != nil {
				return Result{}, err
			}
		}
		b.WriteString(tok)
		count++
	}
	prompTokens := len(strings.Fields(prompt))
	return Result{
		Content:      b.String(),
		FinishReason: finish,
		Usage: Usage{
			PromptTokens:     prompTokens,
			CompletionTokens: count,
			TotalTokens:      prompTokens + count,
		},
	}, nil
}

// newTestHandle builds a loaded handle over a fake runtime and temp model file.
func newTestHandle(t *testing.T, rt *fakeRuntime, opts Options) (*Handle, string) {
	t.Helper()
	dir := t.TempDir()
	p := createModelFile(t, dir, "model-a.gguf")
	h := New(rt, ModelConfig{Path: p, Name: "test-model", CtxSize: 4096, BatchSize: 512, GPULayers: -1, Threads: 2}, opts)
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return h, dir
}
