package engine

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"inferd/pkg/types"
)

func TestNewHandleStartsUnloaded(t *testing.T) {
	h := New(&fakeRuntime{}, ModelConfig{Path: "/nope.gguf", Name: "m"}, Options{})
	if h.Ready() {
		t.Fatalf("expected not ready before Load")
	}
	if got := h.Info().State; got != string(StateUnloaded) {
		t.Fatalf("state=%s", got)
	}
}

func TestLoadSuccess(t *testing.T) {
	rt := &fakeRuntime{}
	h, _ := newTestHandle(t, rt, Options{})
	if !h.Ready() {
		t.Fatalf("expected ready after load")
	}
	info := h.Info()
	if info.State != string(StateReady) || !info.ModelLoaded {
		t.Fatalf("info=%+v", info)
	}
	if info.LoadsTotal != 1 {
		t.Fatalf("loads_total=%d", info.LoadsTotal)
	}
	if rt.loadCount() != 1 {
		t.Fatalf("runtime loads=%d", rt.loadCount())
	}
}

func TestFirstLoadFailureIsFatalState(t *testing.T) {
	h := New(&fakeRuntime{}, ModelConfig{Path: "/does/not/exist.gguf", Name: "m"}, Options{})
	err := h.Load(context.Background())
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
	if h.Ready() {
		t.Fatalf("ready after failed first load")
	}
	if got := h.Info().State; got != string(StateFailed) {
		t.Fatalf("state=%s, want failed", got)
	}
	if h.Info().LastError == "" {
		t.Fatalf("expected last_error to be set")
	}
}

func TestFirstLoadEngineRejectIsFatalState(t *testing.T) {
	rt := &fakeRuntime{failLoad: errors.New("corrupt file")}
	p := createModelFile(t, t.TempDir(), "bad.gguf")
	h := New(rt, ModelConfig{Path: p, Name: "m"}, Options{})
	err := h.Load(context.Background())
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
	if got := h.Info().State; got != string(StateFailed) {
		t.Fatalf("state=%s, want failed", got)
	}
}

func TestReloadFailureKeepsOldInstance(t *testing.T) {
	rt := &fakeRuntime{}
	h, _ := newTestHandle(t, rt, Options{})
	origPath := h.Info().ModelPath

	err := h.Reload(context.Background(), types.ReloadRequest{ModelPath: "/missing/other.gguf"})
	if !IsLoadError(err) {
		t.Fatalf("expected load error, got %v", err)
	}
	// Fail-safe reload: still ready, still serving the original model.
	if !h.Ready() {
		t.Fatalf("not ready after failed reload")
	}
	info := h.Info()
	if info.State != string(StateReady) {
		t.Fatalf("state=%s", info.State)
	}
	if info.ModelPath != origPath {
		t.Fatalf("model path changed to %s", info.ModelPath)
	}
	if rt.sessions[0].isClosed() {
		t.Fatalf("working instance torn down by failed reload")
	}
	// A subsequent completion succeeds against the old instance.
	res, err := h.Complete(context.Background(), types.ChatCompletionRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "still alive"}},
	})
	if err != nil {
		t.Fatalf("complete after failed reload: %v", err)
	}
	if res.Content == "" {
		t.Fatalf("empty completion")
	}
}

func TestReloadSwapsInstance(t *testing.T) {
	rt := &fakeRuntime{}
	h, dir := newTestHandle(t, rt, Options{})
	pb := createModelFile(t, dir, "model-b.gguf")

	if err := h.Reload(context.Background(), types.ReloadRequest{ModelPath: pb, ModelName: "model-b", CtxSize: 8192}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	info := h.Info()
	if info.ModelPath != pb || info.ModelName != "model-b" || info.CtxSize != 8192 {
		t.Fatalf("info=%+v", info)
	}
	if info.LoadsTotal != 2 {
		t.Fatalf("loads_total=%d", info.LoadsTotal)
	}
	if !rt.sessions[0].isClosed() {
		t.Fatalf("old instance not closed after swap")
	}
	if rt.sessions[1].isClosed() {
		t.Fatalf("new instance closed")
	}
}

func TestReloadKeepsUnsetOverrides(t *testing.T) {
	rt := &fakeRuntime{}
	h, dir := newTestHandle(t, rt, Options{})
	pb := createModelFile(t, dir, "model-b.gguf")
	if err := h.Reload(context.Background(), types.ReloadRequest{ModelPath: pb}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	info := h.Info()
	if info.ModelName != "test-model" || info.CtxSize != 4096 {
		t.Fatalf("unset overrides mutated config: %+v", info)
	}
}

func TestInFlightGenerationSurvivesSwap(t *testing.T) {
	rt := &fakeRuntime{gate: make(chan struct{})}
	h, dir := newTestHandle(t, rt, Options{})
	pb := createModelFile(t, dir, "model-b.gguf")

	var wg sync.WaitGroup
	wg.Add(1)
	errCh := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := h.Complete(context.Background(), types.ChatCompletionRequest{
			Messages: []types.Message{{Role: types.RoleUser, Content: "long job"}},
		})
		errCh <- err
	}()

	// Wait for the generation to capture the old instance.
	deadline := time.Now().Add(2 * time.Second)
	for rt.generateCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("generation never started")
		}
		time.Sleep(time.Millisecond)
	}

	if err := h.Reload(context.Background(), types.ReloadRequest{ModelPath: pb}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	// Old instance is retired but must stay open while the generation holds it.
	if rt.sessions[0].isClosed() {
		t.Fatalf("old instance closed with a generation in flight")
	}

	close(rt.gate)
	wg.Wait()
	if err := <-errCh; err != nil {
		t.Fatalf("in-flight generation failed across reload: %v", err)
	}
	waitFor(t, func() bool { return rt.sessions[0].isClosed() }, "old instance close after release")
}

func TestCloseRetiresInstance(t *testing.T) {
	rt := &fakeRuntime{}
	h, _ := newTestHandle(t, rt, Options{})
	if err := h.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if h.Ready() {
		t.Fatalf("ready after close")
	}
	if !rt.sessions[0].isClosed() {
		t.Fatalf("session not closed")
	}
	_, err := h.Complete(context.Background(), types.ChatCompletionRequest{
		Messages: []types.Message{{Role: types.RoleUser, Content: "hi"}},
	})
	if !IsNotReady(err) {
		t.Fatalf("expected not-ready error, got %v", err)
	}
}

func TestReloadExpandsHome(t *testing.T) {
	rt := &fakeRuntime{}
	h, _ := newTestHandle(t, rt, Options{})

	home := t.TempDir()
	t.Setenv("HOME", home)
	createModelFile(t, home, "home.gguf")
	if err := h.Reload(context.Background(), types.ReloadRequest{ModelPath: "~/home.gguf"}); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := h.Info().ModelPath; got != filepath.Join(home, "home.gguf") {
		t.Fatalf("path=%s", got)
	}
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
