package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"inferd/internal/common/fsutil"
	"inferd/pkg/types"
)

// State is the lifecycle state of the engine handle.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateFailed   State = "failed"
)

// ModelConfig holds the parameters one model instance is loaded with.
type ModelConfig struct {
	Path          string
	Name          string
	CtxSize       int
	BatchSize     int
	GPULayers     int
	Threads       int
	UseMMap       bool
	UseMLock      bool
	RopeFreqBase  float64
	RopeFreqScale float64
}

// Defaults applied when corresponding Options fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
)

// Options are handle tunables independent of the loaded model.
type Options struct {
	MaxQueueDepth  int
	MaxWait        time.Duration
	RequestTimeout time.Duration // 0 disables the per-generation deadline
}

// Handle owns the single loaded model instance. All access to the underlying
// runtime session is mediated through its methods; no other component holds
// a direct reference.
type Handle struct {
	runtime Runtime

	mu         sync.RWMutex // guards state, cur, cfg, lastErr, loadsTotal
	state      State
	cur        *instance
	cfg        ModelConfig
	lastErr    string
	loadsTotal uint64

	loadMu sync.Mutex // serializes load/reload; at most one load in flight

	// Admission: bounded FIFO queue feeding a single in-flight slot.
	queueCh chan struct{}
	genCh   chan struct{}
	maxWait time.Duration
	timeout time.Duration

	startTime time.Time
}

// New constructs an unloaded Handle. Call Load before serving.
func New(rt Runtime, cfg ModelConfig, opts Options) *Handle {
	if opts.MaxQueueDepth <= 0 {
		opts.MaxQueueDepth = defaultMaxQueueDepth
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = defaultMaxWait
	}
	return &Handle{
		runtime:   rt,
		state:     StateUnloaded,
		cfg:       cfg,
		queueCh:   make(chan struct{}, opts.MaxQueueDepth),
		genCh:     make(chan struct{}, 1),
		maxWait:   opts.MaxWait,
		timeout:   opts.RequestTimeout,
		startTime: time.Now(),
	}
}

// Load loads the configured model. On the first load a failure leaves the
// handle in StateFailed, which callers treat as fatal to startup.
func (h *Handle) Load(ctx context.Context) error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()
	h.mu.RLock()
	cfg := h.cfg
	h.mu.RUnlock()
	return h.loadLocked(ctx, cfg)
}

// Reload replaces the loaded instance with one loaded from the current
// configuration merged with any overrides. Load-then-swap: the replacement
// is fully loaded before the handle switches over, and on failure the prior
// instance keeps serving (the state transition is a no-op back to ready).
// Concurrent reloads serialize on the load mutex.
func (h *Handle) Reload(ctx context.Context, req types.ReloadRequest) error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	h.mu.RLock()
	cfg := h.cfg
	h.mu.RUnlock()
	if req.ModelPath != "" {
		p, err := fsutil.ExpandHome(req.ModelPath)
		if err != nil {
			return loadError{path: req.ModelPath, cause: err}
		}
		cfg.Path = p
	}
	if req.ModelName != "" {
		cfg.Name = req.ModelName
	}
	if req.CtxSize > 0 {
		cfg.CtxSize = req.CtxSize
	}
	if req.BatchSize > 0 {
		cfg.BatchSize = req.BatchSize
	}
	if req.GPULayers != 0 {
		cfg.GPULayers = req.GPULayers
	}
	return h.loadLocked(ctx, cfg)
}

// loadLocked performs one load attempt. Caller holds loadMu.
func (h *Handle) loadLocked(ctx context.Context, cfg ModelConfig) error {
	h.mu.Lock()
	prev := h.state
	h.state = StateLoading
	h.mu.Unlock()
	logEvent("load start", "path", cfg.Path)

	fail := func(cause error) error {
		err := loadError{path: cfg.Path, cause: cause}
		h.mu.Lock()
		if h.cur != nil {
			// Prior instance untouched; a bad reload must not tear down a
			// working one.
			h.state = StateReady
		} else if prev == StateUnloaded || prev == StateFailed {
			h.state = StateFailed
		} else {
			h.state = StateUnloaded
		}
		h.lastErr = err.Error()
		h.mu.Unlock()
		modelLoads.WithLabelValues("error").Inc()
		logEvent("load failed", "path", cfg.Path, "err", cause.Error())
		return err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if !fsutil.IsRegularFile(cfg.Path) {
		return fail(errors.New("model file not found"))
	}
	sess, err := h.runtime.Load(cfg.Path, cfg)
	if err != nil {
		return fail(err)
	}

	h.mu.Lock()
	old := h.cur
	h.cur = newInstance(sess, cfg)
	h.cfg = cfg
	h.state = StateReady
	h.lastErr = ""
	h.loadsTotal++
	h.mu.Unlock()
	if old != nil {
		// Closed once in-flight generations release their references.
		old.retire()
	}
	modelLoads.WithLabelValues("success").Inc()
	logEvent("load done", "path", cfg.Path, "model", cfg.Name)
	return nil
}

// Ready reports whether a usable engine instance is currently loaded.
func (h *Handle) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == StateReady && h.cur != nil
}

// ModelName returns the configured model identifier used in API responses.
func (h *Handle) ModelName() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg.Name
}

// Info returns read-only diagnostics about the handle and its configuration.
func (h *Handle) Info() types.ServerInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return types.ServerInfo{
		ModelName:             h.cfg.Name,
		ModelPath:             h.cfg.Path,
		CtxSize:               h.cfg.CtxSize,
		BatchSize:             h.cfg.BatchSize,
		GPULayers:             h.cfg.GPULayers,
		Threads:               h.cfg.Threads,
		UseMMap:               h.cfg.UseMMap,
		UseMLock:              h.cfg.UseMLock,
		State:                 string(h.state),
		ModelLoaded:           h.state == StateReady && h.cur != nil,
		LastError:             h.lastErr,
		UptimeSeconds:         int64(time.Since(h.startTime).Seconds()),
		LoadsTotal:            h.loadsTotal,
		MaxQueueDepth:         cap(h.queueCh),
		RequestTimeoutSeconds: int64(h.timeout / time.Second),
	}
}

// Close retires the current instance. Pending generations finish first.
func (h *Handle) Close() error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()
	h.mu.Lock()
	old := h.cur
	h.cur = nil
	h.state = StateUnloaded
	h.mu.Unlock()
	if old != nil {
		old.retire()
	}
	return nil
}

// acquire returns the current instance with a reference held, or a
// not-ready error. It never blocks waiting for a load to finish.
func (h *Handle) acquire() (*instance, func(), error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != StateReady || h.cur == nil {
		return nil, nil, notReadyError{state: h.state}
	}
	inst := h.cur
	inst.ref()
	return inst, inst.unref, nil
}
