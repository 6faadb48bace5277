package engine

import (
	"context"
	"time"

	"inferd/pkg/types"
)

// Defaults applied to omitted generation parameters.
const (
	defaultTemperature = 0.7
	defaultTopP        = 1.0
	defaultMaxTokens   = 500
	maxTemperature     = 2.0
)

// Complete runs a buffered generation and returns the full result once.
func (h *Handle) Complete(ctx context.Context, req types.ChatCompletionRequest) (Result, error) {
	return h.generate(ctx, req, "buffered", nil)
}

// Stream runs a streamed generation. onDelta is invoked for every token in
// the order the engine emits them; returning an error from onDelta stops
// token production, as does cancellation of ctx.
func (h *Handle) Stream(ctx context.Context, req types.ChatCompletionRequest, onDelta func(string) error) (Result, error) {
	return h.generate(ctx, req, "stream", onDelta)
}

func (h *Handle) generate(ctx context.Context, req types.ChatCompletionRequest, mode string, onToken func(string) error) (Result, error) {
	// Validation happens before any engine work; a bad request never
	// reaches the runtime.
	params, err := h.resolveParams(req)
	if err != nil {
		generations.WithLabelValues(mode, "invalid").Inc()
		return Result{}, err
	}
	inst, release, err := h.acquire()
	if err != nil {
		generations.WithLabelValues(mode, "unavailable").Inc()
		return Result{}, err
	}
	defer release()

	endSlot, err := h.beginGeneration(ctx)
	if err != nil {
		if IsTooBusy(err) {
			generations.WithLabelValues(mode, "busy").Inc()
		}
		return Result{}, err
	}
	defer endSlot()

	gctx := ctx
	cancel := context.CancelFunc(func() {})
	if h.timeout > 0 {
		gctx, cancel = context.WithTimeout(ctx, h.timeout)
	}
	defer cancel()

	start := time.Now()
	res, err := inst.sess.Generate(gctx, renderPrompt(req.Messages), params, onToken)
	generationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case ctx.Err() != nil:
			// Client disconnect or server shutdown.
			generations.WithLabelValues(mode, "canceled").Inc()
			return Result{}, ctx.Err()
		case gctx.Err() == context.DeadlineExceeded:
			generations.WithLabelValues(mode, "timeout").Inc()
			return Result{}, timeoutError{}
		default:
			h.mu.Lock()
			h.lastErr = err.Error()
			h.mu.Unlock()
			generations.WithLabelValues(mode, "error").Inc()
			logEvent("generation failed", "err", err.Error())
			return Result{}, engineError{cause: err}
		}
	}
	generatedTokens.Add(float64(res.Usage.CompletionTokens))
	generations.WithLabelValues(mode, "success").Inc()
	return res, nil
}

// resolveParams validates the request and maps it to runtime parameters.
func (h *Handle) resolveParams(req types.ChatCompletionRequest) (GenParams, error) {
	h.mu.RLock()
	modelName := h.cfg.Name
	ctxSize := h.cfg.CtxSize
	h.mu.RUnlock()

	if req.Model != "" && req.Model != modelName {
		return GenParams{}, errInvalidRequest("unknown model %q, configured model is %q", req.Model, modelName)
	}
	if len(req.Messages) == 0 {
		return GenParams{}, errInvalidRequest("messages must not be empty")
	}
	for i, m := range req.Messages {
		switch m.Role {
		case types.RoleSystem, types.RoleUser, types.RoleAssistant:
		default:
			return GenParams{}, errInvalidRequest("messages[%d]: unknown role %q", i, m.Role)
		}
	}
	temp := defaultTemperature
	if req.Temperature != nil {
		temp = *req.Temperature
		if temp < 0 || temp > maxTemperature {
			return GenParams{}, errInvalidRequest("temperature %g out of range [0, %g]", temp, float64(maxTemperature))
		}
	}
	topP := defaultTopP
	if req.TopP != nil {
		topP = *req.TopP
		if topP < 0 || topP > 1 {
			return GenParams{}, errInvalidRequest("top_p %g out of range [0, 1]", topP)
		}
	}
	maxTokens := req.MaxTokens
	switch {
	case maxTokens < 0:
		return GenParams{}, errInvalidRequest("max_tokens must be positive")
	case maxTokens == 0:
		maxTokens = defaultMaxTokens
		if maxTokens > ctxSize {
			maxTokens = ctxSize
		}
	case maxTokens > ctxSize:
		return GenParams{}, errInvalidRequest("max_tokens %d exceeds context window %d", maxTokens, ctxSize)
	}
	return GenParams{
		Temperature: float32(temp),
		TopP:        float32(topP),
		MaxTokens:   maxTokens,
		Stop:        promptStops(req.Stop),
		Seed:        int(req.Seed),
	}, nil
}

// beginGeneration reserves a queue slot and then the single in-flight slot.
// Returns a release func to be deferred.
func (h *Handle) beginGeneration(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer := time.NewTimer(h.maxWait)
	defer timer.Stop()
	select {
	case h.queueCh <- struct{}{}:
		// reserved queue slot
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, tooBusyError{}
	}

	acquired := false
	defer func() {
		if !acquired {
			<-h.queueCh
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer2 := time.NewTimer(h.maxWait)
	defer timer2.Stop()
	select {
	case h.genCh <- struct{}{}:
		acquired = true
		return func() { <-h.genCh; <-h.queueCh }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer2.C:
		return nil, tooBusyError{}
	}
}
