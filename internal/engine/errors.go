package engine

import "fmt"

// invalidRequestError signals a malformed or out-of-range request body,
// detected before any engine work begins (400 mapping).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return e.msg }

func errInvalidRequest(format string, args ...any) error {
	return invalidRequestError{msg: fmt.Sprintf(format, args...)}
}

// IsInvalidRequest reports whether err is a request-validation failure.
func IsInvalidRequest(err error) bool {
	_, ok := err.(invalidRequestError)
	return ok
}

// notReadyError signals that no usable engine instance is loaded (503 mapping).
type notReadyError struct{ state State }

func (e notReadyError) Error() string { return "no model loaded (engine " + string(e.state) + ")" }

// IsNotReady reports whether err indicates the handle has no ready instance.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// tooBusyError signals admission-queue overflow or wait timeout (429 mapping).
type tooBusyError struct{}

func (tooBusyError) Error() string { return "too busy: generation queue is full" }

// IsTooBusy reports whether err indicates backpressure.
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// timeoutError signals the per-request generation deadline expired (504 mapping).
type timeoutError struct{}

func (timeoutError) Error() string { return "generation timed out" }

// IsTimeout reports whether err indicates the generation deadline expired.
func IsTimeout(err error) bool {
	_, ok := err.(timeoutError)
	return ok
}

// loadError signals the runtime failed to load a model file. Fatal at
// startup; recoverable at reload (the prior instance is retained).
type loadError struct {
	path  string
	cause error
}

func (e loadError) Error() string { return "load model " + e.path + ": " + e.cause.Error() }
func (e loadError) Unwrap() error { return e.cause }

// IsLoadError reports whether err came from a failed model load.
func IsLoadError(err error) bool {
	_, ok := err.(loadError)
	return ok
}

// engineError signals an unexpected runtime failure during generation
// (500 mapping); it does not corrupt the handle's state.
type engineError struct{ cause error }

func (e engineError) Error() string { return "engine: " + e.cause.Error() }
func (e engineError) Unwrap() error { return e.cause }

// IsEngineError reports whether err is an unexpected generation failure.
func IsEngineError(err error) bool {
	_, ok := err.(engineError)
	return ok
}

// dependencyUnavailableError signals a missing native runtime (binary built
// without the llama tag).
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
