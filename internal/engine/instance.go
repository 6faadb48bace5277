package engine

import "sync"

// instance wraps a live runtime session with a reference count so that
// generations which captured it before a reload swap finish against it.
// The session is closed exactly once, after the instance is retired and the
// last reference is released.
type instance struct {
	sess Session
	cfg  ModelConfig

	mu      sync.Mutex
	refs    int
	retired bool
	closed  bool
}

func newInstance(sess Session, cfg ModelConfig) *instance {
	return &instance{sess: sess, cfg: cfg}
}

func (i *instance) ref() {
	i.mu.Lock()
	i.refs++
	i.mu.Unlock()
}

func (i *instance) unref() {
	i.mu.Lock()
	i.refs--
	closeNow := i.retired && i.refs == 0 && !i.closed
	if closeNow {
		i.closed = true
	}
	i.mu.Unlock()
	if closeNow {
		_ = i.sess.Close()
	}
}

// retire marks the instance as replaced. It closes the session immediately
// when no generation holds a reference.
func (i *instance) retire() {
	i.mu.Lock()
	i.retired = true
	closeNow := i.refs == 0 && !i.closed
	if closeNow {
		i.closed = true
	}
	i.mu.Unlock()
	if closeNow {
		_ = i.sess.Close()
	}
}
