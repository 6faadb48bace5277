package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestJoinContextsCancelsOnEither(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	joined, cancel := joinContexts(a, b)
	defer cancel()

	select {
	case <-joined.Done():
		t.Fatalf("joined context done before either parent")
	default:
	}

	cancelA()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled with parent")
	}
}

func TestJoinContextsSecondParent(t *testing.T) {
	b, cancelB := context.WithCancel(context.Background())
	joined, cancel := joinContexts(context.Background(), b)
	defer cancel()
	cancelB()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled with second parent")
	}
}

func TestSetBaseContextNilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	defer SetBaseContext(nil)
	cancel()
	if serverBaseCtx.Err() == nil {
		t.Fatalf("base context not installed")
	}
	SetBaseContext(nil)
	if serverBaseCtx.Err() != nil {
		t.Fatalf("nil did not reset base context")
	}
}
