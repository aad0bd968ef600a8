// Package fetch provides view-local slots for asynchronously fetched data in
// which the most recently issued request always wins.
package fetch

import (
	"context"
	"sync"
)

// Status defines the phase of a fetched field.
type Status int

// Field phases.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of a field. Data is set only when Status is
// StatusLoaded and Err only when Status is StatusFailed.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Loaded reports whether the snapshot carries data.
func (s State[T]) Loaded() bool { return s.Status == StatusLoaded }

// Token identifies one issued request for a field.
type Token uint64

// Field holds the latest state of one derived value. The zero value is an
// idle field ready for use.
type Field[T any] struct {
	mu     sync.Mutex
	gen    Token
	cancel context.CancelFunc
	state  State[T]
	done   chan struct{}
}

// Begin supersedes any in-flight request, marks the field as loading and
// returns a context bound to the new request together with its token.
// The returned context is cancelled as soon as another request supersedes it.
func (f *Field[T]) Begin(ctx context.Context) (context.Context, Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supersede()
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.state = State[T]{Status: StatusLoading}
	f.done = make(chan struct{})
	return ctx, f.gen
}

// Resolve applies the outcome of the request identified by tok. It returns
// false and discards the outcome when a newer request has been issued.
func (f *Field[T]) Resolve(tok Token, data T, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tok != f.gen {
		return false
	}
	if err != nil {
		f.state = State[T]{Status: StatusFailed, Err: err}
	} else {
		f.state = State[T]{Status: StatusLoaded, Data: data}
	}
	f.finish()
	return true
}

// Set stores data directly, superseding any in-flight request.
func (f *Field[T]) Set(data T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supersede()
	f.state = State[T]{Status: StatusLoaded, Data: data}
}

// Reset returns the field to idle, superseding any in-flight request.
func (f *Field[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supersede()
	f.state = State[T]{}
}

// Current reports whether tok identifies the latest issued request.
func (f *Field[T]) Current(tok Token) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return tok == f.gen
}

// State returns the current snapshot.
func (f *Field[T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Wait blocks until the request identified by tok settles or is superseded,
// or ctx is done, and returns the snapshot current at that point.
func (f *Field[T]) Wait(ctx context.Context, tok Token) State[T] {
	f.mu.Lock()
	if tok != f.gen || f.done == nil {
		s := f.state
		f.mu.Unlock()
		return s
	}
	done := f.done
	f.mu.Unlock()
	select {
	case <-done:
	case <-ctx.Done():
	}
	return f.State()
}

// supersede must be called with mu held.
func (f *Field[T]) supersede() {
	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.finish()
}

// finish must be called with mu held.
func (f *Field[T]) finish() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
}
