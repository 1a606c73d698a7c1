package mocks

import (
	"context"
	"hotel/infras/otel"
	"sync"
)

// Recorder is an otel.Otel that keeps every scope it opens.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

// NewOtel returns a recorder. Tests that do not care about spans can ignore it.
func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	scope := newScope(name)

	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the first scope opened under name, or nil.
func (r *Recorder) Scope(name string) *Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, scope := range r.scopes {
		if scope.Name == name {
			return scope
		}
	}

	return nil
}
