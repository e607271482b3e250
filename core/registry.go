package core

import (
	"sort"
	"sync"

	apperrors "github.com/urlpix/urlpix/errors"
)

// Registry is a thread-safe capability table mapping operation names to
// typed handlers.  It backs the by-name Call contract the CLI and
// comparison layers use: look the handler up explicitly instead of
// reflecting over builder methods.
type Registry[T any] struct {
	mu       sync.RWMutex
	handlers map[string]func(T, []string) (T, error)
}

// NewRegistry returns an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{handlers: make(map[string]func(T, []string) (T, error))}
}

// Register binds name to handler, replacing any previous binding.
func (r *Registry[T]) Register(name string, handler func(T, []string) (T, error)) {
	r.mu.Lock()
	r.handlers[name] = handler
	r.mu.Unlock()
}

// Apply looks up the handler for call.Name and applies it to target.
// An unknown name yields an unsupported-capability error.
func (r *Registry[T]) Apply(target T, call Call) (T, error) {
	r.mu.RLock()
	handler, ok := r.handlers[call.Name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, apperrors.Unsupported(call.Name, apperrors.ErrUnknownCapability)
	}
	return handler(target, call.Args)
}

// Names returns the registered capability names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
