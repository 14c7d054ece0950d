package layer

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Registry maps instance handles to their context. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	contexts map[model.Instance]*Context
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		contexts: make(map[model.Instance]*Context),
	}
}

// Create registers ctx under its instance. An instance has at most one context.
func (r *Registry) Create(ctx *Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contexts[ctx.instance]; ok {
		return errors.Wrapf(ErrInstanceExists, "instance %d", ctx.instance)
	}

	r.contexts[ctx.instance] = ctx

	return nil
}

// Get returns the context of instance.
func (r *Registry) Get(instance model.Instance) (*Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctx, ok := r.contexts[instance]
	if !ok {
		return nil, errors.Wrapf(ErrInstanceNotFound, "instance %d", instance)
	}

	return ctx, nil
}

// Destroy releases the context of instance.
func (r *Registry) Destroy(instance model.Instance) error {
	r.mu.Lock()
	ctx, ok := r.contexts[instance]
	delete(r.contexts, instance)
	r.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrInstanceNotFound, "instance %d", instance)
	}

	ctx.releaseSessions()

	return nil
}

// Len returns the number of live contexts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.contexts)
}
