package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func newTestContext(t *testing.T, registry *Registry, instance model.Instance) *Context {
	t.Helper()

	pipe, err := pipeline.New(pipeline.ConstantFactor(2))
	require.NoError(t, err)

	next := func(model.Instance, string) (Function, model.Result) {
		return nil, model.ResultErrorFunctionUnsupported
	}

	return newContext(instance, next, pipe, registry, zap.NewNop())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	ctx := newTestContext(t, registry, 1)

	require.NoError(t, registry.Create(ctx))
	assert.ErrorIs(t, registry.Create(newTestContext(t, registry, 1)), ErrInstanceExists)
	require.NoError(t, registry.Create(newTestContext(t, registry, 2)))
	assert.Equal(t, 2, registry.Len())

	got, err := registry.Get(1)
	require.NoError(t, err)
	assert.Same(t, ctx, got)

	_, err = registry.Get(3)
	assert.ErrorIs(t, err, ErrInstanceNotFound)

	require.NoError(t, registry.Destroy(1))
	assert.ErrorIs(t, registry.Destroy(1), ErrInstanceNotFound)
	assert.Equal(t, 1, registry.Len())
}

func TestContextFilterPerSession(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(t, NewRegistry(), 1)

	first := ctx.filter(10)
	assert.Same(t, first, ctx.filter(10))
	assert.Equal(t, model.Session(10), first.Session())

	second := ctx.filter(11)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, ctx.Sessions())

	// Without a next xrDestroySession the filter is still dropped.
	assert.Equal(t, model.ResultErrorFunctionUnsupported, ctx.DestroySession(10))
	assert.Equal(t, 1, ctx.Sessions())

	ctx.releaseSessions()
	assert.Zero(t, ctx.Sessions())
}

func TestContextMissingDispatch(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(t, NewRegistry(), 1)
	ctx.loadDispatchTable()

	assert.Nil(t, ctx.dispatch.endFrame)
	assert.Nil(t, ctx.dispatch.destroyInstance)
	assert.Nil(t, ctx.dispatch.destroySession)
}
