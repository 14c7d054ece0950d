package xrsim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/headturn/internal/xrsim"
	"github.com/askiada/headturn/pkg/layer"
	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func terminalCreateInfo() *layer.APILayerCreateInfo {
	return layer.NewAPILayerCreateInfo(nil)
}

func TestRuntimeRecordsCopies(t *testing.T) {
	t.Parallel()

	rt := xrsim.NewRuntime()

	instance, res := rt.CreateAPILayerInstance(&layer.InstanceCreateInfo{}, terminalCreateInfo())
	require.Equal(t, model.ResultSuccess, res)

	session, res := rt.CreateSession(instance)
	require.Equal(t, model.ResultSuccess, res)

	projection := &model.ProjectionLayer{Views: make([]model.View, 2)}
	sub := &model.FrameSubmission{Layers: []model.Layer{projection, nil}}

	require.Equal(t, model.ResultSuccess, rt.EndFrame(session, sub))

	projection.Views[0].Pose.Position.X = 1

	frames := rt.Frames(session)
	require.Len(t, frames, 1)
	require.Len(t, frames[0].Layers, 2)
	assert.Nil(t, frames[0].Layers[1])

	recorded := frames[0].Layers[0].(*model.ProjectionLayer) //nolint:forcetypeassert
	assert.NotSame(t, projection, recorded)
	assert.Zero(t, recorded.Views[0].Pose.Position.X)
}

func TestRuntimeHandles(t *testing.T) {
	t.Parallel()

	rt := xrsim.NewRuntime()

	_, res := rt.CreateAPILayerInstance(&layer.InstanceCreateInfo{}, layer.NewAPILayerCreateInfo(&layer.APILayerNextInfo{}))
	assert.Equal(t, model.ResultErrorValidationFailure, res)

	_, res = rt.CreateSession(1)
	assert.Equal(t, model.ResultErrorHandleInvalid, res)

	_, res = rt.GetInstanceProcAddr(1, layer.FuncEndFrame)
	assert.Equal(t, model.ResultErrorHandleInvalid, res)

	instance, res := rt.CreateAPILayerInstance(&layer.InstanceCreateInfo{}, terminalCreateInfo())
	require.Equal(t, model.ResultSuccess, res)

	session, res := rt.CreateSession(instance)
	require.Equal(t, model.ResultSuccess, res)

	assert.Equal(t, model.ResultErrorValidationFailure, rt.EndFrame(session, nil))

	rt.SetEndFrameResult(model.ResultErrorSessionLost)
	assert.Equal(t, model.ResultErrorSessionLost, rt.EndFrame(session, &model.FrameSubmission{}))

	assert.Equal(t, model.ResultSuccess, rt.DestroyInstance(instance))
	assert.Equal(t, model.ResultErrorHandleInvalid, rt.EndFrame(session, &model.FrameSubmission{}))
	assert.Equal(t, model.ResultErrorHandleInvalid, rt.DestroySession(session))
	assert.Equal(t, model.ResultErrorHandleInvalid, rt.DestroyInstance(instance))
}

func TestLoaderNegotiationFailure(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(pipeline.ConstantFactor(2))
	require.NoError(t, err)

	l, err := layer.New(pipe, layer.WithName("XR_APILAYER_other"))
	require.NoError(t, err)

	_, err = xrsim.NewLoader(xrsim.NewRuntime(), l)
	assert.ErrorIs(t, err, xrsim.ErrNegotiationFailed)
}

func TestLoaderCreateSessionUnknownInstance(t *testing.T) {
	t.Parallel()

	pipe, err := pipeline.New(pipeline.ConstantFactor(2))
	require.NoError(t, err)

	l, err := layer.New(pipe)
	require.NoError(t, err)

	loader, err := xrsim.NewLoader(xrsim.NewRuntime(), l)
	require.NoError(t, err)

	_, err = loader.CreateSession(42)
	assert.ErrorIs(t, err, xrsim.ErrCallFailed)

	assert.Equal(t, model.ResultErrorHandleInvalid, loader.EndFrame(42, 1, &model.FrameSubmission{}))
}
