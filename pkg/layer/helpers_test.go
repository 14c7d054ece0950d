package layer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/headturn/internal/xrsim"
	"github.com/askiada/headturn/pkg/layer"
	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

type chain struct {
	layer    *layer.Layer
	runtime  *xrsim.Runtime
	loader   *xrsim.Loader
	instance model.Instance
}

func newLayer(t *testing.T, factor float32, opts ...layer.Option) *layer.Layer {
	t.Helper()

	pipe, err := pipeline.New(pipeline.ConstantFactor(factor))
	require.NoError(t, err)

	l, err := layer.New(pipe, opts...)
	require.NoError(t, err)

	return l
}

// newChain negotiates a layer and creates an instance on top of a simulated runtime.
func newChain(t *testing.T, factor float32) *chain {
	t.Helper()

	l := newLayer(t, factor)
	runtime := xrsim.NewRuntime()

	loader, err := xrsim.NewLoader(runtime, l)
	require.NoError(t, err)

	instance, err := loader.CreateInstance(&layer.InstanceCreateInfo{ApplicationName: "test"})
	require.NoError(t, err)

	return &chain{layer: l, runtime: runtime, loader: loader, instance: instance}
}

func (c *chain) session(t *testing.T) model.Session {
	t.Helper()

	session, err := c.loader.CreateSession(c.instance)
	require.NoError(t, err)

	return session
}

func turned(yaw, pitch float32) orientation.Quat {
	return orientation.Yaw(yaw).Mul(orientation.FromAxisAngle(orientation.Vec3{X: 1}, pitch))
}

func createSubmission() *model.FrameSubmission {
	return &model.FrameSubmission{
		DisplayTime: 1000,
		Layers: []model.Layer{
			&model.ProjectionLayer{
				Space: 1,
				Views: []model.View{
					{Pose: model.Pose{Orientation: turned(0.2, 0.1), Position: orientation.Vec3{X: -0.03, Y: 1.7}}},
					{Pose: model.Pose{Orientation: turned(0.2, 0.1), Position: orientation.Vec3{X: 0.03, Y: 1.7}}},
				},
			},
			&model.QuadLayer{Space: 1, Width: 1, Height: 1},
		},
	}
}

// downstream is a next layer whose answers are set by the test.
type downstream struct {
	createResult   model.Result
	destroyResult  model.Result
	endFrameResult model.Result
	created        *layer.APILayerCreateInfo
	destroyed      []model.Instance
	frames         []*model.FrameSubmission
	functions      map[string]layer.Function
}

func newDownstream() *downstream {
	d := &downstream{}
	d.functions = map[string]layer.Function{
		layer.FuncEndFrame: model.EndFrameFunc(func(_ model.Session, sub *model.FrameSubmission) model.Result {
			d.frames = append(d.frames, sub)

			return d.endFrameResult
		}),
		layer.FuncDestroyInstance: model.DestroyInstanceFunc(func(instance model.Instance) model.Result {
			d.destroyed = append(d.destroyed, instance)

			return d.destroyResult
		}),
	}

	return d
}

func (d *downstream) getInstanceProcAddr(_ model.Instance, name string) (layer.Function, model.Result) {
	fn, ok := d.functions[name]
	if !ok {
		return nil, model.ResultErrorFunctionUnsupported
	}

	return fn, model.ResultSuccess
}

func (d *downstream) createAPILayerInstance(_ *layer.InstanceCreateInfo, layerInfo *layer.APILayerCreateInfo) (model.Instance, model.Result) {
	d.created = layerInfo
	if d.createResult.Failed() {
		return model.NullHandle, d.createResult
	}

	return 99, d.createResult
}

func (d *downstream) createInfo() *layer.APILayerCreateInfo {
	return layer.NewAPILayerCreateInfo(layer.NewAPILayerNextInfo(layer.Name, d.getInstanceProcAddr, d.createAPILayerInstance))
}
