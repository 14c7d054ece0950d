package pipeline_test

import (
	"testing"
	"time"

	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

func tilted(yaw, pitch float32) orientation.Quat {
	return orientation.Yaw(yaw).Mul(orientation.FromAxisAngle(orientation.Vec3{X: 1}, pitch))
}

func createViews(t *testing.T, total int) []model.View {
	t.Helper()

	views := make([]model.View, total)
	for i := range views {
		views[i] = model.View{
			Pose: model.Pose{
				Orientation: tilted(0.1*float32(i+1), 0.05*float32(i)),
				Position:    orientation.Vec3{X: -0.032 + 0.064*float32(i), Y: 1.6, Z: 0.01},
			},
			Fov: model.Fov{AngleLeft: -0.8, AngleRight: 0.7, AngleUp: 0.75, AngleDown: -0.9},
			SubImage: model.SwapchainSubImage{
				Swapchain:       model.Swapchain(10 + i),
				ImageRect:       model.Rect2Di{Width: 1832, Height: 1920},
				ImageArrayIndex: uint32(i),
			},
		}
	}

	return views
}

type sampleFrame struct {
	sub        *model.FrameSubmission
	projection *model.ProjectionLayer
	quad       *model.QuadLayer
	opaque     *model.OpaqueLayer
}

func createFrame(t *testing.T) sampleFrame {
	t.Helper()

	projection := &model.ProjectionLayer{
		LayerFlags: 0x2,
		Space:      7,
		Views:      createViews(t, 2),
	}
	quad := &model.QuadLayer{
		Space:    7,
		Pose:     model.Pose{Orientation: tilted(0.5, 0)},
		SubImage: model.SwapchainSubImage{Swapchain: 42},
		Width:    1,
		Height:   0.5,
	}
	opaque := &model.OpaqueLayer{
		StructureType: model.TypeCompositionLayerCylinderKHR,
		Payload:       "cylinder",
	}

	return sampleFrame{
		sub: &model.FrameSubmission{
			DisplayTime:          123456789,
			EnvironmentBlendMode: model.BlendModeOpaque,
			Layers:               []model.Layer{projection, quad, opaque},
		},
		projection: projection,
		quad:       quad,
		opaque:     opaque,
	}
}

// cloneFrame deep copies the parts of sub the pipeline could write to.
func cloneFrame(t *testing.T, sub *model.FrameSubmission) *model.FrameSubmission {
	t.Helper()

	res := *sub
	res.Layers = make([]model.Layer, len(sub.Layers))

	for i, l := range sub.Layers {
		switch v := l.(type) {
		case *model.ProjectionLayer:
			if v == nil {
				res.Layers[i] = v

				continue
			}

			cp := *v
			if v.Views != nil {
				cp.Views = make([]model.View, len(v.Views))
				copy(cp.Views, v.Views)
			}
			res.Layers[i] = &cp
		case *model.QuadLayer:
			if v == nil {
				res.Layers[i] = v

				continue
			}

			cp := *v
			res.Layers[i] = &cp
		default:
			res.Layers[i] = l
		}
	}

	return &res
}

type frameRecorder struct {
	frames []model.FrameInfo
	newed  int
	done   int
}

func (r *frameRecorder) New() error {
	r.newed++

	return nil
}

func (r *frameRecorder) OnFrame(frame *model.FrameInfo, _ time.Duration) {
	r.frames = append(r.frames, *frame)
}

func (r *frameRecorder) Finish() error {
	r.done++

	return nil
}
