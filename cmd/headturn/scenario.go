package main

import (
	"io"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Layer types of a scenario.
const (
	layerProjection = "projection"
	layerQuad       = "quad"
	layerOpaque     = "opaque"
	layerNull       = "null"
)

// Scenario is a sequence of frames as an application would submit them. Angles are in degrees.
type Scenario struct {
	Name     string          `yaml:"name"`
	Amplify  float32         `yaml:"amplify"`
	Strategy string          `yaml:"strategy"`
	Frames   []ScenarioFrame `yaml:"frames"`
}

// ScenarioFrame is one xrEndFrame call.
type ScenarioFrame struct {
	DisplayTime int64           `yaml:"display_time"`
	BlendMode   string          `yaml:"blend_mode"`
	Layers      []ScenarioLayer `yaml:"layers"`
}

// ScenarioLayer is a composition layer. Views are only read for projection layers, Pose, Width
// and Height for quad layers and StructureType for opaque ones.
type ScenarioLayer struct {
	// Type is kept as a node because YAML reads an unquoted null as a null value, not a string.
	Type          yaml.Node      `yaml:"type"`
	Space         uint64         `yaml:"space"`
	Views         []ScenarioView `yaml:"views"`
	Pose          ScenarioView   `yaml:"pose"`
	Width         float32        `yaml:"width"`
	Height        float32        `yaml:"height"`
	StructureType uint32         `yaml:"structure_type"`
}

// ScenarioView is a head pose with its field of view.
type ScenarioView struct {
	Yaw      float32     `yaml:"yaw"`
	Pitch    float32     `yaml:"pitch"`
	Roll     float32     `yaml:"roll"`
	Position [3]float32  `yaml:"position"`
	Fov      ScenarioFov `yaml:"fov"`
}

// ScenarioFov is a field of view in degrees.
type ScenarioFov struct {
	Left  float32 `yaml:"left"`
	Right float32 `yaml:"right"`
	Up    float32 `yaml:"up"`
	Down  float32 `yaml:"down"`
}

// LoadScenario decodes and checks a YAML scenario.
func LoadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	sc := &Scenario{}

	err := dec.Decode(sc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode scenario")
	}

	if len(sc.Frames) == 0 {
		return nil, ErrNoFrames
	}

	for i, frame := range sc.Frames {
		if _, err := parseBlendMode(frame.BlendMode); err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}

		for j, l := range frame.Layers {
			switch l.kind() {
			case layerProjection, layerQuad, layerNull:
			case layerOpaque:
				if l.StructureType == 0 {
					return nil, errors.Wrapf(ErrMissingStructureType, "frame %d layer %d", i, j)
				}
			default:
				return nil, errors.Wrapf(ErrUnknownLayerType, "frame %d layer %d: %q", i, j, l.Type.Value)
			}
		}
	}

	return sc, nil
}

func parseBlendMode(name string) (model.EnvironmentBlendMode, error) {
	switch strings.ToLower(name) {
	case "", "opaque":
		return model.BlendModeOpaque, nil
	case "additive":
		return model.BlendModeAdditive, nil
	case "alpha_blend":
		return model.BlendModeAlphaBlend, nil
	default:
		return 0, errors.Wrapf(ErrUnknownBlendMode, "%q", name)
	}
}

// Submissions converts the frames of a loaded scenario.
func (sc *Scenario) Submissions() []*model.FrameSubmission {
	subs := make([]*model.FrameSubmission, len(sc.Frames))

	for i, frame := range sc.Frames {
		// Checked by LoadScenario.
		blendMode, _ := parseBlendMode(frame.BlendMode)

		sub := &model.FrameSubmission{
			DisplayTime:          model.Time(frame.DisplayTime),
			EnvironmentBlendMode: blendMode,
			Layers:               make([]model.Layer, 0, len(frame.Layers)),
		}

		for _, l := range frame.Layers {
			sub.Layers = append(sub.Layers, l.layer())
		}

		subs[i] = sub
	}

	return subs
}

func (l ScenarioLayer) layer() model.Layer {
	switch l.kind() {
	case layerProjection:
		views := make([]model.View, len(l.Views))
		for i, v := range l.Views {
			views[i] = model.View{
				Pose: v.pose(),
				Fov: model.Fov{
					AngleLeft:  radians(v.Fov.Left),
					AngleRight: radians(v.Fov.Right),
					AngleUp:    radians(v.Fov.Up),
					AngleDown:  radians(v.Fov.Down),
				},
				SubImage: model.SwapchainSubImage{ImageArrayIndex: uint32(i)},
			}
		}

		return &model.ProjectionLayer{Space: model.Space(l.Space), Views: views}
	case layerQuad:
		return &model.QuadLayer{
			Space:  model.Space(l.Space),
			Pose:   l.Pose.pose(),
			Width:  l.Width,
			Height: l.Height,
		}
	case layerOpaque:
		return &model.OpaqueLayer{StructureType: model.StructureType(l.StructureType)}
	default:
		return nil
	}
}

// kind returns the layer type in lower case. A null type names the null layer, a missing one
// gives an empty string.
func (l ScenarioLayer) kind() string {
	switch {
	case l.Type.Kind == 0:
		return ""
	case l.Type.Kind == yaml.ScalarNode && l.Type.ShortTag() == "!!null":
		return layerNull
	default:
		return strings.ToLower(l.Type.Value)
	}
}

func (v ScenarioView) pose() model.Pose {
	return model.Pose{
		Orientation: orientation.FromEuler(orientation.EulerAngles{
			Yaw:   radians(v.Yaw),
			Pitch: radians(v.Pitch),
			Roll:  radians(v.Roll),
		}),
		Position: orientation.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]},
	}
}

func radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

func degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}
