package model

import (
	"github.com/askiada/headturn/pkg/orientation"
)

// Pose is an XrPosef.
type Pose struct {
	Orientation orientation.Quat
	Position    orientation.Vec3
}

// Fov is an XrFovf, angles in radians.
type Fov struct {
	AngleLeft  float32
	AngleRight float32
	AngleUp    float32
	AngleDown  float32
}

// Rect2Di is an XrRect2Di.
type Rect2Di struct {
	OffsetX, OffsetY int32
	Width, Height    int32
}

// SwapchainSubImage is an XrSwapchainSubImage.
type SwapchainSubImage struct {
	Swapchain       Swapchain
	ImageRect       Rect2Di
	ImageArrayIndex uint32
}

// View is an XrCompositionLayerProjectionView, the render target of one eye.
type View struct {
	Next     any
	Pose     Pose
	Fov      Fov
	SubImage SwapchainSubImage
}

// LayerFlags are XrCompositionLayerFlags.
type LayerFlags uint64

// EyeVisibility is an XrEyeVisibility.
type EyeVisibility uint32

// Layer is a composition layer. The set of implementations is closed: ProjectionLayer,
// QuadLayer and OpaqueLayer for every other layer type.
type Layer interface {
	// Type returns the structure type tag of the layer.
	Type() StructureType

	layer()
}

// ProjectionLayer is an XrCompositionLayerProjection.
type ProjectionLayer struct {
	Next       any
	LayerFlags LayerFlags
	Space      Space
	Views      []View
}

// Type implements Layer.
func (*ProjectionLayer) Type() StructureType { return TypeCompositionLayerProjection }

func (*ProjectionLayer) layer() {}

// QuadLayer is an XrCompositionLayerQuad.
type QuadLayer struct {
	Next          any
	LayerFlags    LayerFlags
	Space         Space
	EyeVisibility EyeVisibility
	SubImage      SwapchainSubImage
	Pose          Pose
	Width         float32
	Height        float32
}

// Type implements Layer.
func (*QuadLayer) Type() StructureType { return TypeCompositionLayerQuad }

func (*QuadLayer) layer() {}

// OpaqueLayer carries any layer the pipeline does not interpret, identified only by its tag.
type OpaqueLayer struct {
	StructureType StructureType
	Payload       any
}

// Type implements Layer.
func (l *OpaqueLayer) Type() StructureType {
	if l == nil {
		return TypeUnknown
	}

	return l.StructureType
}

func (*OpaqueLayer) layer() {}

// IsNil reports whether l is a null layer: a nil interface or a nil pointer of a known variant.
func IsNil(l Layer) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *ProjectionLayer:
		return v == nil
	case *QuadLayer:
		return v == nil
	case *OpaqueLayer:
		return v == nil
	default:
		return false
	}
}

// FrameSubmission is an XrFrameEndInfo. The layer count is len(Layers).
type FrameSubmission struct {
	Next                 any
	DisplayTime          Time
	EnvironmentBlendMode EnvironmentBlendMode
	Layers               []Layer
}

// EnvironmentBlendMode is an XrEnvironmentBlendMode.
type EnvironmentBlendMode uint32

// Environment blend modes.
const (
	BlendModeOpaque     EnvironmentBlendMode = 1
	BlendModeAdditive   EnvironmentBlendMode = 2
	BlendModeAlphaBlend EnvironmentBlendMode = 3
)
