package model

import "strconv"

// Handle is an opaque OpenXR object handle.
type Handle uint64

// Instance is an XrInstance handle.
type Instance Handle

// Session is an XrSession handle.
type Session Handle

// Space is an XrSpace handle.
type Space Handle

// Swapchain is an XrSwapchain handle.
type Swapchain Handle

// NullHandle is XR_NULL_HANDLE.
const NullHandle = 0

// Time is an XrTime, nanoseconds in the runtime clock domain.
type Time int64

// StructureType tags every OpenXR structure.
type StructureType uint32

// Structure types the layer knows about.
const (
	TypeUnknown                        StructureType = 0
	TypeFrameEndInfo                   StructureType = 12
	TypeCompositionLayerProjection     StructureType = 35
	TypeCompositionLayerQuad           StructureType = 36
	TypeCompositionLayerProjectionView StructureType = 48
	TypeCompositionLayerCubeKHR        StructureType = 1000006000
	TypeCompositionLayerCylinderKHR    StructureType = 1000017000
	TypeCompositionLayerEquirectKHR    StructureType = 1000018000
)

// String implements fmt.Stringer.
func (t StructureType) String() string {
	switch t {
	case TypeFrameEndInfo:
		return "XR_TYPE_FRAME_END_INFO"
	case TypeCompositionLayerProjection:
		return "XR_TYPE_COMPOSITION_LAYER_PROJECTION"
	case TypeCompositionLayerQuad:
		return "XR_TYPE_COMPOSITION_LAYER_QUAD"
	case TypeCompositionLayerProjectionView:
		return "XR_TYPE_COMPOSITION_LAYER_PROJECTION_VIEW"
	case TypeCompositionLayerCubeKHR:
		return "XR_TYPE_COMPOSITION_LAYER_CUBE_KHR"
	case TypeCompositionLayerCylinderKHR:
		return "XR_TYPE_COMPOSITION_LAYER_CYLINDER_KHR"
	case TypeCompositionLayerEquirectKHR:
		return "XR_TYPE_COMPOSITION_LAYER_EQUIRECT_KHR"
	default:
		return "XrStructureType(" + strconv.FormatUint(uint64(t), 10) + ")"
	}
}

// Result is an XrResult. Negative values are failures.
type Result int32

// Result codes produced or forwarded by the layer.
const (
	ResultSuccess                   Result = 0
	ResultErrorValidationFailure    Result = -1
	ResultErrorRuntimeFailure       Result = -2
	ResultErrorInitializationFailed Result = -6
	ResultErrorFunctionUnsupported  Result = -7
	ResultErrorHandleInvalid        Result = -12
	ResultErrorSessionLost          Result = -17
)

// Failed reports whether r is an error code.
func (r Result) Failed() bool {
	return r < 0
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "XR_SUCCESS"
	case ResultErrorValidationFailure:
		return "XR_ERROR_VALIDATION_FAILURE"
	case ResultErrorRuntimeFailure:
		return "XR_ERROR_RUNTIME_FAILURE"
	case ResultErrorInitializationFailed:
		return "XR_ERROR_INITIALIZATION_FAILED"
	case ResultErrorFunctionUnsupported:
		return "XR_ERROR_FUNCTION_UNSUPPORTED"
	case ResultErrorHandleInvalid:
		return "XR_ERROR_HANDLE_INVALID"
	case ResultErrorSessionLost:
		return "XR_ERROR_SESSION_LOST"
	default:
		return "XrResult(" + strconv.Itoa(int(r)) + ")"
	}
}

// EndFrameFunc is the signature of xrEndFrame.
type EndFrameFunc func(session Session, frameEndInfo *FrameSubmission) Result

// DestroyInstanceFunc is the signature of xrDestroyInstance.
type DestroyInstanceFunc func(instance Instance) Result

// DestroySessionFunc is the signature of xrDestroySession.
type DestroySessionFunc func(session Session) Result
