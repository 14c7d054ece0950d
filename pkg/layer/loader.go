package layer

import (
	"unsafe"

	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Name is the name the layer is registered under in its manifest.
const Name = "XR_APILAYER_HEADTURN_amplify"

// LoaderStructType tags the structures exchanged with the loader.
type LoaderStructType uint32

// Loader interface structure types.
const (
	LoaderStructUninitialized      LoaderStructType = 0
	LoaderStructLoaderInfo         LoaderStructType = 1
	LoaderStructAPILayerRequest    LoaderStructType = 2
	LoaderStructRuntimeRequest     LoaderStructType = 3
	LoaderStructAPILayerCreateInfo LoaderStructType = 4
	LoaderStructAPILayerNextInfo   LoaderStructType = 5
)

// Versions of the loader interface structures this layer was written against.
const (
	LoaderInfoStructVersion         = 1
	APILayerInfoStructVersion       = 1
	APILayerCreateInfoStructVersion = 1
	APILayerNextInfoStructVersion   = 1
	CurrentLoaderAPILayerVersion    = 1
)

// Version is an XrVersion: 16 bits major, 16 bits minor, 32 bits patch.
type Version uint64

// MakeVersion packs a version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

// Major returns the major version.
func (v Version) Major() uint32 { return uint32(v >> 48) }

// Minor returns the minor version.
func (v Version) Minor() uint32 { return uint32(v>>32) & 0xffff }

// Patch returns the patch version.
func (v Version) Patch() uint32 { return uint32(v) }

// CurrentAPIVersion is the OpenXR API version the layer implements.
var CurrentAPIVersion = MakeVersion(1, 0, 34)

// Function is a function pointer handed to or received from the loader. Its dynamic type is
// one of the *Func types of this package or of the model package.
type Function any

// GetInstanceProcAddrFunc is the signature of xrGetInstanceProcAddr.
type GetInstanceProcAddrFunc func(instance model.Instance, name string) (Function, model.Result)

// CreateAPILayerInstanceFunc is the signature of xrCreateApiLayerInstance.
type CreateAPILayerInstanceFunc func(info *InstanceCreateInfo, layerInfo *APILayerCreateInfo) (model.Instance, model.Result)

// LoaderInfo is an XrNegotiateLoaderInfo.
type LoaderInfo struct {
	StructType          LoaderStructType
	StructVersion       uint32
	StructSize          uintptr
	MinInterfaceVersion uint32
	MaxInterfaceVersion uint32
	MinAPIVersion       Version
	MaxAPIVersion       Version
}

// APILayerRequest is an XrNegotiateApiLayerRequest, filled by the layer on success.
type APILayerRequest struct {
	StructType             LoaderStructType
	StructVersion          uint32
	StructSize             uintptr
	LayerInterfaceVersion  uint32
	LayerAPIVersion        Version
	GetInstanceProcAddr    GetInstanceProcAddrFunc
	CreateAPILayerInstance CreateAPILayerInstanceFunc
}

// APILayerNextInfo is an XrApiLayerNextInfo, one link of the chain below a layer.
type APILayerNextInfo struct {
	StructType                 LoaderStructType
	StructVersion              uint32
	StructSize                 uintptr
	LayerName                  string
	NextGetInstanceProcAddr    GetInstanceProcAddrFunc
	NextCreateAPILayerInstance CreateAPILayerInstanceFunc
	Next                       *APILayerNextInfo
}

// APILayerCreateInfo is an XrApiLayerCreateInfo.
type APILayerCreateInfo struct {
	StructType           LoaderStructType
	StructVersion        uint32
	StructSize           uintptr
	LoaderInstance       any
	SettingsFileLocation string
	NextInfo             *APILayerNextInfo
}

// InstanceCreateInfo is the part of XrInstanceCreateInfo the layer forwards.
type InstanceCreateInfo struct {
	ApplicationName       string
	ApplicationVersion    uint32
	APIVersion            Version
	EnabledAPILayerNames  []string
	EnabledExtensionNames []string
}

// Sizes the loader must announce in the StructSize fields.
const (
	LoaderInfoSize         = unsafe.Sizeof(LoaderInfo{})
	APILayerRequestSize    = unsafe.Sizeof(APILayerRequest{})
	APILayerNextInfoSize   = unsafe.Sizeof(APILayerNextInfo{})
	APILayerCreateInfoSize = unsafe.Sizeof(APILayerCreateInfo{})
)

// NewLoaderInfo returns the loader info of a loader supporting exactly this layer's versions.
func NewLoaderInfo() *LoaderInfo {
	return &LoaderInfo{
		StructType:          LoaderStructLoaderInfo,
		StructVersion:       LoaderInfoStructVersion,
		StructSize:          LoaderInfoSize,
		MinInterfaceVersion: CurrentLoaderAPILayerVersion,
		MaxInterfaceVersion: CurrentLoaderAPILayerVersion,
		MinAPIVersion:       CurrentAPIVersion,
		MaxAPIVersion:       CurrentAPIVersion,
	}
}

// NewAPILayerRequest returns an empty request with a valid header.
func NewAPILayerRequest() *APILayerRequest {
	return &APILayerRequest{
		StructType:    LoaderStructAPILayerRequest,
		StructVersion: APILayerInfoStructVersion,
		StructSize:    APILayerRequestSize,
	}
}

// NewAPILayerNextInfo returns the link to the functions of the layer (or runtime) below layerName.
func NewAPILayerNextInfo(layerName string, getInstanceProcAddr GetInstanceProcAddrFunc,
	createAPILayerInstance CreateAPILayerInstanceFunc,
) *APILayerNextInfo {
	return &APILayerNextInfo{
		StructType:                 LoaderStructAPILayerNextInfo,
		StructVersion:              APILayerNextInfoStructVersion,
		StructSize:                 APILayerNextInfoSize,
		LayerName:                  layerName,
		NextGetInstanceProcAddr:    getInstanceProcAddr,
		NextCreateAPILayerInstance: createAPILayerInstance,
	}
}

// NewAPILayerCreateInfo returns a create info starting the chain at next.
func NewAPILayerCreateInfo(next *APILayerNextInfo) *APILayerCreateInfo {
	return &APILayerCreateInfo{
		StructType:    LoaderStructAPILayerCreateInfo,
		StructVersion: APILayerCreateInfoStructVersion,
		StructSize:    APILayerCreateInfoSize,
		NextInfo:      next,
	}
}
