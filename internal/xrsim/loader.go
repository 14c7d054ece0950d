package xrsim

import (
	"github.com/pkg/errors"

	"github.com/askiada/headturn/pkg/layer"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

var (
	ErrNegotiationFailed = errors.New("layer negotiation failed")
	ErrCallFailed        = errors.New("call failed")
)

// Loader drives a single layer on top of a Runtime the way the OpenXR loader does.
type Loader struct {
	runtime *Runtime
	request *layer.APILayerRequest
}

// NewLoader negotiates with l.
func NewLoader(runtime *Runtime, l *layer.Layer) (*Loader, error) {
	request := layer.NewAPILayerRequest()

	res := l.NegotiateLoaderAPILayerInterface(layer.NewLoaderInfo(), layer.Name, request)
	if res.Failed() {
		return nil, errors.Wrap(ErrNegotiationFailed, res.String())
	}

	return &Loader{runtime: runtime, request: request}, nil
}

// CreateInstance creates an instance through the layer.
func (ld *Loader) CreateInstance(info *layer.InstanceCreateInfo) (model.Instance, error) {
	next := layer.NewAPILayerNextInfo(layer.Name, ld.runtime.GetInstanceProcAddr, ld.runtime.CreateAPILayerInstance)

	instance, res := ld.request.CreateAPILayerInstance(info, layer.NewAPILayerCreateInfo(next))
	if res.Failed() {
		return instance, errors.Wrapf(ErrCallFailed, "xrCreateInstance: %s", res)
	}

	return instance, nil
}

// CreateSession creates a session. The layer does not intercept it.
func (ld *Loader) CreateSession(instance model.Instance) (model.Session, error) {
	session, res := ld.runtime.CreateSession(instance)
	if res.Failed() {
		return session, errors.Wrapf(ErrCallFailed, "xrCreateSession: %s", res)
	}

	return session, nil
}

// EndFrame submits a frame through the layer.
func (ld *Loader) EndFrame(instance model.Instance, session model.Session, sub *model.FrameSubmission) model.Result {
	fn, res := ld.request.GetInstanceProcAddr(instance, layer.FuncEndFrame)
	if res.Failed() {
		return res
	}

	endFrame, ok := fn.(model.EndFrameFunc)
	if !ok {
		return model.ResultErrorFunctionUnsupported
	}

	return endFrame(session, sub)
}

// DestroySession destroys a session through the layer.
func (ld *Loader) DestroySession(instance model.Instance, session model.Session) model.Result {
	fn, res := ld.request.GetInstanceProcAddr(instance, layer.FuncDestroySession)
	if res.Failed() {
		return res
	}

	destroySession, ok := fn.(model.DestroySessionFunc)
	if !ok {
		return model.ResultErrorFunctionUnsupported
	}

	return destroySession(session)
}

// DestroyInstance destroys an instance through the layer.
func (ld *Loader) DestroyInstance(instance model.Instance) model.Result {
	fn, res := ld.request.GetInstanceProcAddr(instance, layer.FuncDestroyInstance)
	if res.Failed() {
		return res
	}

	destroyInstance, ok := fn.(model.DestroyInstanceFunc)
	if !ok {
		return model.ResultErrorFunctionUnsupported
	}

	return destroyInstance(instance)
}
