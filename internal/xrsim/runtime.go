// Package xrsim simulates the OpenXR loader and runtime around the layer, in process. The
// runtime records every frame it receives so that callers can see what the compositor would get.
package xrsim

import (
	"sync"

	"github.com/askiada/headturn/pkg/layer"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Runtime is the bottom of the layer chain. It is safe for concurrent use.
type Runtime struct {
	mu             sync.Mutex
	handles        uint64
	instances      map[model.Instance]struct{}
	sessions       map[model.Session]model.Instance
	frames         map[model.Session][]model.FrameSubmission
	endFrameResult model.Result
}

// NewRuntime creates a runtime without instances.
func NewRuntime() *Runtime {
	return &Runtime{
		instances: make(map[model.Instance]struct{}),
		sessions:  make(map[model.Session]model.Instance),
		frames:    make(map[model.Session][]model.FrameSubmission),
	}
}

// SetEndFrameResult makes xrEndFrame answer res for valid sessions.
func (r *Runtime) SetEndFrameResult(res model.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endFrameResult = res
}

func (r *Runtime) nextHandle() uint64 {
	r.handles++

	return r.handles
}

// GetInstanceProcAddr implements xrGetInstanceProcAddr.
func (r *Runtime) GetInstanceProcAddr(instance model.Instance, name string) (layer.Function, model.Result) {
	r.mu.Lock()
	_, ok := r.instances[instance]
	r.mu.Unlock()

	if !ok {
		return nil, model.ResultErrorHandleInvalid
	}

	switch name {
	case layer.FuncEndFrame:
		return model.EndFrameFunc(r.EndFrame), model.ResultSuccess
	case layer.FuncDestroySession:
		return model.DestroySessionFunc(r.DestroySession), model.ResultSuccess
	case layer.FuncDestroyInstance:
		return model.DestroyInstanceFunc(r.DestroyInstance), model.ResultSuccess
	default:
		return nil, model.ResultErrorFunctionUnsupported
	}
}

// CreateAPILayerInstance terminates the chain and creates the instance.
func (r *Runtime) CreateAPILayerInstance(_ *layer.InstanceCreateInfo, layerInfo *layer.APILayerCreateInfo) (model.Instance, model.Result) {
	if layerInfo == nil || layerInfo.NextInfo != nil {
		return model.NullHandle, model.ResultErrorValidationFailure
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	instance := model.Instance(r.nextHandle())
	r.instances[instance] = struct{}{}

	return instance, model.ResultSuccess
}

// CreateSession implements xrCreateSession.
func (r *Runtime) CreateSession(instance model.Instance) (model.Session, model.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[instance]; !ok {
		return model.NullHandle, model.ResultErrorHandleInvalid
	}

	session := model.Session(r.nextHandle())
	r.sessions[session] = instance

	return session, model.ResultSuccess
}

// EndFrame implements xrEndFrame and records a copy of the submission.
func (r *Runtime) EndFrame(session model.Session, frameEndInfo *model.FrameSubmission) model.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session]; !ok {
		return model.ResultErrorHandleInvalid
	}
	if frameEndInfo == nil {
		return model.ResultErrorValidationFailure
	}

	r.frames[session] = append(r.frames[session], cloneSubmission(frameEndInfo))

	return r.endFrameResult
}

// DestroySession implements xrDestroySession.
func (r *Runtime) DestroySession(session model.Session) model.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session]; !ok {
		return model.ResultErrorHandleInvalid
	}

	delete(r.sessions, session)

	return model.ResultSuccess
}

// DestroyInstance implements xrDestroyInstance and its sessions.
func (r *Runtime) DestroyInstance(instance model.Instance) model.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[instance]; !ok {
		return model.ResultErrorHandleInvalid
	}

	for session, owner := range r.sessions {
		if owner == instance {
			delete(r.sessions, session)
		}
	}
	delete(r.instances, instance)

	return model.ResultSuccess
}

// Frames returns the frames received for session, in order.
func (r *Runtime) Frames(session model.Session) []model.FrameSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]model.FrameSubmission(nil), r.frames[session]...)
}

// cloneSubmission copies what the layer may have placed in reusable buffers.
func cloneSubmission(sub *model.FrameSubmission) model.FrameSubmission {
	res := *sub
	res.Layers = make([]model.Layer, len(sub.Layers))

	for i, l := range sub.Layers {
		src, ok := l.(*model.ProjectionLayer)
		if !ok || src == nil {
			res.Layers[i] = l

			continue
		}

		cp := *src
		cp.Views = append([]model.View(nil), src.Views...)
		res.Layers[i] = &cp
	}

	return res
}
