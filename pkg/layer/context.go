package layer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Names of the intercepted functions.
const (
	FuncGetInstanceProcAddr = "xrGetInstanceProcAddr"
	FuncDestroyInstance     = "xrDestroyInstance"
	FuncDestroySession      = "xrDestroySession"
	FuncEndFrame            = "xrEndFrame"
)

// dispatchTable holds the next layer's implementation of the intercepted functions. A nil
// entry is a function the chain below does not provide.
type dispatchTable struct {
	destroyInstance model.DestroyInstanceFunc
	destroySession  model.DestroySessionFunc
	endFrame        model.EndFrameFunc
}

// Context is the state of the layer for one instance.
type Context struct {
	instance model.Instance
	next     GetInstanceProcAddrFunc
	dispatch dispatchTable
	shims    map[string]Function
	pipe     *pipeline.Pipeline
	registry *Registry
	logger   *zap.Logger

	mu      sync.RWMutex
	filters map[model.Session]*pipeline.Filter
}

func newContext(instance model.Instance, next GetInstanceProcAddrFunc, pipe *pipeline.Pipeline,
	registry *Registry, logger *zap.Logger,
) *Context {
	ctx := &Context{
		instance: instance,
		next:     next,
		pipe:     pipe,
		registry: registry,
		logger:   logger.With(zap.Uint64("instance", uint64(instance))),
		filters:  make(map[model.Session]*pipeline.Filter),
	}

	ctx.shims = map[string]Function{
		FuncGetInstanceProcAddr: GetInstanceProcAddrFunc(ctx.getInstanceProcAddr),
		FuncDestroyInstance:     model.DestroyInstanceFunc(ctx.DestroyInstance),
		FuncDestroySession:      model.DestroySessionFunc(ctx.DestroySession),
		FuncEndFrame:            model.EndFrameFunc(ctx.EndFrame),
	}

	return ctx
}

// Instance returns the instance of the context.
func (c *Context) Instance() model.Instance {
	return c.instance
}

// loadDispatchTable resolves the intercepted functions in the chain below.
func (c *Context) loadDispatchTable() {
	resolve := func(name string) Function {
		fn, res := c.next(c.instance, name)
		if res.Failed() || fn == nil {
			c.logger.Warn("next layer does not provide function", zap.String("name", name), zap.Stringer("result", res))

			return nil
		}

		return fn
	}

	if fn, ok := resolve(FuncDestroyInstance).(model.DestroyInstanceFunc); ok {
		c.dispatch.destroyInstance = fn
	}
	if fn, ok := resolve(FuncDestroySession).(model.DestroySessionFunc); ok {
		c.dispatch.destroySession = fn
	}
	if fn, ok := resolve(FuncEndFrame).(model.EndFrameFunc); ok {
		c.dispatch.endFrame = fn
	}
}

// GetInstanceProcAddr returns the layer's implementation of name when it intercepts it, and
// the next layer's one otherwise.
func (c *Context) GetInstanceProcAddr(name string) (Function, model.Result) {
	if fn, ok := c.shims[name]; ok {
		return fn, model.ResultSuccess
	}

	return c.next(c.instance, name)
}

func (c *Context) getInstanceProcAddr(instance model.Instance, name string) (Function, model.Result) {
	if instance != c.instance {
		return nil, model.ResultErrorHandleInvalid
	}

	return c.GetInstanceProcAddr(name)
}

// EndFrame implements xrEndFrame: the submission is filtered by the session's filter and
// handed to the next layer, whose result is returned as is.
func (c *Context) EndFrame(session model.Session, frameEndInfo *model.FrameSubmission) model.Result {
	return c.filter(session).EndFrame(frameEndInfo, c.dispatch.endFrame)
}

// DestroySession implements xrDestroySession and drops the session's filter.
func (c *Context) DestroySession(session model.Session) model.Result {
	res := model.ResultErrorFunctionUnsupported
	if c.dispatch.destroySession != nil {
		res = c.dispatch.destroySession(session)
	}

	c.mu.Lock()
	delete(c.filters, session)
	c.mu.Unlock()

	return res
}

// DestroyInstance implements xrDestroyInstance. The context is released whatever the next
// layer answers, and its result is returned as is.
func (c *Context) DestroyInstance(instance model.Instance) model.Result {
	res := model.ResultErrorFunctionUnsupported
	if c.dispatch.destroyInstance != nil {
		res = c.dispatch.destroyInstance(instance)
	}

	err := c.registry.Destroy(c.instance)
	if err != nil {
		c.logger.Warn("unable to release instance context", zap.Error(err))
	} else {
		c.logger.Info("released instance context", zap.Stringer("result", res))
	}

	return res
}

// Sessions returns the number of sessions with a filter.
func (c *Context) Sessions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.filters)
}

// filter returns the filter of session, creating it on its first frame.
func (c *Context) filter(session model.Session) *pipeline.Filter {
	c.mu.RLock()
	f, ok := c.filters[session]
	c.mu.RUnlock()

	if ok {
		return f
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok = c.filters[session]; ok {
		return f
	}

	f = c.pipe.NewFilter(session)
	c.filters[session] = f
	c.logger.Debug("created session filter", zap.Uint64("session", uint64(session)))

	return f
}

func (c *Context) releaseSessions() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.filters)
}
