package layer

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/askiada/headturn/pkg/pipeline"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// Layer is the API layer as seen by the loader.
type Layer struct {
	name     string
	pipe     *pipeline.Pipeline
	registry *Registry
	logger   *zap.Logger
}

// Option configures a Layer.
type Option func(l *Layer)

// WithLogger sets the logger. Defaults to zap.NewNop.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Layer) {
		l.logger = logger
	}
}

// WithRegistry shares registry between layers. Defaults to a new registry per layer.
func WithRegistry(registry *Registry) Option {
	return func(l *Layer) {
		l.registry = registry
	}
}

// WithName changes the name the layer expects from the loader. Defaults to Name.
func WithName(name string) Option {
	return func(l *Layer) {
		l.name = name
	}
}

// New creates a layer filtering frames through pipe.
func New(pipe *pipeline.Pipeline, opts ...Option) (*Layer, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	l := &Layer{
		name:   Name,
		pipe:   pipe,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.registry == nil {
		l.registry = NewRegistry()
	}

	return l, nil
}

// Registry returns the contexts of the instances created through the layer.
func (l *Layer) Registry() *Registry {
	return l.registry
}

// NegotiateLoaderAPILayerInterface implements xrNegotiateLoaderApiLayerInterface. On success
// it fills request with the layer's entry points. Any mismatch fails the initialization and
// leaves request untouched.
func (l *Layer) NegotiateLoaderAPILayerInterface(info *LoaderInfo, layerName string, request *APILayerRequest) model.Result {
	err := l.validateNegotiation(info, layerName, request)
	if err != nil {
		l.logger.Error("unable to negotiate loader interface", zap.String("layer", layerName), zap.Error(err))

		return model.ResultErrorInitializationFailed
	}

	request.LayerInterfaceVersion = CurrentLoaderAPILayerVersion
	request.LayerAPIVersion = CurrentAPIVersion
	request.GetInstanceProcAddr = l.GetInstanceProcAddr
	request.CreateAPILayerInstance = l.CreateAPILayerInstance

	l.logger.Debug("negotiated loader interface",
		zap.String("layer", layerName),
		zap.Uint32("interface_version", CurrentLoaderAPILayerVersion),
		zap.Uint64("api_version", uint64(CurrentAPIVersion)),
	)

	return model.ResultSuccess
}

func (l *Layer) validateNegotiation(info *LoaderInfo, layerName string, request *APILayerRequest) error {
	switch {
	case info == nil:
		return errors.Wrap(ErrLoaderInfoInvalid, "missing")
	case info.StructType != LoaderStructLoaderInfo:
		return errors.Wrapf(ErrLoaderInfoInvalid, "struct type %d", info.StructType)
	case info.StructVersion != LoaderInfoStructVersion:
		return errors.Wrapf(ErrLoaderInfoInvalid, "struct version %d", info.StructVersion)
	case info.StructSize != LoaderInfoSize:
		return errors.Wrapf(ErrLoaderInfoInvalid, "struct size %d", info.StructSize)
	case request == nil:
		return errors.Wrap(ErrLayerRequestInvalid, "missing")
	case request.StructType != LoaderStructAPILayerRequest:
		return errors.Wrapf(ErrLayerRequestInvalid, "struct type %d", request.StructType)
	case request.StructVersion != APILayerInfoStructVersion:
		return errors.Wrapf(ErrLayerRequestInvalid, "struct version %d", request.StructVersion)
	case request.StructSize != APILayerRequestSize:
		return errors.Wrapf(ErrLayerRequestInvalid, "struct size %d", request.StructSize)
	case info.MinInterfaceVersion > CurrentLoaderAPILayerVersion,
		info.MaxInterfaceVersion != CurrentLoaderAPILayerVersion:
		return errors.Wrapf(ErrInterfaceVersionUnsupported, "loader supports %d to %d",
			info.MinInterfaceVersion, info.MaxInterfaceVersion)
	case info.MaxAPIVersion < CurrentAPIVersion, info.MinAPIVersion > CurrentAPIVersion:
		return errors.Wrapf(ErrAPIVersionUnsupported, "loader supports %d.%d to %d.%d",
			info.MinAPIVersion.Major(), info.MinAPIVersion.Minor(),
			info.MaxAPIVersion.Major(), info.MaxAPIVersion.Minor())
	case layerName != l.name:
		return errors.Wrapf(ErrLayerNameMismatch, "got %q", layerName)
	}

	return nil
}

// CreateAPILayerInstance implements xrCreateApiLayerInstance. The instance is created by the
// rest of the chain; a failure there is returned as is and no context is kept.
func (l *Layer) CreateAPILayerInstance(info *InstanceCreateInfo, layerInfo *APILayerCreateInfo) (model.Instance, model.Result) {
	err := l.validateCreateInfo(layerInfo)
	if err != nil {
		l.logger.Error("unable to create api layer instance", zap.Error(err))

		return model.NullHandle, model.ResultErrorInitializationFailed
	}

	next := layerInfo.NextInfo

	// The layers below only see the rest of the chain.
	forwarded := *layerInfo
	forwarded.NextInfo = next.Next

	instance, res := next.NextCreateAPILayerInstance(info, &forwarded)
	if res.Failed() {
		l.logger.Warn("next layer failed to create instance", zap.Stringer("result", res))

		return instance, res
	}

	ctx := newContext(instance, next.NextGetInstanceProcAddr, l.pipe, l.registry, l.logger)
	ctx.loadDispatchTable()

	err = l.registry.Create(ctx)
	if err != nil {
		l.logger.Error("unable to register instance context", zap.Uint64("instance", uint64(instance)), zap.Error(err))

		// A failed creation leaves no instance behind.
		if ctx.dispatch.destroyInstance != nil {
			res = ctx.dispatch.destroyInstance(instance)
			if res.Failed() {
				l.logger.Warn("next layer failed to destroy instance", zap.Stringer("result", res))
			}
		}

		return model.NullHandle, model.ResultErrorInitializationFailed
	}

	l.logger.Info("created instance context", zap.Uint64("instance", uint64(instance)))

	return instance, model.ResultSuccess
}

func (l *Layer) validateCreateInfo(layerInfo *APILayerCreateInfo) error {
	switch {
	case layerInfo == nil:
		return errors.Wrap(ErrCreateInfoInvalid, "missing")
	case layerInfo.StructType != LoaderStructAPILayerCreateInfo:
		return errors.Wrapf(ErrCreateInfoInvalid, "struct type %d", layerInfo.StructType)
	case layerInfo.StructVersion < APILayerCreateInfoStructVersion:
		return errors.Wrapf(ErrCreateInfoInvalid, "struct version %d", layerInfo.StructVersion)
	case layerInfo.StructSize < APILayerCreateInfoSize:
		return errors.Wrapf(ErrCreateInfoInvalid, "struct size %d", layerInfo.StructSize)
	}

	next := layerInfo.NextInfo

	switch {
	case next == nil:
		return errors.Wrap(ErrNextInfoInvalid, "missing")
	case next.StructType != LoaderStructAPILayerNextInfo:
		return errors.Wrapf(ErrNextInfoInvalid, "struct type %d", next.StructType)
	case next.StructVersion < APILayerNextInfoStructVersion:
		return errors.Wrapf(ErrNextInfoInvalid, "struct version %d", next.StructVersion)
	case next.StructSize < APILayerNextInfoSize:
		return errors.Wrapf(ErrNextInfoInvalid, "struct size %d", next.StructSize)
	case next.LayerName != l.name:
		return errors.Wrapf(ErrLayerNameMismatch, "next info for %q", next.LayerName)
	case next.NextGetInstanceProcAddr == nil:
		return errors.Wrap(ErrNextInfoInvalid, "missing next xrGetInstanceProcAddr")
	case next.NextCreateAPILayerInstance == nil:
		return errors.Wrap(ErrNextInfoInvalid, "missing next xrCreateApiLayerInstance")
	}

	return nil
}

// GetInstanceProcAddr implements xrGetInstanceProcAddr for the instances created through the layer.
func (l *Layer) GetInstanceProcAddr(instance model.Instance, name string) (Function, model.Result) {
	ctx, err := l.registry.Get(instance)
	if err != nil {
		l.logger.Debug("unable to resolve function", zap.String("name", name), zap.Error(err))

		return nil, model.ResultErrorHandleInvalid
	}

	return ctx.GetInstanceProcAddr(name)
}
