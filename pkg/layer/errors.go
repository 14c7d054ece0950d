package layer

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet           = errors.New("pipeline must be set")
	ErrLoaderInfoInvalid           = errors.New("invalid loader info")
	ErrLayerRequestInvalid         = errors.New("invalid api layer request")
	ErrInterfaceVersionUnsupported = errors.New("loader interface version unsupported")
	ErrAPIVersionUnsupported       = errors.New("api version unsupported")
	ErrLayerNameMismatch           = errors.New("layer name mismatch")
	ErrCreateInfoInvalid           = errors.New("invalid api layer create info")
	ErrNextInfoInvalid             = errors.New("invalid api layer next info")
	ErrInstanceExists              = errors.New("instance already has a context")
	ErrInstanceNotFound            = errors.New("instance has no context")
)
