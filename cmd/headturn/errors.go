package main

import (
	"github.com/pkg/errors"
)

var (
	ErrNoFrames             = errors.New("scenario has no frames")
	ErrUnknownLayerType     = errors.New("unknown layer type")
	ErrUnknownBlendMode     = errors.New("unknown environment blend mode")
	ErrInvalidAmplify       = errors.New("amplification factor must be strictly positive")
	ErrInvalidSessions      = errors.New("at least one session is required")
	ErrFrameRejected        = errors.New("frame rejected by the runtime")
	ErrMissingStructureType = errors.New("opaque layer needs a structure type")
)
