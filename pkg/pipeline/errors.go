package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrSourceMustBeSet  = errors.New("factor source must be set")
	ErrNegativeCapacity = errors.New("capacity must not be negative")
)
