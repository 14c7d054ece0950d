package pipeline

import (
	"github.com/chewxy/math32"
)

// identityTolerance is how close to one a factor must be to leave frames untouched.
const identityTolerance = 1e-3

// FactorSource provides the amplification factor. It is asked once per frame.
type FactorSource interface {
	Amplification() float32
}

// ConstantFactor is a FactorSource that never changes.
type ConstantFactor float32

// Amplification implements FactorSource.
func (c ConstantFactor) Amplification() float32 {
	return float32(c)
}

// FactorFunc adapts a function to FactorSource.
type FactorFunc func() float32

// Amplification implements FactorSource.
func (f FactorFunc) Amplification() float32 {
	return f()
}

// IsIdentity reports whether factor leaves orientations unchanged.
func IsIdentity(factor float32) bool {
	return math32.Abs(factor-1) < identityTolerance
}
