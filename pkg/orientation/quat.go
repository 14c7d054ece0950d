package orientation

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// Identity returns the identity rotation.
func Identity() Quat {
	return Quat{W: 1}
}

// Forward is the direction the head looks at when the orientation is the identity.
var Forward = Vec3{Z: -1}

// Length returns the magnitude of q.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(q.lengthSq()))
}

// lengthSq accumulates in float64 so that badly scaled inputs do not overflow.
func (q Quat) lengthSq() float64 {
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)

	return x*x + y*y + z*z + w*w
}

// Normalize returns q scaled to unit length. A zero, negative or non-finite magnitude gives
// the identity.
func (q Quat) Normalize() Quat {
	magSq := q.lengthSq()
	if !(magSq > 0) || math.IsInf(magSq, 1) {
		return Identity()
	}

	inv := float32(1 / math.Sqrt(magSq))

	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul returns the Hamilton product q*r, the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the conjugate of q, its inverse when q is a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the 4D dot product of q and r.
func (q Quat) Dot(r Quat) float32 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// Rotate applies the unit quaternion q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2u x (u x v), with u the vector part of q.
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)

	return Vec3{
		X: v.X + q.W*tx + (q.Y*tz - q.Z*ty),
		Y: v.Y + q.W*ty + (q.Z*tx - q.X*tz),
		Z: v.Z + q.W*tz + (q.X*ty - q.Y*tx),
	}
}

// FromAxisAngle returns the rotation of angle radians around the unit axis.
func FromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)

	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// Yaw returns the rotation of angle radians around the world up axis. Positive angles turn
// the head to the left.
func Yaw(angle float32) Quat {
	s, c := math32.Sincos(angle / 2)

	return Quat{Y: s, W: c}
}

// sameHemisphere flips out so that it lies in the same half of the 4D sphere as ref. Both
// represent the same rotation; this keeps the factor 1 result component-wise equal to the input.
func sameHemisphere(out, ref Quat) Quat {
	if out.Dot(ref) < 0 {
		return Quat{X: -out.X, Y: -out.Y, Z: -out.Z, W: -out.W}
	}

	return out
}
