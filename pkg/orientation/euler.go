package orientation

import (
	"github.com/chewxy/math32"
)

// gimbalLock is the sine of the pitch above which yaw and roll can no longer be told apart.
const gimbalLock = 0.999999

// EulerAngles are the angles, in radians, of the rotation yaw(Y) * pitch(X) * roll(Z).
type EulerAngles struct {
	Yaw, Pitch, Roll float32
}

// ToEuler decomposes the unit quaternion q. Pitch is in [-π/2, π/2], yaw and roll in [-π, π].
// At gimbal lock the roll is folded into the yaw and reported as zero.
func ToEuler(q Quat) EulerAngles {
	sinPitch := -2 * (q.Y*q.Z - q.W*q.X)
	// Rounding can push the sine slightly outside of the asin domain.
	if sinPitch > 1 {
		sinPitch = 1
	} else if sinPitch < -1 {
		sinPitch = -1
	}

	angles := EulerAngles{Pitch: math32.Asin(sinPitch)}

	if math32.Abs(sinPitch) < gimbalLock {
		angles.Yaw = math32.Atan2(2*(q.X*q.Z+q.W*q.Y), 1-2*(q.X*q.X+q.Y*q.Y))
		angles.Roll = math32.Atan2(2*(q.X*q.Y+q.W*q.Z), 1-2*(q.X*q.X+q.Z*q.Z))
	} else {
		angles.Yaw = math32.Atan2(-2*(q.X*q.Z-q.W*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
	}

	return angles
}

// FromEuler composes yaw, pitch and roll back into a quaternion with the half-angle formula.
func FromEuler(e EulerAngles) Quat {
	sp, cp := math32.Sincos(e.Pitch / 2)
	sy, cy := math32.Sincos(e.Yaw / 2)
	sr, cr := math32.Sincos(e.Roll / 2)

	return Quat{
		X: sp*cy*cr + cp*sy*sr,
		Y: cp*sy*cr - sp*cy*sr,
		Z: cp*cy*sr - sp*sy*cr,
		W: cp*cy*cr + sp*sy*sr,
	}
}

// Elevation returns the angle, in radians, between the gaze of q and the horizontal plane.
// Positive when looking up.
func Elevation(q Quat) float32 {
	y := q.Normalize().Rotate(Forward).Y
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}

	return math32.Asin(y)
}
