package orientation

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ErrUnknownStrategy is returned by ParseStrategy for names it does not recognise.
var ErrUnknownStrategy = errors.New("unknown amplification strategy")

// headingEpsilon is the shortest horizontal gaze projection that still defines a heading.
const headingEpsilon = 1e-6

// Strategy selects how the yaw of an orientation is isolated before it is scaled.
type Strategy int

const (
	// Decoupled scales the heading of the gaze and leaves its tilt to the horizon untouched.
	Decoupled Strategy = iota
	// Euler scales the yaw angle of a yaw/pitch/roll decomposition.
	Euler
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Decoupled:
		return "decoupled"
	case Euler:
		return "euler"
	default:
		return "unknown"
	}
}

// ParseStrategy returns the strategy called name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "decoupled", "":
		return Decoupled, nil
	case "euler":
		return Euler, nil
	default:
		return Decoupled, errors.Wrapf(ErrUnknownStrategy, "%q", name)
	}
}

// Amplify scales the yaw of q by factor with the strategy s.
func (s Strategy) Amplify(q Quat, factor float32) Quat {
	if s == Euler {
		return AmplifyEuler(q, factor)
	}

	return AmplifyDecoupled(q, factor)
}

// Amplify scales the yaw of q by factor, see AmplifyDecoupled.
func Amplify(q Quat, factor float32) Quat {
	return AmplifyDecoupled(q, factor)
}

// AmplifyDecoupled factors q into a rotation around the world up axis followed by a tilt,
// q = yaw(h) * tilt, and returns yaw(h*factor) * tilt.
//
// The heading h is read from the gaze direction projected on the horizontal plane. When the
// head looks straight up or down that projection vanishes and the normalized input is returned
// as is.
func AmplifyDecoupled(input Quat, factor float32) Quat {
	q := input.Normalize()

	fwd := q.Rotate(Forward)
	if math32.Sqrt(fwd.X*fwd.X+fwd.Z*fwd.Z) < headingEpsilon {
		return q
	}

	heading := math32.Atan2(-fwd.X, -fwd.Z)
	tilt := Yaw(-heading).Mul(q)
	out := Yaw(heading * factor).Mul(tilt).Normalize()

	return sameHemisphere(out, q)
}

// AmplifyEuler decomposes q into yaw, pitch and roll, multiplies the yaw by factor and
// composes the angles back.
func AmplifyEuler(input Quat, factor float32) Quat {
	q := input.Normalize()

	angles := ToEuler(q)
	angles.Yaw *= factor
	out := FromEuler(angles).Normalize()

	return sameHemisphere(out, q)
}
