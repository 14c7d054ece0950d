// Package orientation amplifies the yaw of a head orientation.
//
// Orientations are unit quaternions in the OpenXR convention: right handed, +Y up, the head
// looks down -Z when the orientation is the identity. Yaw is the rotation around the world up
// axis; tilt (pitch and roll) is everything else.
//
// Two strategies are available. Decoupled factors the orientation into a heading and a tilt
// and only scales the heading, so the angle between the gaze and the horizon never changes.
// Euler goes through a yaw/pitch/roll decomposition; it is defined everywhere but lets residual
// pitch and roll error leak into the amplified yaw close to gimbal lock. Amplify uses Decoupled.
//
// None of the functions allocate or keep state, they are safe to call from any goroutine.
package orientation
