package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

const angleEpsilon = 1e-15

// SignedAngle returns the angle in degrees from `from` to `to`, signed by
// the rotation direction around axis. Zero-length inputs give 0.
func SignedAngle(from, to, axis mgl64.Vec3) float64 {
	denom := math.Sqrt(from.Dot(from) * to.Dot(to))
	if denom < angleEpsilon {
		return 0
	}
	cos := math.Max(-1, math.Min(1, from.Dot(to)/denom))
	angle := mgl64.RadToDeg(math.Acos(cos))
	if axis.Dot(from.Cross(to)) < 0 {
		angle = -angle
	}
	return angle
}

// SurfaceAngle is the signed tilt of a surface normal away from up,
// measured about the forward axis.
func SurfaceAngle(normal mgl64.Vec3) float64 {
	return SignedAngle(normal, Up, Forward)
}

// ProjectOnPlane removes the component of v along the plane normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	sq := normal.Dot(normal)
	if sq < angleEpsilon {
		return v
	}
	return v.Sub(normal.Mul(v.Dot(normal) / sq))
}

// SlopeNormal returns the up-facing unit normal of a surface tilted by deg
// degrees. Positive angles rise to the right.
func SlopeNormal(deg float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(deg)
	return mgl64.Vec3{-math.Sin(rad), math.Cos(rad), 0}
}
