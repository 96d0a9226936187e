// Package quat implements the unit quaternion rotations consumed by the
// transform graph and the oriented shapes.
package quat

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/mathf"
	"github.com/aukilabs/raidho/vec"
)

// Quat is an (x, y, z, w) quaternion. The zero value is not a valid
// rotation; use Identity.
type Quat struct {
	X, Y, Z, W float32
}

func New(x, y, z, w float32) Quat {
	return Quat{x, y, z, w}
}

func Identity() Quat {
	return Quat{0, 0, 0, 1}
}

func (q Quat) Add(rhs Quat) Quat {
	return Quat{q.X + rhs.X, q.Y + rhs.Y, q.Z + rhs.Z, q.W + rhs.W}
}

func (q Quat) Sub(rhs Quat) Quat {
	return Quat{q.X - rhs.X, q.Y - rhs.Y, q.Z - rhs.Z, q.W - rhs.W}
}

func (q Quat) Mul(rhs Quat) Quat {
	return Quat{
		q.W*rhs.X + q.X*rhs.W + q.Y*rhs.Z - q.Z*rhs.Y,
		q.W*rhs.Y - q.X*rhs.Z + q.Y*rhs.W + q.Z*rhs.X,
		q.W*rhs.Z + q.X*rhs.Y - q.Y*rhs.X + q.Z*rhs.W,
		q.W*rhs.W - q.X*rhs.X - q.Y*rhs.Y - q.Z*rhs.Z,
	}
}

func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

func (q Quat) Length() float32 {
	return math32.Sqrt(q.LengthSq())
}

func (q Quat) LengthSq() float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Normalized returns the unit quaternion, or q unchanged when the length
// is zero.
func (q Quat) Normalized() Quat {
	l := q.Length()
	if l == 0 {
		return q
	}
	return q.Scale(1 / l)
}

func (q *Quat) Normalize() {
	*q = q.Normalized()
}

func (q Quat) XYZ() vec.Vec3 {
	return vec.Vec3{X: q.X, Y: q.Y, Z: q.Z}
}

// Rotate applies the rotation to v using the Rodrigues form
// v + 2*q.xyz x (q.xyz x v + w*v), which is cheaper than q*v*q^-1.
// q must be normalized.
func (q Quat) Rotate(v vec.Vec3) vec.Vec3 {
	xyz := q.XYZ()
	return v.Add(vec.Cross(xyz, vec.Cross(xyz, v).Add(v.Scale(q.W))).Scale(2))
}

func Conjugate(q Quat) Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the multiplicative inverse. Panics on a zero-length
// quaternion; callers must validate.
func Inverse(q Quat) Quat {
	l2 := q.LengthSq()
	if l2 <= mathf.EPS {
		panic("quat: cannot invert zero-length quaternion")
	}
	c := Conjugate(q)
	return c.Scale(1 / l2)
}

// FromEuler builds a rotation from Euler angles in radians, applied in
// XYZ order.
func FromEuler(euler vec.Vec3) Quat {
	cx, sx := math32.Cos(euler.X*0.5), math32.Sin(euler.X*0.5)
	cy, sy := math32.Cos(euler.Y*0.5), math32.Sin(euler.Y*0.5)
	cz, sz := math32.Cos(euler.Z*0.5), math32.Sin(euler.Z*0.5)

	return Quat{
		sx*cy*cz + cx*sy*sz,
		cx*sy*cz - sx*cy*sz,
		cx*cy*sz + sx*sy*cz,
		cx*cy*cz - sx*sy*sz,
	}
}

// ToEuler recovers XYZ-order Euler angles in radians.
func ToEuler(q Quat) vec.Vec3 {
	var euler vec.Vec3

	// roll (X)
	sinrCosp := 2 * (q.W*q.X - q.Y*q.Z)
	cosrCosp := 1 - 2*(q.X*q.X+q.Y*q.Y)
	euler.X = math32.Atan2(sinrCosp, cosrCosp)

	// pitch (Y)
	if sinp := 2 * (q.W*q.Y + q.X*q.Z); math32.Abs(sinp) >= 1 {
		euler.Y = math32.Copysign(mathf.HALF_PI, sinp)
	} else {
		euler.Y = math32.Asin(sinp)
	}

	// yaw (Z)
	sinyCosp := 2 * (q.W*q.Z - q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	euler.Z = math32.Atan2(sinyCosp, cosyCosp)

	return euler
}

// Lerp is the normalized linear interpolation between a and b.
func Lerp(a, b Quat, t float32) Quat {
	q := Quat{
		mathf.Lerp(a.X, b.X, t),
		mathf.Lerp(a.Y, b.Y, t),
		mathf.Lerp(a.Z, b.Z, t),
		mathf.Lerp(a.W, b.W, t),
	}
	return q.Normalized()
}

// Slerp interpolates along the shorter great-circle arc. Inputs are
// normalized first; nearly parallel quaternions fall back to Lerp.
func Slerp(qa, qb Quat, t float32) Quat {
	q1 := qa.Normalized()
	q2 := qb.Normalized()

	dot := q1.X*q2.X + q1.Y*q2.Y + q1.Z*q2.Z + q1.W*q2.W

	if dot < 0 {
		q2 = q2.Scale(-1)
		dot = -dot
	}

	if dot > 0.9995 {
		return Lerp(q1, q2, t)
	}

	theta0 := math32.Acos(dot)
	theta := theta0 * t

	q3 := q2.Sub(q1.Scale(dot)).Normalized()

	return q1.Scale(math32.Cos(theta)).Add(q3.Scale(math32.Sin(theta)))
}
