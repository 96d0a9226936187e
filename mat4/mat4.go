// Package mat4 implements the row-major 4x4 matrices used by the
// transform graph. Element (r,c) lives at index 4r+c.
package mat4

import (
	"github.com/chewxy/math32"

	"github.com/aukilabs/raidho/quat"
	"github.com/aukilabs/raidho/vec"
)

type Mat4 struct {
	M [16]float32
}

func Identity() Mat4 {
	var mat Mat4
	mat.M[0], mat.M[5], mat.M[10], mat.M[15] = 1, 1, 1, 1
	return mat
}

func (m Mat4) At(row, col int) float32 {
	return m.M[row*4+col]
}

func (m *Mat4) Set(row, col int, v float32) {
	m.M[row*4+col] = v
}

func Mul(a, b Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a.At(row, k) * b.At(k, col)
			}
			result.Set(row, col, sum)
		}
	}
	return result
}

func Translate(t vec.Vec3) Mat4 {
	mat := Identity()
	mat.Set(0, 3, t.X)
	mat.Set(1, 3, t.Y)
	mat.Set(2, 3, t.Z)
	return mat
}

func Scale(s vec.Vec3) Mat4 {
	mat := Identity()
	mat.Set(0, 0, s.X)
	mat.Set(1, 1, s.Y)
	mat.Set(2, 2, s.Z)
	return mat
}

func Rotate(r quat.Quat) Mat4 {
	mat := Identity()

	xx := r.X * r.X
	yy := r.Y * r.Y
	zz := r.Z * r.Z
	xy := r.X * r.Y
	xz := r.X * r.Z
	yz := r.Y * r.Z
	wx := r.W * r.X
	wy := r.W * r.Y
	wz := r.W * r.Z

	mat.Set(0, 0, 1-2*(yy+zz))
	mat.Set(0, 1, 2*(xy-wz))
	mat.Set(0, 2, 2*(xz+wy))

	mat.Set(1, 0, 2*(xy+wz))
	mat.Set(1, 1, 1-2*(xx+zz))
	mat.Set(1, 2, 2*(yz-wx))

	mat.Set(2, 0, 2*(xz-wy))
	mat.Set(2, 1, 2*(yz+wx))
	mat.Set(2, 2, 1-2*(xx+yy))

	return mat
}

// RotateEuler builds a rotation from XYZ-order Euler angles in radians.
func RotateEuler(r vec.Vec3) Mat4 {
	return Rotate(quat.FromEuler(r))
}

// TRS composes translate * rotate * scale.
func TRS(t vec.Vec3, r quat.Quat, s vec.Vec3) Mat4 {
	return Mul(Translate(t), Mul(Rotate(r), Scale(s)))
}

// TRSEuler is TRS with the rotation given as XYZ Euler angles in radians.
func TRSEuler(t, r, s vec.Vec3) Mat4 {
	return TRS(t, quat.FromEuler(r), s)
}

// TransformPoint applies the full affine transform, dividing by w when the
// matrix is projective.
func TransformPoint(mat Mat4, v vec.Vec3) vec.Vec3 {
	x := mat.At(0, 0)*v.X + mat.At(0, 1)*v.Y + mat.At(0, 2)*v.Z + mat.At(0, 3)
	y := mat.At(1, 0)*v.X + mat.At(1, 1)*v.Y + mat.At(1, 2)*v.Z + mat.At(1, 3)
	z := mat.At(2, 0)*v.X + mat.At(2, 1)*v.Y + mat.At(2, 2)*v.Z + mat.At(2, 3)
	w := mat.At(3, 0)*v.X + mat.At(3, 1)*v.Y + mat.At(3, 2)*v.Z + mat.At(3, 3)
	if w != 0 && w != 1 {
		x /= w
		y /= w
		z /= w
	}
	return vec.Vec3{X: x, Y: y, Z: z}
}

// TransformDirection applies the upper 3x3 only, ignoring translation.
func TransformDirection(mat Mat4, v vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: mat.At(0, 0)*v.X + mat.At(0, 1)*v.Y + mat.At(0, 2)*v.Z,
		Y: mat.At(1, 0)*v.X + mat.At(1, 1)*v.Y + mat.At(1, 2)*v.Z,
		Z: mat.At(2, 0)*v.X + mat.At(2, 1)*v.Y + mat.At(2, 2)*v.Z,
	}
}

func Transpose(mat Mat4) Mat4 {
	var result Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result.Set(r, c, mat.At(c, r))
		}
	}
	return result
}

// GetTranslation extracts the translation column.
func GetTranslation(mat Mat4) vec.Vec3 {
	return vec.Vec3{X: mat.At(0, 3), Y: mat.At(1, 3), Z: mat.At(2, 3)}
}

// GetScale extracts the per-axis scale as the basis vector lengths.
// Negative scale is not recoverable and is undefined here.
func GetScale(mat Mat4) vec.Vec3 {
	sx := vec.Vec3{X: mat.At(0, 0), Y: mat.At(1, 0), Z: mat.At(2, 0)}.Length()
	sy := vec.Vec3{X: mat.At(0, 1), Y: mat.At(1, 1), Z: mat.At(2, 1)}.Length()
	sz := vec.Vec3{X: mat.At(0, 2), Y: mat.At(1, 2), Z: mat.At(2, 2)}.Length()
	return vec.Vec3{X: sx, Y: sy, Z: sz}
}

// GetRotation extracts the rotation with scale divided out. Returns
// identity when any basis column has zero length.
func GetRotation(mat Mat4) quat.Quat {
	s := GetScale(mat)
	if s.X == 0 || s.Y == 0 || s.Z == 0 {
		return quat.Identity()
	}

	// Orthonormal 3x3 with scale removed.
	m00 := mat.At(0, 0) / s.X
	m10 := mat.At(1, 0) / s.X
	m20 := mat.At(2, 0) / s.X
	m01 := mat.At(0, 1) / s.Y
	m11 := mat.At(1, 1) / s.Y
	m21 := mat.At(2, 1) / s.Y
	m02 := mat.At(0, 2) / s.Z
	m12 := mat.At(1, 2) / s.Z
	m22 := mat.At(2, 2) / s.Z

	trace := m00 + m11 + m22

	var q quat.Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q.W = 0.25 * s
		q.X = (m21 - m12) / s
		q.Y = (m02 - m20) / s
		q.Z = (m10 - m01) / s
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q.W = (m21 - m12) / s
		q.X = 0.25 * s
		q.Y = (m01 + m10) / s
		q.Z = (m02 + m20) / s
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q.W = (m02 - m20) / s
		q.X = (m01 + m10) / s
		q.Y = 0.25 * s
		q.Z = (m12 + m21) / s
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q.W = (m10 - m01) / s
		q.X = (m02 + m20) / s
		q.Y = (m12 + m21) / s
		q.Z = 0.25 * s
	}

	return q.Normalized()
}

// DecomposeTRS splits an affine matrix into translation, rotation, and
// scale. Positive scale only.
func DecomposeTRS(mat Mat4) (t vec.Vec3, r quat.Quat, s vec.Vec3) {
	return GetTranslation(mat), GetRotation(mat), GetScale(mat)
}

// InverseTRS inverts an affine TRS matrix as scale^-1 * rotate^-1 *
// translate^-1, which is cheaper than a general inverse. Zero scale
// components invert to zero.
func InverseTRS(mat Mat4) Mat4 {
	t, r, s := DecomposeTRS(mat)

	inv := vec.Vec3{X: invOrZero(s.X), Y: invOrZero(s.Y), Z: invOrZero(s.Z)}

	return Mul(Scale(inv), Mul(Rotate(quat.Conjugate(r.Normalized())), Translate(t.Neg())))
}

func invOrZero(v float32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / v
}
