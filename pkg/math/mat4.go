package math

import "math"

// Mat4 is a 4x4 matrix in column-major order, matching OpenGL uniform layout.
//
//	[m0 m4 m8  m12]
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// LookAt returns a view matrix looking from eye to center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateY returns a rotation matrix around the Y axis. angle is in radians.
func RotateY(angle float32) Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// TRS composes translate * rotateY(yaw) * scale, the transform of a posed part.
func TRS(position Vec3, yaw float32, scale Vec3) Mat4 {
	return Translate(position.X, position.Y, position.Z).
		Mul(RotateY(yaw)).
		Mul(Scale(scale.X, scale.Y, scale.Z))
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// TransformVec3 transforms a point (w=1) and applies the perspective divide.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	x, y, z, w := m.transform(v)
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Project transforms a point into normalized device coordinates.
// ok is false when the point lies behind the camera.
func (m Mat4) Project(v Vec3) (ndc Vec3, ok bool) {
	x, y, z, w := m.transform(v)
	if w <= 0 {
		return Vec3{}, false
	}
	return Vec3{x / w, y / w, z / w}, true
}

func (m Mat4) transform(v Vec3) (x, y, z, w float32) {
	x = m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y = m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z = m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w = m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	return x, y, z, w
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
