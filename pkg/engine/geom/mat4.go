package geom

import "math"

// Euler is a rotation in radians applied in X, then Y, then Z order
type Euler struct {
	X, Y, Z float64
}

// Mat4 is a row-major affine transform. The last row is always 0 0 0 1.
type Mat4 [4][4]float64

// Identity returns the identity transform
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Compose builds translation * rotation * scale.
func Compose(pos Vec3, rot Euler, scale Vec3) Mat4 {
	a, b := math.Cos(rot.X), math.Sin(rot.X)
	c, d := math.Cos(rot.Y), math.Sin(rot.Y)
	e, f := math.Cos(rot.Z), math.Sin(rot.Z)

	ae, af, be, bf := a*e, a*f, b*e, b*f

	r := [3][3]float64{
		{c * e, -c * f, d},
		{af + be*d, ae - bf*d, -b * c},
		{bf - ae*d, be + af*d, a * c},
	}
	s := [3]float64{scale.X, scale.Y, scale.Z}
	t := [3]float64{pos.X, pos.Y, pos.Z}

	var m Mat4
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[row][col] = r[row][col] * s[col]
		}
		m[row][3] = t[row]
	}
	m[3][3] = 1
	return m
}

// Mul returns m * o
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row][k] * o[k][col]
			}
			out[row][col] = sum
		}
	}
	return out
}

// TransformPoint applies m to the point p
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// Translation returns the translation component of m
func (m Mat4) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}
