package geom

import "math"

// Box3 is an axis-aligned bounding box
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox returns a box that contains nothing and grows to fit the first point added to it
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// BoxFromCenterSize returns the box of the given size centered on center
func BoxFromCenterSize(center, size Vec3) Box3 {
	half := size.Scale(0.5)
	return Box3{Min: center.Sub(half), Max: center.Add(half)}
}

// IsEmpty reports whether the box has no volume on some axis
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Clone returns an independent copy of b
func (b Box3) Clone() Box3 {
	return Box3{Min: b.Min, Max: b.Max}
}

// Size returns the extent of b on every axis, or zero for an empty box
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of b
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Translate returns b moved by offset
func (b Box3) Translate(offset Vec3) Box3 {
	return Box3{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// ExpandByPoint returns the smallest box containing b and p
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o
func (b Box3) Union(o Box3) Box3 {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Transform returns the axis-aligned box enclosing b after applying m to its eight corners
func (b Box3) Transform(m Mat4) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		corner := Vec3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out = out.ExpandByPoint(m.TransformPoint(corner))
	}
	return out
}

// ContainsPoint reports whether p lies inside b, boundaries included
func (b Box3) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ClampPoint returns the point of b closest to p
func (b Box3) ClampPoint(p Vec3) Vec3 {
	return p.Max(b.Min).Min(b.Max)
}

// IntersectsSphere reports whether s touches or overlaps b
func (b Box3) IntersectsSphere(s Sphere) bool {
	if b.IsEmpty() {
		return false
	}
	closest := b.ClampPoint(s.Center)
	return closest.Sub(s.Center).LengthSq() <= s.Radius*s.Radius
}

// Sphere is a bounding sphere
type Sphere struct {
	Center Vec3
	Radius float64
}

// IntersectsBox reports whether s touches or overlaps b
func (s Sphere) IntersectsBox(b Box3) bool {
	return b.IntersectsSphere(s)
}
