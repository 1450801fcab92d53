package types

import "math"

// Basis is an orthonormal shading frame built around a unit surface normal.
// The normal maps to the local +Z axis, so a local direction with z > 0
// points into the upper hemisphere.
type Basis struct {
	T, B, N Vec3
}

// Build a shading frame around the unit normal n. The tangent is picked off
// the axis the normal leans away from so the two are never colinear.
func NewBasis(n Vec3) Basis {
	var t Vec3
	if math.Abs(n[0]) > math.Abs(n[2]) {
		t = XYZ(-n[1], n[0], 0).Normalize()
	} else {
		t = XYZ(0, -n[2], n[1]).Normalize()
	}

	return Basis{T: t, B: n.Cross(t), N: n}
}

// Transform a world-space direction into the shading frame.
func (b Basis) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(b.T), v.Dot(b.B), v.Dot(b.N)}
}

// Transform a local-frame direction back to world space.
func (b Basis) ToWorld(v Vec3) Vec3 {
	return b.T.Mul(v[0]).Add(b.B.Mul(v[1])).Add(b.N.Mul(v[2]))
}
