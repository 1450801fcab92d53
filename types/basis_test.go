package types

import (
	"math"
	"testing"
)

func TestBasisOrthonormal(t *testing.T) {
	normals := []Vec3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{0, 1, 0},
		XYZ(1, 2, 3).Normalize(),
		XYZ(-5, 0.1, 0.2).Normalize(),
		XYZ(0.1, -5, 0.2).Normalize(),
	}

	for idx, n := range normals {
		basis := NewBasis(n)

		vecs := map[string]Vec3{"T": basis.T, "B": basis.B, "N": basis.N}
		for name, v := range vecs {
			if l := v.Len(); math.Abs(l-1.0) > 1e-12 {
				t.Errorf("[normal %d] expected %s to be unit length; got %g", idx, name, l)
			}
		}

		if d := basis.T.Dot(basis.B); math.Abs(d) > 1e-12 {
			t.Errorf("[normal %d] expected T and B to be orthogonal; dot is %g", idx, d)
		}
		if d := basis.T.Dot(basis.N); math.Abs(d) > 1e-12 {
			t.Errorf("[normal %d] expected T and N to be orthogonal; dot is %g", idx, d)
		}
		if d := basis.B.Dot(basis.N); math.Abs(d) > 1e-12 {
			t.Errorf("[normal %d] expected B and N to be orthogonal; dot is %g", idx, d)
		}
	}
}

// Round-tripping a direction through the shading frame must be the identity
// up to floating point noise.
func TestBasisRoundTrip(t *testing.T) {
	normals := []Vec3{
		{0, 0, 1},
		XYZ(1, 2, 3).Normalize(),
		XYZ(-0.3, 0.9, -0.1).Normalize(),
		XYZ(5, -1, 0.01).Normalize(),
	}
	dirs := []Vec3{
		{1, 0, 0},
		{0, -1, 0},
		XYZ(0.5, 0.5, -0.7),
		XYZ(-2, 3, 9),
	}

	for nIdx, n := range normals {
		basis := NewBasis(n)
		for dIdx, v := range dirs {
			rt := basis.ToWorld(basis.ToLocal(v))
			for c := 0; c < 3; c++ {
				if math.Abs(rt[c]-v[c]) > 1e-9 {
					t.Errorf("[normal %d dir %d] world->local->world mismatch: expected %v; got %v", nIdx, dIdx, v, rt)
					break
				}
			}

			rt = basis.ToLocal(basis.ToWorld(v))
			for c := 0; c < 3; c++ {
				if math.Abs(rt[c]-v[c]) > 1e-9 {
					t.Errorf("[normal %d dir %d] local->world->local mismatch: expected %v; got %v", nIdx, dIdx, v, rt)
					break
				}
			}
		}
	}
}

func TestBasisNormalIsLocalZ(t *testing.T) {
	n := XYZ(1, -2, 0.5).Normalize()
	basis := NewBasis(n)

	local := basis.ToLocal(n)
	if math.Abs(local[0]) > 1e-12 || math.Abs(local[1]) > 1e-12 || math.Abs(local[2]-1.0) > 1e-12 {
		t.Fatalf("expected normal to map to +Z; got %v", local)
	}
}
