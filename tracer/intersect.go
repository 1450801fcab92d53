package tracer

import (
	"math"

	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

const (
	// Rejection threshold for the ray/triangle determinant. The test is
	// one-sided: a determinant below the threshold also rejects back-facing
	// triangles, so visibility depends on vertex winding.
	detEpsilon = 1e-5

	// Minimum accepted hit distance. Guards against rays re-hitting the
	// surface they just left.
	minHitDistance = 1e-5

	// Default upper bound for unbounded scene queries.
	MaxDistance = 99999999.0
)

// Intersection describes the nearest surface hit along a ray. All fields
// are only meaningful when Valid is set.
type Intersection struct {
	Point     types.Vec3
	Normal    types.Vec3
	BaseColor types.Vec3
	Ray       types.Ray
	Triangle  *scenePkg.Triangle
	Valid     bool
	Backface  bool
}

// IntersectTriangle runs the Möller-Trumbore test between a ray and one
// triangle. On a hit it returns the ray parameter t and the barycentric
// triple (u, v, 1-u-v); on a miss (or a degenerate triangle) t is -1.
func IntersectTriangle(sc *scenePkg.Scene, tri *scenePkg.Triangle, r types.Ray) (float64, types.Vec3) {
	a, b, c := sc.TriangleVertices(tri)

	e1 := b.Position.Sub(a.Position)
	e2 := c.Position.Sub(a.Position)

	h := r.Dir.Cross(e2)
	det := h.Dot(e1)
	if det < detEpsilon {
		return -1.0, types.Vec3{}
	}
	f := 1.0 / det

	s := r.Origin.Sub(a.Position)
	u := f * s.Dot(h)
	q := s.Cross(e1)
	v := f * r.Dir.Dot(q)
	t := f * e2.Dot(q)

	if u >= 0 && v >= 0 && u+v <= 1 && t > minHitDistance {
		return t, types.Vec3{u, v, 1.0 - u - v}
	}
	return -1.0, types.Vec3{}
}

// IntersectScene scans all scene triangles and keeps the nearest hit with
// t < maxT. The returned intersection has Valid unset when nothing is hit.
func IntersectScene(sc *scenePkg.Scene, r types.Ray, maxT float64) Intersection {
	minT := math.MaxFloat64
	var closest Intersection

	for i := range sc.Triangles {
		tri := &sc.Triangles[i]
		t, bary := IntersectTriangle(sc, tri, r)
		if t < 0 {
			continue
		}

		if t < minT && t < maxT {
			minT = t

			a, b, c := sc.TriangleVertices(tri)
			closest = Intersection{
				Point: r.PointAt(t),
				// TODO: interpolate the vertex normals instead of flat
				// shading off vertex a.
				Normal:    a.Normal,
				BaseColor: a.Color.Mul(bary[0]).Add(b.Color.Mul(bary[1])).Add(c.Color.Mul(bary[2])),
				Ray:       r,
				Triangle:  tri,
				Valid:     true,
				Backface:  false,
			}
		}
	}

	return closest
}
