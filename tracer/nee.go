package tracer

import (
	"math"

	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

// Offset applied along the surface normal when spawning secondary rays so
// they clear the surface they originate from.
const shadowBias = 0.0001

// Fraction of the light distance used as the occlusion bound. Slightly
// short of 1 so the light triangle itself never registers as a blocker.
const occlusionBound = 0.99999

// NextEventEstimation samples direct illumination at an intersection by
// picking one emissive triangle uniformly, sampling a point on it and
// testing visibility. wo is the local-frame direction toward the previous
// path segment; basis is the shading frame at the hit.
//
// It returns the radiance contribution together with the solid-angle
// density of the light sample, which the caller feeds into the MIS weight.
// Both the density and the contribution are zero with no emissive
// triangles, with a light sample that is occluded or missed, or with either
// surface facing away from the connection. A zero BSDF value zeroes only
// the contribution.
func NextEventEstimation(sc *scenePkg.Scene, isect *Intersection, basis types.Basis, wo types.Vec3, sampler *Sampler) (types.Vec3, float64) {
	numLights := len(sc.Emissive)
	if numLights == 0 {
		return types.Vec3{}, 0.0
	}

	index := int(sampler.Get1D() * float64(numLights))
	if index >= numLights {
		index = numLights - 1
	}
	light := &sc.Triangles[sc.Emissive[index]]
	la, lb, lc := sc.TriangleVertices(light)

	// Uniform point on the light triangle.
	u := math.Sqrt(sampler.Get1D())
	v := sampler.Get1D()
	p := la.Position.Mul(1 - u).
		Add(lb.Position.Mul(u * (1 - v))).
		Add(lc.Position.Mul(u * v))

	n := isect.Normal
	surfaceToLight := p.Sub(isect.Point)
	w := surfaceToLight.Normalize()
	shadowRay := types.NewRay(isect.Point.Add(n.Mul(shadowBias)), w)

	// Distance to the sampled point, measured against the light triangle
	// alone. A miss means the connection grazes the light's own plane.
	tLight, _ := IntersectTriangle(sc, light, shadowRay)
	if tLight < 0 {
		return types.Vec3{}, 0.0
	}

	if blocker := IntersectScene(sc, shadowRay, tLight*occlusionBound); blocker.Valid {
		return types.Vec3{}, 0.0
	}

	lightNormal := la.Normal
	cosLight := lightNormal.Dot(w.Neg())
	cosSurface := n.Dot(w)
	if cosLight <= 0 || cosSurface <= 0 {
		return types.Vec3{}, 0.0
	}

	distSqr := surfaceToLight.LenSqr()
	g := cosLight * cosSurface / distSqr
	area := 0.5 * lb.Position.Sub(la.Position).Cross(lc.Position.Sub(la.Position)).Len()
	lightPdf := distSqr / (float64(numLights) * cosLight * area)

	fVal := EvalBSDF(isect.Triangle.Material, basis.ToLocal(w), wo, isect.BaseColor)
	contribution := fVal.MulVec(light.Emission).Mul(g / lightPdf)
	return contribution, lightPdf
}
