package tracer

import (
	"math"

	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

// All BSDF operations work in the local shading frame where the surface
// normal is +Z; a direction with z <= 0 lies at or below the surface. wi
// points toward the previous path segment's origin, wo toward the next
// segment. Densities are in solid-angle measure.

// EvalBSDF evaluates the reflectance for a direction pair.
//
// The Phong kind folds the surface cosine into its value while the diffuse
// kind leaves it to the integrator's uniform |wo.z| factor; the mirror kind
// ignores the directions entirely and is only consistent when wo is the
// perfect reflection of wi.
func EvalBSDF(mat *scenePkg.Material, wi, wo, color types.Vec3) types.Vec3 {
	switch mat.Type {
	case scenePkg.MirrorBSDF:
		return color
	case scenePkg.PhongBSDF:
		return phongEval(mat.PhongExponent, wi, wo, color)
	default:
		return diffuseEval(wi, wo, color)
	}
}

// SampleBSDF importance-samples an outgoing direction, returning it with
// its density and the reflectance evaluated for the pair.
func SampleBSDF(mat *scenePkg.Material, wi, color types.Vec3, sampler *Sampler) (wo types.Vec3, pdf float64, f types.Vec3) {
	switch mat.Type {
	case scenePkg.MirrorBSDF:
		wo = reflectLocal(wi)
		return wo, 1.0, color
	case scenePkg.PhongBSDF:
		return phongSample(mat.PhongExponent, wi, color, sampler)
	default:
		return diffuseSample(wi, color, sampler)
	}
}

// PdfBSDF returns the density SampleBSDF would assign to wo given wi.
func PdfBSDF(mat *scenePkg.Material, wi, wo types.Vec3) float64 {
	switch mat.Type {
	case scenePkg.MirrorBSDF:
		return 1.0
	case scenePkg.PhongBSDF:
		return phongPdf(mat.PhongExponent, wi, wo)
	default:
		return diffusePdf(wo)
	}
}

// Mirror a local direction through the surface normal (the local +Z axis).
func reflectLocal(wi types.Vec3) types.Vec3 {
	return types.XYZ(0, 0, 1).Mul(2.0 * wi[2]).Sub(wi)
}

func diffuseEval(wi, wo, color types.Vec3) types.Vec3 {
	if wi[2] <= 0 || wo[2] <= 0 {
		return types.Vec3{}
	}
	return color.Div(math.Pi)
}

// Cosine-weighted hemisphere sampling.
func diffuseSample(wi, color types.Vec3, sampler *Sampler) (types.Vec3, float64, types.Vec3) {
	u1, u2 := sampler.Get2D()
	theta := math.Acos(math.Sqrt(u1))
	phi := 2 * math.Pi * u2

	wo := types.XYZ(
		math.Sin(theta)*math.Cos(phi),
		math.Sin(theta)*math.Sin(phi),
		math.Cos(theta),
	)

	return wo, diffusePdf(wo), diffuseEval(wi, wo, color)
}

func diffusePdf(wo types.Vec3) float64 {
	if wo[2] <= 0 {
		return 0.0
	}
	return wo[2] / math.Pi
}

func phongEval(exponent int, wi, wo, color types.Vec3) types.Vec3 {
	if wi[2] <= 0 || wo[2] <= 0 {
		return types.Vec3{}
	}

	wr := reflectLocal(wi)
	cosAlpha := math.Max(0.0, wo.Dot(wr))
	scale := float64(exponent+2) / (2 * math.Pi) * math.Pow(cosAlpha, float64(exponent)) * wo[2]
	return color.Mul(scale)
}

// Sample the Phong lobe around the perfect reflection of wi.
func phongSample(exponent int, wi, color types.Vec3, sampler *Sampler) (types.Vec3, float64, types.Vec3) {
	wr := reflectLocal(wi)

	u1, u2 := sampler.Get2D()
	theta := math.Acos(math.Pow(u1, 1.0/float64(exponent+2)))
	phi := 2 * math.Pi * u2
	x := math.Sin(theta) * math.Cos(phi)
	y := math.Sin(theta) * math.Sin(phi)
	z := math.Cos(theta)

	// Local frame around the reflection direction.
	var t types.Vec3
	if math.Abs(wr[2]) < 0.999 {
		t = types.XYZ(0, 0, 1).Cross(wr).Normalize()
	} else {
		t = types.XYZ(1, 0, 0)
	}
	b := wr.Cross(t)
	wo := t.Mul(x).Add(b.Mul(y)).Add(wr.Mul(z)).Normalize()

	return wo, phongPdf(exponent, wi, wo), phongEval(exponent, wi, wo, color)
}

func phongPdf(exponent int, wi, wo types.Vec3) float64 {
	if wi[2] <= 0 || wo[2] <= 0 {
		return 0.0
	}

	wr := reflectLocal(wi).Normalize()
	return float64(exponent+2) / (2 * math.Pi) * math.Pow(math.Max(0.0, wo.Dot(wr)), float64(exponent))
}
