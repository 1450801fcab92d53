package tracer

import (
	"math"

	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

// DefaultMaxDepth bounds path length when the caller does not.
const DefaultMaxDepth = 6

// Integrator estimates radiance along camera rays by iterative path
// extension, combining next-event estimation with BSDF sampling under the
// power heuristic.
type Integrator struct {
	// Maximum number of scattering events along one path.
	MaxDepth int
}

func NewIntegrator(maxDepth int) *Integrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Integrator{MaxDepth: maxDepth}
}

// Power heuristic weight (beta = 2) for the strategy with density pdfA
// competing against the strategy with density pdfB. Both weights are zero
// when both densities are.
func powerHeuristic(pdfA, pdfB float64) float64 {
	denom := pdfA*pdfA + pdfB*pdfB
	if denom == 0 {
		return 0
	}
	return pdfA * pdfA / denom
}

// Li estimates the radiance arriving along r.
//
// Each iteration first accumulates the light-sampled (NEE) contribution,
// then extends the path by BSDF sampling and accumulates the current
// surface's own emission under the BSDF branch's weight. Emission is
// attributed through the updated throughput, so light seen at depth d is
// picked up while processing depth d's intersection.
func (in *Integrator) Li(sc *scenePkg.Scene, r types.Ray, sampler *Sampler) types.Vec3 {
	li := types.Vec3{}
	beta := types.XYZ(1, 1, 1)

	for depth := 0; depth < in.MaxDepth; depth++ {
		isect := IntersectScene(sc, r, MaxDistance)
		if !isect.Valid {
			break
		}
		material := isect.Triangle.Material

		basis := types.NewBasis(isect.Normal.Normalize())
		wiLocal := basis.ToLocal(r.Dir.Neg())

		nee, lightPdf := NextEventEstimation(sc, &isect, basis, wiLocal, sampler)

		woLocal, bsdfPdf, fVal := SampleBSDF(material, wiLocal, isect.BaseColor, sampler)
		if bsdfPdf <= 0 {
			break
		}

		neeWeight := powerHeuristic(lightPdf, bsdfPdf)
		bsdfWeight := powerHeuristic(bsdfPdf, lightPdf)

		r = types.NewRay(isect.Point.Add(isect.Normal.Mul(shadowBias)), basis.ToWorld(woLocal))

		li = li.Add(beta.MulVec(nee).Mul(neeWeight))
		beta = beta.MulVec(fVal.Mul(math.Abs(woLocal[2]) / bsdfPdf))
		li = li.Add(beta.MulVec(isect.Triangle.Emission).Mul(bsdfWeight))
	}

	return li
}
