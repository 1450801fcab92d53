package types

// Ray is a parametric line starting at Origin. Dir is not required to be
// unit length; intersection t values scale with it.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Define a ray from an origin and a direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Get the point at parametric distance t along the ray.
func (r Ray) PointAt(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
