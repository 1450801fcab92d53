package scene

import "fmt"

type BSDFType uint8

const (
	DiffuseBSDF BSDFType = iota
	MirrorBSDF
	PhongBSDF
)

// Get the name a scene description file uses for this reflectance kind.
func (t BSDFType) String() string {
	switch t {
	case DiffuseBSDF:
		return "diffuse"
	case MirrorBSDF:
		return "mirror"
	case PhongBSDF:
		return "phong"
	}
	return fmt.Sprintf("unknown (%d)", uint8(t))
}

// Parse a reflectance kind name from a scene description file. An empty
// name selects the diffuse kind.
func ParseBSDFType(name string) (BSDFType, error) {
	switch name {
	case "diffuse", "":
		return DiffuseBSDF, nil
	case "mirror":
		return MirrorBSDF, nil
	case "phong":
		return PhongBSDF, nil
	}
	return DiffuseBSDF, fmt.Errorf("scene: unsupported material type %q", name)
}

// Material is a tagged reflectance model. The three kinds share no state
// besides the Phong exponent, so a tag plus a switch replaces a vtable on
// the intersection hot path.
type Material struct {
	// The reflectance kind.
	Type BSDFType

	// Lobe exponent. Only meaningful for Phong materials.
	PhongExponent int
}
