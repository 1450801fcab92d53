package scene

import (
	"fmt"

	"github.com/DanielQ-51/cpu-pathtracer/types"
)

// Vertex carries the per-vertex attributes referenced by triangles. Vertices
// are read-only once the scene is built.
type Vertex struct {
	Position types.Vec3
	Color    types.Vec3
	Normal   types.Vec3
}

// Triangle references its three vertices by index into the scene vertex
// list. Indices stay valid when the list grows, which pointer
// back-references would not.
type Triangle struct {
	V [3]int32

	// Emitted radiance. Non-zero emission also places the triangle on the
	// scene's emissive list.
	Emission types.Vec3

	// The triangle material. Must be added to the scene before the triangle.
	Material *Material
}

// Mesh tracks the group of triangles loaded from a single mesh file.
type Mesh struct {
	Name      string
	Triangles int
	Emissive  bool
}

// Scene holds the full triangle soup plus the emissive subset that
// next-event estimation samples from. A scene is built once and then shared
// read-only across render workers.
type Scene struct {
	Vertices  []Vertex
	Triangles []Triangle

	// Indices into Triangles for every triangle with non-zero emission.
	Emissive []int32

	Materials []*Material
	Meshes    []Mesh
}

func NewScene() *Scene {
	return &Scene{
		Vertices:  make([]Vertex, 0),
		Triangles: make([]Triangle, 0),
		Emissive:  make([]int32, 0),
		Materials: make([]*Material, 0),
	}
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return fmt.Errorf("scene: material already added")
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Append a vertex and return its index.
func (s *Scene) AddVertex(v Vertex) int32 {
	s.Vertices = append(s.Vertices, v)
	return int32(len(s.Vertices) - 1)
}

// Add a triangle to the scene. Triangles with non-zero emission are also
// tracked on the emissive list.
func (s *Scene) AddTriangle(tri Triangle) error {
	if tri.Material == nil {
		return fmt.Errorf("scene: no material assigned to triangle")
	}

	registered := false
	for _, mat := range s.Materials {
		if mat == tri.Material {
			registered = true
			break
		}
	}
	if !registered {
		return fmt.Errorf("scene: triangle references unknown material; ensure that the material is added to the scene before adding the triangle")
	}

	for _, vi := range tri.V {
		if vi < 0 || int(vi) >= len(s.Vertices) {
			return fmt.Errorf("scene: triangle vertex index %d out of bounds", vi)
		}
	}

	s.Triangles = append(s.Triangles, tri)
	if tri.Emission.LenSqr() > 0 {
		s.Emissive = append(s.Emissive, int32(len(s.Triangles)-1))
	}
	return nil
}

// Resolve a triangle's vertices against the scene vertex list.
func (s *Scene) TriangleVertices(tri *Triangle) (*Vertex, *Vertex, *Vertex) {
	return &s.Vertices[tri.V[0]], &s.Vertices[tri.V[1]], &s.Vertices[tri.V[2]]
}
