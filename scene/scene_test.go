package scene

import (
	"strings"
	"testing"

	"github.com/DanielQ-51/cpu-pathtracer/types"
)

func makeVertices(sc *Scene) [3]int32 {
	var indices [3]int32
	indices[0] = sc.AddVertex(Vertex{Position: types.XYZ(0, 0, 0), Color: types.XYZ(1, 1, 1), Normal: types.XYZ(0, 0, 1)})
	indices[1] = sc.AddVertex(Vertex{Position: types.XYZ(1, 0, 0), Color: types.XYZ(1, 1, 1), Normal: types.XYZ(0, 0, 1)})
	indices[2] = sc.AddVertex(Vertex{Position: types.XYZ(0, 1, 0), Color: types.XYZ(1, 1, 1), Normal: types.XYZ(0, 0, 1)})
	return indices
}

func TestAddMaterial(t *testing.T) {
	sc := NewScene()
	material := &Material{Type: DiffuseBSDF}

	if err := sc.AddMaterial(material); err != nil {
		t.Fatal(err)
	}
	if err := sc.AddMaterial(material); err == nil {
		t.Fatal("expected error when adding the same material twice")
	}
}

func TestAddTriangleValidation(t *testing.T) {
	sc := NewScene()
	material := &Material{Type: DiffuseBSDF}
	if err := sc.AddMaterial(material); err != nil {
		t.Fatal(err)
	}
	indices := makeVertices(sc)

	if err := sc.AddTriangle(Triangle{V: indices}); err == nil {
		t.Fatal("expected error for a triangle without a material")
	}

	unknown := &Material{Type: MirrorBSDF}
	if err := sc.AddTriangle(Triangle{V: indices, Material: unknown}); err == nil {
		t.Fatal("expected error for a triangle with an unregistered material")
	}

	bad := indices
	bad[2] = 99
	if err := sc.AddTriangle(Triangle{V: bad, Material: material}); err == nil {
		t.Fatal("expected error for an out of bounds vertex index")
	}

	if err := sc.AddTriangle(Triangle{V: indices, Material: material}); err != nil {
		t.Fatal(err)
	}
	if len(sc.Triangles) != 1 {
		t.Fatalf("expected 1 triangle; got %d", len(sc.Triangles))
	}
	if len(sc.Emissive) != 0 {
		t.Fatal("expected no emissive triangles")
	}
}

func TestEmissiveTracking(t *testing.T) {
	sc := NewScene()
	material := &Material{Type: DiffuseBSDF}
	if err := sc.AddMaterial(material); err != nil {
		t.Fatal(err)
	}

	indices := makeVertices(sc)
	if err := sc.AddTriangle(Triangle{V: indices, Material: material}); err != nil {
		t.Fatal(err)
	}
	if err := sc.AddTriangle(Triangle{V: indices, Material: material, Emission: types.XYZ(10, 10, 6)}); err != nil {
		t.Fatal(err)
	}

	if len(sc.Emissive) != 1 {
		t.Fatalf("expected 1 emissive triangle; got %d", len(sc.Emissive))
	}
	if sc.Emissive[0] != 1 {
		t.Fatalf("expected emissive index 1; got %d", sc.Emissive[0])
	}
}

func TestTriangleVertices(t *testing.T) {
	sc := NewScene()
	material := &Material{Type: DiffuseBSDF}
	if err := sc.AddMaterial(material); err != nil {
		t.Fatal(err)
	}
	indices := makeVertices(sc)
	if err := sc.AddTriangle(Triangle{V: indices, Material: material}); err != nil {
		t.Fatal(err)
	}

	a, b, c := sc.TriangleVertices(&sc.Triangles[0])
	if a.Position != types.XYZ(0, 0, 0) || b.Position != types.XYZ(1, 0, 0) || c.Position != types.XYZ(0, 1, 0) {
		t.Fatalf("vertex resolution mismatch: %v %v %v", a.Position, b.Position, c.Position)
	}
}

func TestParseBSDFType(t *testing.T) {
	type spec struct {
		in       string
		out      BSDFType
		expError bool
	}
	specs := []spec{
		{"diffuse", DiffuseBSDF, false},
		{"", DiffuseBSDF, false},
		{"mirror", MirrorBSDF, false},
		{"phong", PhongBSDF, false},
		{"glass", DiffuseBSDF, true},
	}

	for idx, s := range specs {
		out, err := ParseBSDFType(s.in)
		if s.expError {
			if err == nil {
				t.Fatalf("[spec %d] expected an error for %q", idx, s.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %s", idx, err)
		}
		if out != s.out {
			t.Fatalf("[spec %d] expected %s; got %s", idx, s.out, out)
		}
	}
}

func TestSceneStats(t *testing.T) {
	sc := NewScene()
	material := &Material{Type: PhongBSDF, PhongExponent: 32}
	if err := sc.AddMaterial(material); err != nil {
		t.Fatal(err)
	}
	indices := makeVertices(sc)
	if err := sc.AddTriangle(Triangle{V: indices, Material: material, Emission: types.XYZ(1, 1, 1)}); err != nil {
		t.Fatal(err)
	}
	sc.Meshes = append(sc.Meshes, Mesh{Name: "panel.obj", Triangles: 1, Emissive: true})

	stats := sc.Stats()
	for _, want := range []string{"panel.obj", "phong (n=32)", "true"} {
		if !strings.Contains(stats, want) {
			t.Fatalf("expected stats to mention %q:\n%s", want, stats)
		}
	}
}
