package reader

import (
	"fmt"
	"os"
	"path/filepath"

	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
	"gopkg.in/yaml.v3"
)

// A scene description file lists the meshes to render together with the
// base color, emission and reflectance model each one is instantiated with.
type sceneDesc struct {
	Meshes []meshDesc `yaml:"meshes"`
}

type meshDesc struct {
	File     string      `yaml:"file"`
	Color    *types.Vec3 `yaml:"color"`
	Emission *types.Vec3 `yaml:"emission"`
	Material string      `yaml:"material"`
	Exponent int         `yaml:"exponent"`
}

// Materials are shared between meshes that request the same kind. The
// exponent only disambiguates Phong materials.
type materialKey struct {
	matType  scenePkg.BSDFType
	exponent int
}

// ReadScene loads a yaml scene description and every mesh file it
// references. Mesh files relative to the description are resolved against
// its directory. A missing mesh file is reported and skipped; the scene is
// built from whatever meshes load.
func ReadScene(path string) (*scenePkg.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reader: could not open scene description: %s", err)
	}

	var desc sceneDesc
	if err = yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("reader: could not parse scene description %s: %s", path, err)
	}

	sc := scenePkg.NewScene()
	materials := make(map[materialKey]*scenePkg.Material)

	for _, mesh := range desc.Meshes {
		if mesh.File == "" {
			return nil, fmt.Errorf("reader: scene description %s contains a mesh entry without a file", path)
		}

		matType, err := scenePkg.ParseBSDFType(mesh.Material)
		if err != nil {
			return nil, err
		}

		key := materialKey{matType: matType, exponent: mesh.Exponent}
		if matType != scenePkg.PhongBSDF {
			key.exponent = 0
		}
		material, exists := materials[key]
		if !exists {
			material = &scenePkg.Material{Type: key.matType, PhongExponent: key.exponent}
			materials[key] = material
			sc.AddMaterial(material)
		}

		opts := MeshOptions{
			Color:    types.XYZ(1, 1, 1),
			Material: material,
		}
		if mesh.Color != nil {
			opts.Color = *mesh.Color
		}
		if mesh.Emission != nil {
			opts.Emission = *mesh.Emission
		}

		meshFile := mesh.File
		if !filepath.IsAbs(meshFile) {
			meshFile = filepath.Join(filepath.Dir(path), meshFile)
		}

		if err = ReadMesh(sc, meshFile, opts); err != nil {
			logger.Errorf("skipping mesh %s: %s", mesh.File, err)
		}
	}

	return sc, nil
}
