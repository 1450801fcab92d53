package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/DanielQ-51/cpu-pathtracer/log"
	scenePkg "github.com/DanielQ-51/cpu-pathtracer/scene"
	"github.com/DanielQ-51/cpu-pathtracer/types"
)

var logger = log.New("reader")

// MeshOptions binds the caller-supplied attributes that every triangle
// loaded from a mesh file receives.
type MeshOptions struct {
	// Base color assigned to each created vertex.
	Color types.Vec3

	// Emitted radiance. Non-zero emission places the mesh triangles on the
	// scene's emissive list.
	Emission types.Vec3

	// The reflectance model shared by the mesh triangles. Must already be
	// added to the scene.
	Material *scenePkg.Material
}

// ReadMesh parses the wavefront obj file at path and appends its triangles
// to the scene. Malformed records are skipped; real-world exporters emit
// enough junk that strict parsing would reject usable meshes.
func ReadMesh(sc *scenePkg.Scene, path string, opts MeshOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reader: could not open mesh file: %s", err)
	}
	defer f.Close()

	start := time.Now()
	triCount, err := parseMesh(sc, f, opts)
	if err != nil {
		return err
	}

	sc.Meshes = append(sc.Meshes, scenePkg.Mesh{
		Name:      filepath.Base(path),
		Triangles: triCount,
		Emissive:  opts.Emission.LenSqr() > 0,
	})

	logger.Infof("parsed %s (%d triangles) in %d ms", path, triCount, time.Since(start).Nanoseconds()/1000000)
	return nil
}

// Parse wavefront records off r, appending triangles to the scene. Returns
// the number of triangles emitted.
func parseMesh(sc *scenePkg.Scene, r io.Reader, opts MeshOptions) (int, error) {
	positions := make([]types.Vec3, 0)
	normals := make([]types.Vec3, 0)
	triCount := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				continue
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				continue
			}
			normals = append(normals, v)
		case "vt":
			// Texture coordinates are not used.
		case "f":
			triCount += emitFace(sc, lineTokens, positions, normals, opts)
		}
	}
	if err := scanner.Err(); err != nil {
		return triCount, fmt.Errorf("reader: error reading mesh file: %s", err)
	}

	return triCount, nil
}

// A face corner resolved against the position/normal lists. normal is -1
// when the face argument carries no normal index.
type faceCorner struct {
	position int
	normal   int
}

// Parse a face record and append its triangles to the scene. A triangular
// face emits one triangle; quads and n-gons are fan split at the first
// corner. Returns the number of triangles emitted; a face that fails to
// parse emits none.
func emitFace(sc *scenePkg.Scene, lineTokens []string, positions, normals []types.Vec3, opts MeshOptions) int {
	corners := make([]faceCorner, 0, len(lineTokens)-1)
	for _, arg := range lineTokens[1:] {
		corner, err := parseFaceCorner(arg, len(positions), len(normals))
		if err != nil {
			return 0
		}
		corners = append(corners, corner)
	}
	if len(corners) < 3 {
		return 0
	}

	triCount := 0
	for i := 1; i < len(corners)-1; i++ {
		fan := [3]faceCorner{corners[0], corners[i], corners[i+1]}

		var tri scenePkg.Triangle
		for c, corner := range fan {
			tri.V[c] = sc.AddVertex(scenePkg.Vertex{
				Position: positions[corner.position],
				Color:    opts.Color,
				Normal:   cornerNormal(corner, fan, positions, normals),
			})
		}
		tri.Emission = opts.Emission
		tri.Material = opts.Material

		if err := sc.AddTriangle(tri); err != nil {
			// Unreachable for vertices created above; keep the count honest.
			continue
		}
		triCount++
	}
	return triCount
}

// Resolve a corner's shading normal. Corners without a normal index fall
// back to the sub-face geometric normal; a degenerate sub-face yields a zero
// normal and is later rejected by the intersection test anyway.
func cornerNormal(corner faceCorner, fan [3]faceCorner, positions, normals []types.Vec3) types.Vec3 {
	if corner.normal >= 0 {
		return normals[corner.normal]
	}

	a := positions[fan[0].position]
	e1 := positions[fan[1].position].Sub(a)
	e2 := positions[fan[2].position].Sub(a)
	n := e1.Cross(e2)
	if n.LenSqr() == 0 {
		return types.Vec3{}
	}
	return n.Normalize()
}

// Parse a single face argument of the form
// index[/uvIndex[/normalIndex]] where sub-fields may be empty. Indices are
// 1-based; negative values select off the end of the respective list.
func parseFaceCorner(arg string, numPositions, numNormals int) (faceCorner, error) {
	fields := strings.Split(arg, "/")
	if fields[0] == "" {
		return faceCorner{}, fmt.Errorf("face argument does not include a vertex index")
	}

	posIndex, err := selectCoordIndex(fields[0], numPositions)
	if err != nil {
		return faceCorner{}, err
	}

	corner := faceCorner{position: posIndex, normal: -1}
	if len(fields) == 3 && fields[2] != "" {
		corner.normal, err = selectCoordIndex(fields[2], numNormals)
		if err != nil {
			return faceCorner{}, err
		}
	}
	return corner, nil
}

// Convert a 1-based, possibly negative coordinate index to a 0-based offset
// into a list of the given length.
func selectCoordIndex(field string, listLen int) (int, error) {
	index, err := strconv.Atoi(field)
	if err != nil {
		return -1, err
	}

	if index < 0 {
		index += listLen
	} else {
		index--
	}

	if index < 0 || index >= listLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return index, nil
}

// Parse a vector from a record of the form "prefix x y z".
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var v types.Vec3
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return types.Vec3{}, err
		}
		v[i] = val
	}
	return v, nil
}
