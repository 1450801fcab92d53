package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of scene statistics.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Material", "Triangles", "Emissive"})

	for _, mesh := range s.Meshes {
		table.Append([]string{
			mesh.Name,
			meshMaterialName(s, mesh.Name),
			fmt.Sprintf("%d", mesh.Triangles),
			fmt.Sprintf("%t", mesh.Emissive),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d materials", len(s.Materials)),
		fmt.Sprintf("%d", len(s.Triangles)),
		fmt.Sprintf("%d", len(s.Emissive)),
	})

	table.Render()
	return buf.String()
}

// Look up the material name for a mesh by scanning its triangle range. All
// triangles from one mesh file share a material, so the first match wins.
func meshMaterialName(s *Scene, name string) string {
	offset := 0
	for _, mesh := range s.Meshes {
		if mesh.Name == name && mesh.Triangles > 0 && offset < len(s.Triangles) {
			mat := s.Triangles[offset].Material
			if mat.Type == PhongBSDF {
				return fmt.Sprintf("%s (n=%d)", mat.Type, mat.PhongExponent)
			}
			return mat.Type.String()
		}
		offset += mesh.Triangles
	}
	return "-"
}
