// Package stats computes mesh geometry statistics for raw and
// modifier-evaluated meshes.
package stats

import (
	"fmt"

	"github.com/jackmchristensen/AssetForge/pkg/scene"
)

// MeshStats holds geometry counts for one mesh representation.
type MeshStats struct {
	Vertices  int `json:"vertices"`
	Edges     int `json:"edges"`
	Faces     int `json:"faces"`
	Triangles int `json:"triangles"`
}

// Compute returns statistics for a mesh. Triangle count assumes fan
// triangulation: every polygon contributes len(vertices)-2 triangles.
// A degenerate polygon with fewer than three vertices is rejected; the
// formula would go negative and such geometry means the source data is
// corrupt, which the validator exists to surface rather than paper over.
func Compute(m *scene.Mesh) (MeshStats, error) {
	triangles := 0
	for i, poly := range m.Polygons {
		if len(poly) < 3 {
			return MeshStats{}, fmt.Errorf("degenerate polygon %d has %d vertices", i, len(poly))
		}
		triangles += len(poly) - 2
	}
	return MeshStats{
		Vertices:  m.VertexCount(),
		Edges:     m.EdgeCount(),
		Faces:     m.FaceCount(),
		Triangles: triangles,
	}, nil
}

// Evaluated returns statistics for the object's modifier-applied mesh. The
// temporary evaluated mesh is released on every exit path.
func Evaluated(sc scene.Scene, obj *scene.Object) (MeshStats, error) {
	ev, err := sc.Evaluated(obj)
	if err != nil {
		return MeshStats{}, fmt.Errorf("evaluating %q: %w", obj.Name, err)
	}
	defer ev.Release()
	return Compute(ev.Mesh())
}

// EvaluatedBounds returns the local-space bounding box of the object's
// modifier-applied mesh, releasing the temporary mesh before returning.
func EvaluatedBounds(sc scene.Scene, obj *scene.Object) (scene.Box, error) {
	ev, err := sc.Evaluated(obj)
	if err != nil {
		return scene.Box{}, fmt.Errorf("evaluating %q: %w", obj.Name, err)
	}
	defer ev.Release()
	return ev.Mesh().Bounds(), nil
}
