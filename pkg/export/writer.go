// Package export orchestrates the full pipeline for one selected object:
// manifest assembly, geometry and manifest writing, canonical renaming, and
// the fire-and-forget handoff to the engine-side ingestion process.
package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/jackmchristensen/AssetForge/pkg/scene"
)

// GeometryWriter serializes an object's mesh to an interchange file. The
// host's own exporter (FBX) is the production implementation; ObjWriter is
// the built-in fallback so snapshot-driven runs still produce real files.
type GeometryWriter interface {
	// Write serializes the object's evaluated geometry to path.
	Write(sc scene.Scene, obj *scene.Object, path string) error
}

// ObjWriter writes Wavefront OBJ geometry.
type ObjWriter struct{}

var _ GeometryWriter = ObjWriter{}

// Write serializes the object's modifier-applied mesh as OBJ. The temporary
// evaluated mesh is released before returning.
func (ObjWriter) Write(sc scene.Scene, obj *scene.Object, path string) error {
	ev, err := sc.Evaluated(obj)
	if err != nil {
		return fmt.Errorf("evaluating %q: %w", obj.Name, err)
	}
	defer ev.Release()
	mesh := ev.Mesh()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "o %s\n", obj.Name)
	for _, p := range mesh.Positions {
		fmt.Fprintf(w, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, poly := range mesh.Polygons {
		fmt.Fprint(w, "f")
		for _, idx := range poly {
			// OBJ indices are 1-based.
			fmt.Fprintf(w, " %d", idx+1)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
