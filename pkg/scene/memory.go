package scene

import "fmt"

// Memory is an in-memory Scene implementation. It backs tests and the CLI's
// snapshot mode, and mirrors the host contract closely enough to exercise
// the scoped-resource paths: evaluated meshes must be released and edit
// sessions must restore the prior mode.
type Memory struct {
	File       string
	Objects    []*Object
	ActiveName string

	// EvaluatedMeshes maps object name to its modifier-applied snapshot.
	// Objects without an entry evaluate to their raw mesh.
	EvaluatedMeshes map[string]*Mesh

	mode      string
	openEvals int
}

var _ Scene = (*Memory)(nil)

// NewMemory creates an empty in-memory scene in object mode.
func NewMemory(file string) *Memory {
	return &Memory{
		File:            file,
		EvaluatedMeshes: make(map[string]*Mesh),
		mode:            "OBJECT",
	}
}

// Add appends an object to the scene.
func (s *Memory) Add(obj *Object) {
	s.Objects = append(s.Objects, obj)
}

// BlendFile returns the source file path.
func (s *Memory) BlendFile() string { return s.File }

// Mode returns the current interaction mode ("OBJECT" or "EDIT").
func (s *Memory) Mode() string { return s.mode }

// OpenEvaluations returns the number of evaluated meshes that have been
// handed out and not yet released. Tests assert this drops back to zero.
func (s *Memory) OpenEvaluations() int { return s.openEvals }

// ActiveObject returns the selected mesh object.
func (s *Memory) ActiveObject() (*Object, error) {
	for _, obj := range s.Objects {
		if obj.Name == s.ActiveName {
			if !obj.IsMesh() {
				return nil, fmt.Errorf("%w: %q is not a mesh", ErrNoSelection, obj.Name)
			}
			return obj, nil
		}
	}
	return nil, ErrNoSelection
}

// Evaluated returns the object's modifier-applied mesh snapshot.
func (s *Memory) Evaluated(obj *Object) (EvaluatedMesh, error) {
	if !obj.IsMesh() {
		return nil, fmt.Errorf("cannot evaluate %q: not a mesh", obj.Name)
	}
	mesh := obj.Mesh
	if ev, ok := s.EvaluatedMeshes[obj.Name]; ok {
		mesh = ev
	}
	s.openEvals++
	return &memoryEvaluated{scene: s, mesh: mesh}, nil
}

type memoryEvaluated struct {
	scene    *Memory
	mesh     *Mesh
	released bool
}

func (e *memoryEvaluated) Mesh() *Mesh { return e.mesh }

func (e *memoryEvaluated) Release() {
	if e.released {
		return
	}
	e.released = true
	e.scene.openEvals--
}

// EditMode begins an edit session on the object, recording the prior mode.
func (s *Memory) EditMode(obj *Object) (EditSession, error) {
	if !obj.IsMesh() {
		return nil, fmt.Errorf("cannot edit %q: not a mesh", obj.Name)
	}
	prev := s.mode
	s.mode = "EDIT"
	return &memoryEdit{scene: s, mesh: obj.Mesh, prevMode: prev}, nil
}

type memoryEdit struct {
	scene    *Memory
	mesh     *Mesh
	prevMode string
	closed   bool
}

// SelectNonManifold counts non-manifold geometry: edges bounded by a face
// count other than two (wire, boundary, or fan edges), the vertices on
// those edges, and vertices belonging to no edge at all.
func (e *memoryEdit) SelectNonManifold() (verts, edges int) {
	faceCount := make(map[[2]int]int)
	for _, poly := range e.mesh.Polygons {
		n := len(poly)
		for i := 0; i < n; i++ {
			faceCount[orderEdge(poly[i], poly[(i+1)%n])]++
		}
	}

	badVerts := make(map[int]bool)
	inEdge := make(map[int]bool)
	for _, pair := range e.mesh.EdgePairs() {
		inEdge[pair[0]] = true
		inEdge[pair[1]] = true
		if faceCount[pair] != 2 {
			edges++
			badVerts[pair[0]] = true
			badVerts[pair[1]] = true
		}
	}
	for i := range e.mesh.Positions {
		if !inEdge[i] {
			badVerts[i] = true
		}
	}
	return len(badVerts), edges
}

// Close restores the mode that was active before the session.
func (e *memoryEdit) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.scene.mode = e.prevMode
}
