// Package scene defines the scene-access capability the pipeline depends on.
// A live host (Blender) implements Scene against its object graph; the
// in-memory implementation in this package backs tests and the CLI. The core
// only borrows scene data for the duration of one pipeline run and never
// owns or mutates it.
package scene

import "errors"

// ErrNoSelection is returned when no eligible mesh object is selected.
var ErrNoSelection = errors.New("no mesh object selected")

// Scene is the abstract host-scene capability.
type Scene interface {
	// BlendFile returns the path of the source scene file, for manifest
	// source identity. May be empty for unsaved scenes.
	BlendFile() string

	// ActiveObject returns the currently selected mesh object, or
	// ErrNoSelection when nothing eligible is selected.
	ActiveObject() (*Object, error)

	// Evaluated returns a temporary modifier-applied snapshot of the
	// object's mesh. The caller must Release it on every exit path; the
	// host treats an unreleased evaluated mesh as a leak.
	Evaluated(obj *Object) (EvaluatedMesh, error)

	// EditMode switches the object into an edit-capable mode for manifold
	// inspection. Close restores the prior mode unconditionally.
	EditMode(obj *Object) (EditSession, error)
}

// EvaluatedMesh is a scoped handle to a temporary evaluated mesh.
type EvaluatedMesh interface {
	Mesh() *Mesh
	Release()
}

// EditSession is a scoped edit-mode handle.
type EditSession interface {
	// SelectNonManifold clears any selection, selects all non-manifold
	// geometry, and returns the selected vertex and edge counts.
	SelectNonManifold() (verts, edges int)

	// Close restores the mode that was active before the session began.
	Close()
}
