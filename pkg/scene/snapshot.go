package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk scene description consumed by the CLI so that
// validation and classification can run without a live host. YAML and JSON
// both parse (JSON is a YAML subset).
type Snapshot struct {
	File    string             `yaml:"file"`
	Active  string             `yaml:"active"`
	Objects []SnapshotObject   `yaml:"objects"`
	Images  []SnapshotImage    `yaml:"images"`
	Mats    []SnapshotMaterial `yaml:"materials"`
}

// SnapshotObject describes one object. Materials lists slot assignments by
// material name; an empty string is an empty slot.
type SnapshotObject struct {
	Name      string        `yaml:"name"`
	Mesh      *SnapshotMesh `yaml:"mesh"`
	Evaluated *SnapshotMesh `yaml:"evaluated"`
	Materials []string      `yaml:"materials"`
}

// SnapshotMesh mirrors Mesh with wire tags.
type SnapshotMesh struct {
	Positions [][3]float64 `yaml:"positions"`
	Edges     [][2]int     `yaml:"edges"`
	Polygons  [][]int      `yaml:"polygons"`
	UVLayers  []string     `yaml:"uv_layers"`
}

// SnapshotImage describes an image datablock.
type SnapshotImage struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	Colorspace string `yaml:"colorspace"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
}

// SnapshotMaterial describes a material and its node graph. Node links are
// by node name.
type SnapshotMaterial struct {
	Name     string         `yaml:"name"`
	UseNodes bool           `yaml:"use_nodes"`
	Nodes    []SnapshotNode `yaml:"nodes"`
}

// SnapshotNode describes one shader node. Image references a SnapshotImage
// by name and applies to TEX_IMAGE nodes only.
type SnapshotNode struct {
	Name   string           `yaml:"name"`
	Type   string           `yaml:"type"`
	Image  string           `yaml:"image"`
	Inputs []SnapshotSocket `yaml:"inputs"`
}

// SnapshotSocket describes one input socket. From names the upstream node;
// Value holds the literal default (1 component for scalar, 3 otherwise).
type SnapshotSocket struct {
	Name  string    `yaml:"name"`
	Kind  string    `yaml:"kind"` // scalar | color | vector
	Value []float64 `yaml:"value"`
	From  string    `yaml:"from"`
}

// LoadSnapshot reads a snapshot file and builds a Memory scene from it.
func LoadSnapshot(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap.Build()
}

// Build converts the snapshot into a Memory scene, resolving image and node
// references by name.
func (snap *Snapshot) Build() (*Memory, error) {
	s := NewMemory(snap.File)
	s.ActiveName = snap.Active

	images := make(map[string]*Image, len(snap.Images))
	for _, si := range snap.Images {
		images[si.Name] = &Image{
			Name:       si.Name,
			FilePath:   si.Path,
			Colorspace: si.Colorspace,
			Width:      si.Width,
			Height:     si.Height,
		}
	}

	materials := make(map[string]*Material, len(snap.Mats))
	for _, sm := range snap.Mats {
		mat, err := sm.build(images)
		if err != nil {
			return nil, err
		}
		materials[sm.Name] = mat
	}

	for _, so := range snap.Objects {
		obj := &Object{Name: so.Name}
		if so.Mesh != nil {
			obj.Mesh = so.Mesh.build()
		}
		if so.Evaluated != nil {
			s.EvaluatedMeshes[so.Name] = so.Evaluated.build()
		}
		for _, name := range so.Materials {
			if name == "" {
				obj.Slots = append(obj.Slots, nil)
				continue
			}
			mat, ok := materials[name]
			if !ok {
				return nil, fmt.Errorf("object %q references unknown material %q", so.Name, name)
			}
			obj.Slots = append(obj.Slots, mat)
		}
		s.Add(obj)
	}
	return s, nil
}

func (sm *SnapshotMesh) build() *Mesh {
	return &Mesh{
		Positions: sm.Positions,
		Edges:     sm.Edges,
		Polygons:  sm.Polygons,
		UVLayers:  sm.UVLayers,
	}
}

func (sm *SnapshotMaterial) build(images map[string]*Image) (*Material, error) {
	mat := &Material{Name: sm.Name, UseNodes: sm.UseNodes}
	if len(sm.Nodes) == 0 {
		return mat, nil
	}

	graph := &NodeGraph{}
	byName := make(map[string]*ShaderNode, len(sm.Nodes))
	for _, sn := range sm.Nodes {
		node := &ShaderNode{Name: sn.Name, Type: NodeType(sn.Type)}
		if sn.Image != "" {
			img, ok := images[sn.Image]
			if !ok {
				return nil, fmt.Errorf("material %q node %q references unknown image %q", sm.Name, sn.Name, sn.Image)
			}
			node.Image = img
		}
		graph.Nodes = append(graph.Nodes, node)
		byName[sn.Name] = node
	}

	// Second pass: sockets and links, once all nodes exist.
	for i, sn := range sm.Nodes {
		node := graph.Nodes[i]
		for _, ss := range sn.Inputs {
			kind, err := parseSocketKind(ss.Kind)
			if err != nil {
				return nil, fmt.Errorf("material %q node %q socket %q: %w", sm.Name, sn.Name, ss.Name, err)
			}
			sock := &Socket{Name: ss.Name, Kind: kind, Default: ss.Value}
			if ss.From != "" {
				link, ok := byName[ss.From]
				if !ok {
					return nil, fmt.Errorf("material %q node %q socket %q links to unknown node %q", sm.Name, sn.Name, ss.Name, ss.From)
				}
				sock.Link = link
			}
			node.Inputs = append(node.Inputs, sock)
		}
	}
	mat.Graph = graph
	return mat, nil
}

func parseSocketKind(s string) (SocketKind, error) {
	switch s {
	case "", "scalar":
		return SocketScalar, nil
	case "color":
		return SocketColor, nil
	case "vector":
		return SocketVector, nil
	default:
		return 0, fmt.Errorf("unknown socket kind %q", s)
	}
}
