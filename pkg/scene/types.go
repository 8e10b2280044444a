package scene

// Vec3 represents a point or direction in object-local space.
type Vec3 struct {
	X, Y, Z float64
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// Width returns the X extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Depth returns the Y extent.
func (b Box) Depth() float64 { return b.Max.Y - b.Min.Y }

// Height returns the Z extent.
func (b Box) Height() float64 { return b.Max.Z - b.Min.Z }

// Object is an opaque handle to a host scene object. Mesh is nil when the
// object is not a mesh (camera, empty, light).
type Object struct {
	Name  string
	Mesh  *Mesh
	Slots []*Material // material slot references; entries may repeat or be nil
}

// IsMesh reports whether the object carries mesh data.
func (o *Object) IsMesh() bool {
	return o != nil && o.Mesh != nil
}

// Materials returns the object's materials deduplicated by identity,
// preserving first-seen slot order. Empty slots are skipped. A material
// assigned to two slots appears exactly once.
func (o *Object) Materials() []*Material {
	if o == nil {
		return nil
	}
	seen := make(map[*Material]bool, len(o.Slots))
	var mats []*Material
	for _, m := range o.Slots {
		if m == nil || seen[m] {
			continue
		}
		seen[m] = true
		mats = append(mats, m)
	}
	return mats
}

// Images returns all images referenced by the object's materials,
// deduplicated by identity in first-seen order.
func (o *Object) Images() []*Image {
	seen := make(map[*Image]bool)
	var images []*Image
	for _, m := range o.Materials() {
		for _, img := range m.Images() {
			if seen[img] {
				continue
			}
			seen[img] = true
			images = append(images, img)
		}
	}
	return images
}

// Mesh holds raw authored geometry. Polygons index into Positions; Edges may
// be left empty, in which case edges are derived from polygon boundaries.
type Mesh struct {
	Positions [][3]float64
	Edges     [][2]int
	Polygons  [][]int
	UVLayers  []string
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// FaceCount returns the number of polygons.
func (m *Mesh) FaceCount() int { return len(m.Polygons) }

// HasUVs reports whether the mesh carries at least one UV layer.
func (m *Mesh) HasUVs() bool { return len(m.UVLayers) > 0 }

// EdgePairs returns the mesh's undirected edges. Explicit edges take
// precedence; otherwise edges are derived from polygon boundaries, each
// unique pair reported once.
func (m *Mesh) EdgePairs() [][2]int {
	if len(m.Edges) > 0 {
		return m.Edges
	}
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, poly := range m.Polygons {
		n := len(poly)
		for i := 0; i < n; i++ {
			e := orderEdge(poly[i], poly[(i+1)%n])
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// EdgeCount returns the number of undirected edges.
func (m *Mesh) EdgeCount() int { return len(m.EdgePairs()) }

// Bounds returns the local-space axis-aligned bounding box. A mesh without
// vertices yields the zero box.
func (m *Mesh) Bounds() Box {
	if len(m.Positions) == 0 {
		return Box{}
	}
	p := m.Positions[0]
	b := Box{
		Min: Vec3{p[0], p[1], p[2]},
		Max: Vec3{p[0], p[1], p[2]},
	}
	for _, p := range m.Positions[1:] {
		b.Min.X = min(b.Min.X, p[0])
		b.Min.Y = min(b.Min.Y, p[1])
		b.Min.Z = min(b.Min.Z, p[2])
		b.Max.X = max(b.Max.X, p[0])
		b.Max.Y = max(b.Max.Y, p[1])
		b.Max.Z = max(b.Max.Z, p[2])
	}
	return b
}

func orderEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
