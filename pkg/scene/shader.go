package scene

// NodeType identifies the shader node kinds the classifier recognizes.
// Values mirror the host's node type identifiers.
type NodeType string

const (
	NodePrincipledBSDF NodeType = "BSDF_PRINCIPLED" // principled surface shader
	NodeTexImage       NodeType = "TEX_IMAGE"       // image texture
	NodeNormalMap      NodeType = "NORMAL_MAP"      // normal map indirection
)

// SocketKind distinguishes scalar sockets from color/vector sockets, which
// determines the shape of a constant value read from an unconnected socket.
type SocketKind int

const (
	SocketScalar SocketKind = iota // single float
	SocketColor                    // 3-component RGB
	SocketVector                   // 3-component XYZ
)

// Image is a host image datablock referenced by texture nodes.
type Image struct {
	Name       string
	FilePath   string // absolute path on disk; may be empty for packed images
	Colorspace string // e.g. "sRGB", "Non-Color"
	Width      int
	Height     int
}

// Square reports whether the image has equal width and height.
func (i *Image) Square() bool { return i.Width == i.Height }

// Socket is a typed input socket on a shader node. Link is nil when the
// socket is unconnected, in which case Default holds the literal value
// (1 component for scalar sockets, 3 for color/vector).
type Socket struct {
	Name    string
	Kind    SocketKind
	Default []float64
	Link    *ShaderNode // upstream node feeding this socket
}

// ShaderNode is one node in a material's node graph. Image is set only on
// TEX_IMAGE nodes that have a resolved image datablock.
type ShaderNode struct {
	Name   string
	Type   NodeType
	Inputs []*Socket
	Image  *Image
}

// Input returns the named input socket, or nil.
func (n *ShaderNode) Input(name string) *Socket {
	for _, s := range n.Inputs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// NodeGraph is a material's shader node graph.
type NodeGraph struct {
	Nodes []*ShaderNode
}

// FirstOfType returns the first node of the given type in authoring order,
// or nil.
func (g *NodeGraph) FirstOfType(t NodeType) *ShaderNode {
	if g == nil {
		return nil
	}
	for _, n := range g.Nodes {
		if n.Type == t {
			return n
		}
	}
	return nil
}

// Material is a host material referenced by object slots.
type Material struct {
	Name     string
	UseNodes bool
	Graph    *NodeGraph
}

// Images returns images referenced by the material's texture nodes,
// deduplicated by identity in node order. Texture nodes without a resolved
// image are skipped.
func (m *Material) Images() []*Image {
	if !m.UseNodes || m.Graph == nil {
		return nil
	}
	seen := make(map[*Image]bool)
	var images []*Image
	for _, n := range m.Graph.Nodes {
		if n.Type != NodeTexImage || n.Image == nil {
			continue
		}
		if seen[n.Image] {
			continue
		}
		seen[n.Image] = true
		images = append(images, n.Image)
	}
	return images
}
