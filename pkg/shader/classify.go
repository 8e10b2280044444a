// Package shader classifies a material's node graph into per-channel
// parameter descriptions. Traversal is a bounded pattern match over a small
// closed set of node shapes (at most one hop of indirection for normal
// maps), never a general graph walk, so authoring mistakes like cycles
// cannot cause unbounded recursion.
package shader

import (
	"errors"
	"fmt"

	"github.com/jackmchristensen/AssetForge/pkg/naming"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
)

// ErrNoSurfaceShader is returned when a material has no principled surface
// shader node and therefore cannot be classified.
var ErrNoSurfaceShader = errors.New("no principled surface shader")

// Channel is one of the six semantic material channels the classifier
// always reports.
type Channel string

const (
	ChannelBaseColor Channel = "base_color"
	ChannelRoughness Channel = "roughness"
	ChannelMetallic  Channel = "metallic"
	ChannelNormal    Channel = "normal"
	ChannelEmission  Channel = "emission_color"
	ChannelAlpha     Channel = "alpha"
)

// Channels lists all semantic channels in reporting order.
var Channels = []Channel{
	ChannelBaseColor,
	ChannelRoughness,
	ChannelMetallic,
	ChannelNormal,
	ChannelEmission,
	ChannelAlpha,
}

// channelSockets maps each channel to its input socket name on the
// principled shader node.
var channelSockets = map[Channel]string{
	ChannelBaseColor: "Base Color",
	ChannelRoughness: "Roughness",
	ChannelMetallic:  "Metallic",
	ChannelNormal:    "Normal",
	ChannelEmission:  "Emission Color",
	ChannelAlpha:     "Alpha",
}

// ParamType discriminates the three parameter variants.
type ParamType string

const (
	ParamConstant ParamType = "constant" // literal socket value
	ParamTexture  ParamType = "texture"  // external image reference
	ParamComplex  ParamType = "complex"  // node expression, not interpreted
)

// Parameter describes one classified channel. Exactly one variant applies:
// constants carry Value (a float64 for scalar sockets, a []float64 of three
// components otherwise); textures carry Path/Colorspace/names and, for
// normal-map indirections, Usage; complex carries nothing further.
type Parameter struct {
	Type           ParamType `json:"type"`
	Value          any       `json:"value,omitempty"`
	Path           string    `json:"path,omitempty"`
	Colorspace     string    `json:"colorspace,omitempty"`
	Usage          string    `json:"usage,omitempty"`
	OriginalName   string    `json:"original_name,omitempty"`
	NormalizedName string    `json:"normalized_name,omitempty"`
}

// Classify walks the material's node graph and returns a parameter for each
// of the six semantic channels. The surface shader is located as the first
// principled-BSDF node in the graph; whether that node actually feeds the
// material output is not verified.
func Classify(mat *scene.Material, conv naming.Convention) (map[Channel]Parameter, error) {
	if mat == nil || !mat.UseNodes || mat.Graph == nil {
		return nil, fmt.Errorf("material %q: %w", matName(mat), ErrNoSurfaceShader)
	}
	node := mat.Graph.FirstOfType(scene.NodePrincipledBSDF)
	if node == nil {
		return nil, fmt.Errorf("material %q: %w", mat.Name, ErrNoSurfaceShader)
	}

	params := make(map[Channel]Parameter, len(Channels))
	for _, ch := range Channels {
		params[ch] = classifySocket(node.Input(channelSockets[ch]), conv)
	}
	return params, nil
}

func classifySocket(sock *scene.Socket, conv naming.Convention) Parameter {
	if sock == nil {
		// Socket not reported by the host; nothing to interpret.
		return Parameter{Type: ParamComplex}
	}

	if sock.Link == nil {
		return Parameter{Type: ParamConstant, Value: constantValue(sock)}
	}

	link := sock.Link
	switch {
	case link.Type == scene.NodeTexImage && link.Image != nil:
		return textureParameter(link.Image, conv, "")

	case link.Type == scene.NodeNormalMap:
		// Follow the normal map's own color input one hop further.
		if color := link.Input("Color"); color != nil && color.Link != nil {
			if tex := color.Link; tex.Type == scene.NodeTexImage && tex.Image != nil {
				return textureParameter(tex.Image, conv, "normal")
			}
		}
		return Parameter{Type: ParamComplex}

	default:
		// Arithmetic, procedural textures, mix chains: not interpreted.
		return Parameter{Type: ParamComplex}
	}
}

func constantValue(sock *scene.Socket) any {
	if sock.Kind == scene.SocketScalar {
		if len(sock.Default) > 0 {
			return sock.Default[0]
		}
		return float64(0)
	}
	value := make([]float64, 3)
	copy(value, sock.Default)
	return value
}

func textureParameter(img *scene.Image, conv naming.Convention, usage string) Parameter {
	return Parameter{
		Type:           ParamTexture,
		Path:           img.FilePath,
		Colorspace:     img.Colorspace,
		Usage:          usage,
		OriginalName:   img.Name,
		NormalizedName: conv.Normalize(naming.KindTexture, img.Name),
	}
}

func matName(mat *scene.Material) string {
	if mat == nil {
		return ""
	}
	return mat.Name
}
