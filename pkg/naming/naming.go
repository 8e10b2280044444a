// Package naming canonicalizes raw Blender object, material, and texture
// names into Unreal-legal asset names. All transformations are pure,
// deterministic, and idempotent.
package naming

import "strings"

// Kind selects which prefix convention applies to a name.
type Kind int

const (
	KindMesh     Kind = iota // static mesh objects (SM_)
	KindTexture              // image textures (T_)
	KindMaterial             // material instances (MI_)
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTexture:
		return "texture"
	case KindMaterial:
		return "material_instance"
	default:
		return "unknown"
	}
}

// Convention holds the required per-kind name prefixes.
type Convention struct {
	MeshPrefix     string
	TexturePrefix  string
	MaterialPrefix string
}

// Default returns the standard Unreal naming convention.
func Default() Convention {
	return Convention{
		MeshPrefix:     "SM_",
		TexturePrefix:  "T_",
		MaterialPrefix: "MI_",
	}
}

// Prefix returns the required prefix for the given kind.
func (c Convention) Prefix(k Kind) string {
	switch k {
	case KindMesh:
		return c.MeshPrefix
	case KindTexture:
		return c.TexturePrefix
	case KindMaterial:
		return c.MaterialPrefix
	default:
		return ""
	}
}

// Normalize produces the exported asset name for a raw source name: illegal
// characters are replaced and the kind's prefix is prepended if absent.
// An already-conformant name passes through unchanged, so
// Normalize(k, Normalize(k, s)) == Normalize(k, s).
func (c Convention) Normalize(k Kind, raw string) string {
	name := Sanitize(raw)
	prefix := c.Prefix(k)
	if prefix != "" && !strings.HasPrefix(name, prefix) {
		name = prefix + name
	}
	return name
}

// ValidatePrefix reports whether name already carries the required prefix.
// Used by validation to flag non-conformant source names as warnings rather
// than silently fixing them; the author fixes the name at origin.
func ValidatePrefix(prefix, name string) bool {
	return strings.HasPrefix(name, prefix)
}

// Sanitize replaces characters that are illegal in Unreal asset names.
// Letters, digits, underscore, hyphen, and dot (file extensions on texture
// names survive import) are kept; everything else becomes an underscore.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if legalRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func legalRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-' || r == '.':
		return true
	default:
		return false
	}
}
