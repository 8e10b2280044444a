// Package config provides export and validation settings. A Settings object
// is constructed once per run and passed by reference; "reloading" means
// constructing a new object with Load, never mutating one in place.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jackmchristensen/AssetForge/pkg/naming"
)

// Strictness decides whether ingestion is triggered after validation.
type Strictness string

const (
	ErrorsOnly        Strictness = "errors_only"         // errors block, warnings pass
	ErrorsAndWarnings Strictness = "errors_and_warnings" // warnings block too
	DoNotImport       Strictness = "do_not_import"       // never trigger ingestion
)

// ParseStrictness validates a strictness policy string.
func ParseStrictness(s string) (Strictness, error) {
	switch Strictness(s) {
	case ErrorsOnly, ErrorsAndWarnings, DoNotImport:
		return Strictness(s), nil
	default:
		return "", fmt.Errorf("unknown strictness policy %q", s)
	}
}

// Settings is an immutable-by-convention view over nested configuration
// values addressed with dotted keys, e.g. "naming_conventions.mesh_prefix".
type Settings struct {
	values map[string]any
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{values: defaultValues()}
}

// Load constructs Settings from defaults overlaid with the YAML file at
// path. An empty path yields the defaults.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading settings from %s: %w", path, err)
	}
	var overlay map[string]any
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.values = merge(s.values, overlay)
	return s, nil
}

func defaultValues() map[string]any {
	return map[string]any{
		"naming_conventions": map[string]any{
			"mesh_prefix":     "SM_",
			"texture_prefix":  "T_",
			"material_prefix": "MI_",
		},
		"asset_types": map[string]any{
			"PROP_SMALL": map[string]any{
				"max_triangles":    5000,
				"max_texture_size": 1024,
			},
			"PROP_HERO": map[string]any{
				"max_triangles":    60000,
				"max_texture_size": 4096,
			},
			"MODULAR": map[string]any{
				"max_triangles":    20000,
				"max_texture_size": 2048,
				"grid_unit":        0.1,
				"grid_epsilon":     1e-5,
			},
		},
		"export": map[string]any{
			"directory": "Exports",
			"format":    "obj",
		},
		"unreal": map[string]any{
			"project_path":     "",
			"assets_directory": "/Game/Assets",
			"master_material":  "",
			"editor_binary":    "",
			"ingest_script":    "",
		},
		"strictness": string(ErrorsOnly),
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// merge overlays b onto a, recursing into nested maps. Neither input map is
// mutated.
func merge(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if bm, ok := v.(map[string]any); ok {
			if am, ok := out[k].(map[string]any); ok {
				out[k] = merge(am, bm)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Get returns the value at a dotted key path, or def when any path segment
// is missing.
func (s *Settings) Get(key string, def any) any {
	value := any(s.values)
	for _, k := range strings.Split(key, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return def
		}
		value, ok = m[k]
		if !ok {
			return def
		}
	}
	return value
}

// GetString returns a string value at key.
func (s *Settings) GetString(key, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}

// GetInt returns an integer value at key. YAML numbers arrive as int or
// float64 depending on their lexical form.
func (s *Settings) GetInt(key string, def int) int {
	switch v := s.Get(key, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// GetFloat returns a float value at key.
func (s *Settings) GetFloat(key string, def float64) float64 {
	switch v := s.Get(key, def).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// ---------------------------------------------------------------------------
// Typed accessors
// ---------------------------------------------------------------------------

// Naming returns the configured naming convention.
func (s *Settings) Naming() naming.Convention {
	def := naming.Default()
	return naming.Convention{
		MeshPrefix:     s.GetString("naming_conventions.mesh_prefix", def.MeshPrefix),
		TexturePrefix:  s.GetString("naming_conventions.texture_prefix", def.TexturePrefix),
		MaterialPrefix: s.GetString("naming_conventions.material_prefix", def.MaterialPrefix),
	}
}

// CanonicalAssetType upper-cases an asset type so "modular" and "MODULAR"
// address the same profile.
func CanonicalAssetType(assetType string) string {
	return strings.ToUpper(assetType)
}

// TriangleBudget returns the maximum evaluated triangle count for an asset
// type. Unknown asset types get a permissive default.
func (s *Settings) TriangleBudget(assetType string) int {
	return s.GetInt("asset_types."+CanonicalAssetType(assetType)+".max_triangles", 100000)
}

// TextureBudget returns the maximum texture width for an asset type.
func (s *Settings) TextureBudget(assetType string) int {
	return s.GetInt("asset_types."+CanonicalAssetType(assetType)+".max_texture_size", 8192)
}

// GridUnit returns the modular grid unit for an asset type, 0 if none.
func (s *Settings) GridUnit(assetType string) float64 {
	return s.GetFloat("asset_types."+CanonicalAssetType(assetType)+".grid_unit", 0)
}

// GridEpsilon returns the modular grid tolerance for an asset type.
func (s *Settings) GridEpsilon(assetType string) float64 {
	return s.GetFloat("asset_types."+CanonicalAssetType(assetType)+".grid_epsilon", 1e-5)
}

// Strictness returns the ingestion gating policy.
func (s *Settings) Strictness() Strictness {
	p, err := ParseStrictness(s.GetString("strictness", string(ErrorsOnly)))
	if err != nil {
		return ErrorsOnly
	}
	return p
}

// ExportDir returns the shared export directory.
func (s *Settings) ExportDir() string {
	return s.GetString("export.directory", "Exports")
}

// ExportFormat returns the geometry interchange format name.
func (s *Settings) ExportFormat() string {
	return s.GetString("export.format", "obj")
}

// Unreal destination settings.
type Unreal struct {
	ProjectPath     string
	AssetsDirectory string
	MasterMaterial  string
	EditorBinary    string
	IngestScript    string
}

// Unreal returns the target-engine destination settings.
func (s *Settings) Unreal() Unreal {
	return Unreal{
		ProjectPath:     s.GetString("unreal.project_path", ""),
		AssetsDirectory: s.GetString("unreal.assets_directory", "/Game/Assets"),
		MasterMaterial:  s.GetString("unreal.master_material", ""),
		EditorBinary:    s.GetString("unreal.editor_binary", ""),
		IngestScript:    s.GetString("unreal.ingest_script", ""),
	}
}

// LogLevel returns the configured log level.
func (s *Settings) LogLevel() string { return s.GetString("logging.level", "info") }

// LogFile returns the log file path, empty for console-only logging.
func (s *Settings) LogFile() string { return s.GetString("logging.file", "") }
