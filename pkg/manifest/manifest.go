// Package manifest defines the versioned export manifest, the sole handoff
// artifact between this tool and the engine-side ingestion process.
package manifest

import (
	"encoding/json"

	"github.com/jackmchristensen/AssetForge/pkg/shader"
	"github.com/jackmchristensen/AssetForge/pkg/stats"
	"github.com/jackmchristensen/AssetForge/pkg/validate"
)

// Schema identifies the manifest document type.
const Schema = "asset_forge.export"

// SchemaVersion is bumped whenever the document layout changes.
const SchemaVersion = "0.2.0"

// TimestampLayout is the fixed UTC timestamp format used in manifests.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Manifest is the complete export document. It is written once and never
// modified; the ingestion process treats it as read-only.
type Manifest struct {
	Schema        string          `json:"schema"`
	SchemaVersion string          `json:"schema_version"`
	Source        Source          `json:"source"`
	Export        Export          `json:"export"`
	Unreal        Unreal          `json:"unreal"`
	Mesh          MeshInfo        `json:"mesh"`
	Materials     []MaterialEntry `json:"materials"`
	Validation    validate.Result `json:"validation"`
}

// Source identifies where the asset came from.
type Source struct {
	BlendFile      string `json:"blend_file"`
	ObjectName     string `json:"object_name"`
	NormalizedName string `json:"normalized_name"`
	AssetType      string `json:"asset_type"`
}

// Export records how and where the geometry was exported.
type Export struct {
	Target     string `json:"target"`
	Format     string `json:"format"`
	ExportPath string `json:"export_path"`
	ExportDir  string `json:"export_dir"`
	Timestamp  string `json:"timestamp"`
}

// Unreal holds target-engine destination information for the importer.
type Unreal struct {
	ProjectPath     string `json:"project_path"`
	AssetsDirectory string `json:"assets_directory"`
	MasterMaterial  string `json:"master_material"`
}

// MeshInfo summarizes the exported mesh.
type MeshInfo struct {
	Name          string    `json:"name"`
	MaterialCount int       `json:"material_count"`
	Stats         StatsPair `json:"stats"`
}

// StatsPair holds statistics before and after modifier evaluation. The two
// may legitimately differ when modifiers subdivide or decimate.
type StatsPair struct {
	Original  stats.MeshStats `json:"original"`
	Evaluated stats.MeshStats `json:"evaluated"`
}

// MaterialEntry is one classified material.
type MaterialEntry struct {
	Name           string                            `json:"name"`
	NormalizedName string                            `json:"normalized_name"`
	Parameters     map[shader.Channel]shader.Parameter `json:"parameters"`
}

// Encode renders the manifest as indented UTF-8 JSON.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
