package manifest

import (
	"strings"
	"testing"
	"time"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
	"github.com/jackmchristensen/AssetForge/pkg/shader"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func cubeMesh() *scene.Mesh {
	return &scene.Mesh{
		Positions: [][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		Polygons: [][]int{
			{0, 1, 2, 3}, {4, 5, 6, 7},
			{0, 1, 5, 4}, {1, 2, 6, 5},
			{2, 3, 7, 6}, {3, 0, 4, 7},
		},
		UVLayers: []string{"UVMap"},
	}
}

func woodMaterial() *scene.Material {
	img := &scene.Image{
		Name:       "T_Wood.png",
		FilePath:   "/textures/T_Wood.png",
		Colorspace: "sRGB",
		Width:      1024,
		Height:     1024,
	}
	tex := &scene.ShaderNode{Name: "Image Texture", Type: scene.NodeTexImage, Image: img}
	bsdf := &scene.ShaderNode{
		Name: "Principled BSDF",
		Type: scene.NodePrincipledBSDF,
		Inputs: []*scene.Socket{
			{Name: "Base Color", Kind: scene.SocketColor, Link: tex},
			{Name: "Roughness", Kind: scene.SocketScalar, Default: []float64{0.4}},
		},
	}
	return &scene.Material{
		Name:     "MI_Wood",
		UseNodes: true,
		Graph:    &scene.NodeGraph{Nodes: []*scene.ShaderNode{bsdf, tex}},
	}
}

func testBuilder(t *testing.T, obj *scene.Object) (*Builder, *scene.Memory) {
	t.Helper()
	s := scene.NewMemory("props.blend")
	s.Add(obj)
	cfg, err := config.Default().With("export.directory", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return &Builder{
		Scene:    s,
		Settings: cfg,
		Now:      func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) },
	}, s
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestBuild_Document(t *testing.T) {
	obj := &scene.Object{
		Name:  "Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{woodMaterial()},
	}
	b, _ := testBuilder(t, obj)

	man, err := b.Build(obj, "prop_small")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if man.Schema != "asset_forge.export" || man.SchemaVersion != "0.2.0" {
		t.Errorf("schema = %q %q", man.Schema, man.SchemaVersion)
	}
	if man.Source.BlendFile != "props.blend" {
		t.Errorf("blend_file = %q", man.Source.BlendFile)
	}
	if man.Source.ObjectName != "Crate" || man.Source.NormalizedName != "SM_Crate" {
		t.Errorf("source names = %q / %q", man.Source.ObjectName, man.Source.NormalizedName)
	}
	if man.Source.AssetType != "PROP_SMALL" {
		t.Errorf("asset_type = %q, want canonical upper case", man.Source.AssetType)
	}
	if man.Export.Timestamp != "2025-03-14T09:30:00Z" {
		t.Errorf("timestamp = %q", man.Export.Timestamp)
	}
	if !strings.HasSuffix(man.Export.ExportPath, "SM_Crate.obj") {
		t.Errorf("export_path = %q, want canonical filename", man.Export.ExportPath)
	}
	if man.Export.Target != "unreal" || man.Export.Format != "obj" {
		t.Errorf("export target/format = %q/%q", man.Export.Target, man.Export.Format)
	}
	if man.Mesh.MaterialCount != 1 {
		t.Errorf("material_count = %d", man.Mesh.MaterialCount)
	}
	if man.Mesh.Stats.Original.Triangles != 12 || man.Mesh.Stats.Evaluated.Triangles != 12 {
		t.Errorf("stats = %+v", man.Mesh.Stats)
	}
}

func TestBuild_MaterialClassification(t *testing.T) {
	obj := &scene.Object{
		Name:  "SM_Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{woodMaterial()},
	}
	b, _ := testBuilder(t, obj)

	man, err := b.Build(obj, "PROP_SMALL")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(man.Materials) != 1 {
		t.Fatalf("materials = %d, want 1", len(man.Materials))
	}
	entry := man.Materials[0]
	if entry.Name != "MI_Wood" || entry.NormalizedName != "MI_Wood" {
		t.Errorf("material names = %q / %q", entry.Name, entry.NormalizedName)
	}
	base := entry.Parameters[shader.ChannelBaseColor]
	if base.Type != shader.ParamTexture {
		t.Errorf("base_color type = %s, want texture", base.Type)
	}
	if base.Path != "/textures/T_Wood.png" {
		t.Errorf("base_color path = %q", base.Path)
	}
	rough := entry.Parameters[shader.ChannelRoughness]
	if rough.Type != shader.ParamConstant || rough.Value != 0.4 {
		t.Errorf("roughness = %+v", rough)
	}
}

func TestBuild_DeduplicatesMaterialSlots(t *testing.T) {
	wood := woodMaterial()
	obj := &scene.Object{
		Name:  "SM_Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{wood, wood, nil},
	}
	b, _ := testBuilder(t, obj)

	man, err := b.Build(obj, "PROP_SMALL")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(man.Materials) != 1 || man.Mesh.MaterialCount != 1 {
		t.Errorf("materials = %d, count = %d, want 1/1", len(man.Materials), man.Mesh.MaterialCount)
	}
}

func TestBuild_FailedValidationStillProducesManifest(t *testing.T) {
	mesh := cubeMesh()
	mesh.UVLayers = nil
	obj := &scene.Object{
		Name:  "SM_Crate",
		Mesh:  mesh,
		Slots: []*scene.Material{woodMaterial()},
	}
	b, _ := testBuilder(t, obj)

	man, err := b.Build(obj, "PROP_SMALL")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if man.Validation.Passed {
		t.Error("missing UV layer must fail validation")
	}
	if len(man.Validation.Errors) == 0 {
		t.Error("expected validation errors in the manifest")
	}
}

func TestBuild_UnclassifiableMaterialAborts(t *testing.T) {
	legacy := &scene.Material{Name: "MI_Legacy", UseNodes: false}
	obj := &scene.Object{
		Name:  "SM_Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{legacy},
	}
	b, _ := testBuilder(t, obj)

	if _, err := b.Build(obj, "PROP_SMALL"); err == nil {
		t.Fatal("expected error for material without a usable node graph")
	}
}

func TestBuild_ReleasesEvaluatedMeshes(t *testing.T) {
	obj := &scene.Object{Name: "SM_Crate", Mesh: cubeMesh(), Slots: []*scene.Material{woodMaterial()}}
	b, s := testBuilder(t, obj)

	if _, err := b.Build(obj, "PROP_SMALL"); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.OpenEvaluations() != 0 {
		t.Errorf("evaluated meshes leaked: %d open", s.OpenEvaluations())
	}
	if s.Mode() != "OBJECT" {
		t.Errorf("mode after build = %q, want OBJECT", s.Mode())
	}
}

func TestEncode_JSONKeys(t *testing.T) {
	obj := &scene.Object{
		Name:  "SM_Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{woodMaterial()},
	}
	b, _ := testBuilder(t, obj)

	man, err := b.Build(obj, "PROP_SMALL")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := man.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc := string(data)
	for _, key := range []string{
		`"schema": "asset_forge.export"`,
		`"schema_version": "0.2.0"`,
		`"blend_file"`,
		`"normalized_name"`,
		`"base_color"`,
		`"passed": true`,
		`"errors": []`,
		`"warnings": []`,
	} {
		if !strings.Contains(doc, key) {
			t.Errorf("encoded manifest missing %s", key)
		}
	}
}
