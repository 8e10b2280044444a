package validate

import (
	"strings"
	"testing"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
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

// scaledCube returns a manifold cube spanning [0,w]x[0,d]x[0,h].
func scaledCube(w, d, h float64) *scene.Mesh {
	m := cubeMesh()
	for i, p := range m.Positions {
		m.Positions[i] = [3]float64{p[0] * w, p[1] * d, p[2] * h}
	}
	return m
}

func texturedMaterial(name string, img *scene.Image) *scene.Material {
	node := &scene.ShaderNode{Name: "Principled BSDF", Type: scene.NodePrincipledBSDF}
	graph := &scene.NodeGraph{Nodes: []*scene.ShaderNode{node}}
	if img != nil {
		tex := &scene.ShaderNode{Name: "Image Texture", Type: scene.NodeTexImage, Image: img}
		node.Inputs = []*scene.Socket{
			{Name: "Base Color", Kind: scene.SocketColor, Link: tex},
		}
		graph.Nodes = append(graph.Nodes, tex)
	}
	return &scene.Material{Name: name, UseNodes: true, Graph: graph}
}

func buildContext(t *testing.T, obj *scene.Object, assetType string) *Context {
	t.Helper()
	s := scene.NewMemory("test.blend")
	s.Add(obj)
	ctx, err := BuildContext(s, obj, assetType, config.Default())
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	return ctx
}

func hasCode(items []Item, code string) bool {
	for _, it := range items {
		if it.Code == code {
			return true
		}
	}
	return false
}

func messagesFor(items []Item, code string) []string {
	var msgs []string
	for _, it := range items {
		if it.Code == code {
			msgs = append(msgs, it.Message)
		}
	}
	return msgs
}

// ---------------------------------------------------------------------------
// Scenario tests
// ---------------------------------------------------------------------------

// Object "Cube": no UV layer, no materials. Expect MISSING_UV error,
// MISSING_MATERIALS and BAD_NAME warnings, passed=false.
func TestRun_BareCube(t *testing.T) {
	mesh := cubeMesh()
	mesh.UVLayers = nil
	obj := &scene.Object{Name: "Cube", Mesh: mesh}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))

	if result.Passed {
		t.Error("Passed = true, want false")
	}
	if !hasCode(result.Errors, "MISSING_UV") {
		t.Error("expected MISSING_UV error")
	}
	if hasCode(result.Errors, "NON_MANIFOLD") {
		t.Error("closed cube must not report NON_MANIFOLD")
	}
	if !hasCode(result.Warnings, "MISSING_MATERIALS") {
		t.Error("expected MISSING_MATERIALS warning")
	}
	if !hasCode(result.Warnings, "BAD_NAME") {
		t.Error("expected BAD_NAME warning for unprefixed object name")
	}
}

// Object "SM_Prop" with MI_Wood and a square 1024 texture within budget:
// zero errors, zero warnings.
func TestRun_CleanProp(t *testing.T) {
	img := &scene.Image{Name: "T_Wood.png", FilePath: "/t/T_Wood.png", Colorspace: "sRGB", Width: 1024, Height: 1024}
	obj := &scene.Object{
		Name:  "SM_Prop",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{texturedMaterial("MI_Wood", img)},
	}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))

	if !result.Passed {
		t.Errorf("Passed = false; errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("expected clean result, got errors=%v warnings=%v", result.Errors, result.Warnings)
	}
}

func TestRun_PassedIndependentOfWarnings(t *testing.T) {
	// Warnings only: bad names everywhere but sound geometry.
	obj := &scene.Object{
		Name:  "Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{texturedMaterial("Wood", nil)},
	}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))
	if len(result.Warnings) == 0 {
		t.Fatal("expected warnings")
	}
	if !result.Passed {
		t.Error("warnings alone must not fail validation")
	}
	if result.Passed != (len(result.Errors) == 0) {
		t.Error("Passed must equal (no errors)")
	}
}

func TestRun_NonManifold(t *testing.T) {
	plane := &scene.Mesh{
		Positions: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Polygons:  [][]int{{0, 1, 2, 3}},
		UVLayers:  []string{"UVMap"},
	}
	obj := &scene.Object{Name: "SM_Plane", Mesh: plane}

	s := scene.NewMemory("test.blend")
	s.Add(obj)
	ctx, err := BuildContext(s, obj, "PROP_SMALL", config.Default())
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}

	result := Run(ctx, Rules("PROP_SMALL"))
	if !hasCode(result.Errors, "NON_MANIFOLD") {
		t.Error("open plane must report NON_MANIFOLD")
	}
	if s.Mode() != "OBJECT" {
		t.Errorf("mode not restored after manifold check: %q", s.Mode())
	}
}

func TestRun_TriangleBudget(t *testing.T) {
	obj := &scene.Object{Name: "SM_Prop", Mesh: cubeMesh()}
	s := scene.NewMemory("test.blend")
	s.Add(obj)

	cfg, err := config.Default().With("asset_types.PROP_SMALL.max_triangles", 10)
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := BuildContext(s, obj, "PROP_SMALL", cfg)
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}

	result := Run(ctx, Rules("PROP_SMALL"))
	if !hasCode(result.Warnings, "OVER_TRIANGLE_BUDGET") {
		t.Errorf("12 triangles over budget 10 must warn; warnings: %v", result.Warnings)
	}
	if !result.Passed {
		t.Error("budget overrun is a warning, not an error")
	}
}

func TestRun_TextureRules(t *testing.T) {
	wide := &scene.Image{Name: "T_Wide.png", Width: 2048, Height: 1024}
	obj := &scene.Object{
		Name:  "SM_Prop",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{texturedMaterial("MI_Wood", wide)},
	}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))
	if !hasCode(result.Warnings, "TEXTURE_NOT_SQUARE") {
		t.Error("2048x1024 texture must warn TEXTURE_NOT_SQUARE")
	}
	if !hasCode(result.Warnings, "OVER_TEXTURE_BUDGET") {
		t.Error("width 2048 over PROP_SMALL budget 1024 must warn OVER_TEXTURE_BUDGET")
	}
}

func TestRun_BadNameMessages(t *testing.T) {
	img := &scene.Image{Name: "wood.png", Width: 512, Height: 512}
	obj := &scene.Object{
		Name:  "Crate",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{texturedMaterial("Wood", img)},
	}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))
	msgs := messagesFor(result.Warnings, "BAD_NAME")
	if len(msgs) != 3 {
		t.Fatalf("BAD_NAME findings = %d, want 3 (object, texture, material): %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "Crate") || !strings.Contains(msgs[0], "SM_") {
		t.Errorf("object message = %q", msgs[0])
	}
}

// ---------------------------------------------------------------------------
// Grid alignment (modular assets)
// ---------------------------------------------------------------------------

func TestRun_GridAlignment_Misaligned(t *testing.T) {
	// 0.95 wide with grid unit 0.1: width misaligned, depth/height exact.
	obj := &scene.Object{Name: "SM_Wall", Mesh: scaledCube(0.95, 1.0, 2.0)}
	ctx := buildContext(t, obj, "modular")

	result := Run(ctx, Rules("modular"))
	msgs := messagesFor(result.Warnings, "GRID_ALIGNMENT")
	if len(msgs) != 1 {
		t.Fatalf("GRID_ALIGNMENT findings = %d, want 1: %v", len(msgs), msgs)
	}
	if !strings.Contains(msgs[0], "width") {
		t.Errorf("message should name the misaligned extent: %q", msgs[0])
	}
	if !result.Passed {
		t.Error("grid misalignment is a warning, not an error")
	}
}

func TestRun_GridAlignment_Exact(t *testing.T) {
	obj := &scene.Object{Name: "SM_Wall", Mesh: scaledCube(1.0, 1.0, 2.0)}
	ctx := buildContext(t, obj, "modular")

	result := Run(ctx, Rules("modular"))
	if hasCode(result.Warnings, "GRID_ALIGNMENT") {
		t.Errorf("exact 1.0 unit piece must pass silently: %v",
			messagesFor(result.Warnings, "GRID_ALIGNMENT"))
	}
}

func TestRun_GridAlignment_OffsetOrigin(t *testing.T) {
	m := scaledCube(1.0, 1.0, 1.0)
	for i, p := range m.Positions {
		m.Positions[i] = [3]float64{p[0] + 0.5, p[1], p[2]}
	}
	obj := &scene.Object{Name: "SM_Wall", Mesh: m}
	ctx := buildContext(t, obj, "MODULAR")

	result := Run(ctx, Rules("MODULAR"))
	msgs := messagesFor(result.Warnings, "GRID_ALIGNMENT")
	if len(msgs) != 1 || !strings.Contains(msgs[0], "corner") {
		t.Errorf("offset pivot must warn about the minimum corner: %v", msgs)
	}
}

func TestRules_GridRuleOnlyForModular(t *testing.T) {
	for _, r := range Rules("PROP_SMALL") {
		if r.Code == "GRID_ALIGNMENT" {
			t.Fatal("non-modular asset types must not carry the grid rule")
		}
	}
	found := false
	for _, r := range Rules("modular") {
		if r.Code == "GRID_ALIGNMENT" {
			found = true
		}
	}
	if !found {
		t.Fatal("modular asset type must carry the grid rule")
	}
}

// ---------------------------------------------------------------------------
// Degradation and ordering
// ---------------------------------------------------------------------------

func TestRun_NonMeshObjectDegrades(t *testing.T) {
	obj := &scene.Object{Name: "Camera"}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))
	if result.Passed {
		t.Error("non-mesh object must fail mesh error rules")
	}
	for _, code := range []string{"MISSING_UV", "NON_MANIFOLD"} {
		msgs := messagesFor(result.Errors, code)
		if len(msgs) != 1 {
			t.Errorf("%s: findings = %d, want single descriptive message", code, len(msgs))
		}
	}
}

func TestRun_OutputPreservesRegistrationOrder(t *testing.T) {
	mesh := cubeMesh()
	mesh.UVLayers = nil
	obj := &scene.Object{Name: "Cube", Mesh: mesh}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, Rules("PROP_SMALL"))
	if len(result.Warnings) < 2 {
		t.Fatalf("expected at least 2 warnings, got %v", result.Warnings)
	}
	if result.Warnings[0].Code != "MISSING_MATERIALS" || result.Warnings[1].Code != "BAD_NAME" {
		t.Errorf("warning order = %v, want MISSING_MATERIALS then BAD_NAME", result.Warnings)
	}
}

func TestRun_EmptyRuleSet(t *testing.T) {
	obj := &scene.Object{Name: "SM_Prop", Mesh: cubeMesh()}
	ctx := buildContext(t, obj, "PROP_SMALL")

	result := Run(ctx, nil)
	if !result.Passed {
		t.Error("no rules means passed")
	}
	if result.Errors == nil || result.Warnings == nil {
		t.Error("Errors and Warnings must be empty slices, not nil, for JSON output")
	}
}

func TestBuildContext_DeduplicatesMaterials(t *testing.T) {
	wood := texturedMaterial("MI_Wood", nil)
	obj := &scene.Object{
		Name:  "SM_Prop",
		Mesh:  cubeMesh(),
		Slots: []*scene.Material{wood, wood},
	}
	ctx := buildContext(t, obj, "PROP_SMALL")
	if len(ctx.Materials) != 1 {
		t.Errorf("materials = %d, want 1 after dedup", len(ctx.Materials))
	}
}
