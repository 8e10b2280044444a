package validate

import (
	"fmt"
	"math"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/naming"
)

// Rules returns the built-in rule set for an asset type, in reporting
// order. Modular assets additionally get the grid-alignment rule.
func Rules(assetType string) []Rule {
	rules := []Rule{
		{Code: "MISSING_UV", Severity: SeverityError, Check: checkUV},
		{Code: "NON_MANIFOLD", Severity: SeverityError, Check: checkManifold},
		{Code: "MISSING_MATERIALS", Severity: SeverityWarning, Check: checkMaterials},
		{Code: "BAD_NAME", Severity: SeverityWarning, Check: checkNames},
		{Code: "OVER_TRIANGLE_BUDGET", Severity: SeverityWarning, Check: checkTriangleBudget},
		{Code: "TEXTURE_NOT_SQUARE", Severity: SeverityWarning, Check: checkTextureSquare},
		{Code: "OVER_TEXTURE_BUDGET", Severity: SeverityWarning, Check: checkTextureBudget},
	}
	if config.CanonicalAssetType(assetType) == "MODULAR" {
		rules = append(rules, Rule{Code: "GRID_ALIGNMENT", Severity: SeverityWarning, Check: checkGridAlignment})
	}
	return rules
}

func notAMesh(ctx *Context) []string {
	return []string{fmt.Sprintf("Object %s is not a mesh; check skipped.", ctx.Object.Name)}
}

func checkUV(ctx *Context) []string {
	if !ctx.Object.IsMesh() {
		return notAMesh(ctx)
	}
	if !ctx.Object.Mesh.HasUVs() {
		return []string{"No UV map found."}
	}
	return nil
}

func checkManifold(ctx *Context) []string {
	if !ctx.Object.IsMesh() {
		return notAMesh(ctx)
	}
	sess, err := ctx.Scene.EditMode(ctx.Object)
	if err != nil {
		return []string{fmt.Sprintf("Cannot inspect manifold geometry: %v.", err)}
	}
	defer sess.Close()

	verts, edges := sess.SelectNonManifold()
	if verts > 0 || edges > 0 {
		return []string{fmt.Sprintf("Mesh has non-manifold geometry (%d vertices, %d edges).", verts, edges)}
	}
	return nil
}

func checkMaterials(ctx *Context) []string {
	if !ctx.Object.IsMesh() {
		return notAMesh(ctx)
	}
	if len(ctx.Materials) == 0 {
		return []string{"Mesh has no materials assigned to it."}
	}
	return nil
}

func checkNames(ctx *Context) []string {
	conv := ctx.Settings.Naming()
	var messages []string

	if !naming.ValidatePrefix(conv.MeshPrefix, ctx.Object.Name) {
		messages = append(messages, fmt.Sprintf(
			"Static mesh %s does not start with the required prefix '%s'", ctx.Object.Name, conv.MeshPrefix))
	}
	for _, img := range ctx.Images {
		if !naming.ValidatePrefix(conv.TexturePrefix, img.Name) {
			messages = append(messages, fmt.Sprintf(
				"Texture %s does not start with the required prefix '%s'", img.Name, conv.TexturePrefix))
		}
	}
	for _, mat := range ctx.Materials {
		if !naming.ValidatePrefix(conv.MaterialPrefix, mat.Name) {
			messages = append(messages, fmt.Sprintf(
				"Material %s does not start with the required prefix '%s'", mat.Name, conv.MaterialPrefix))
		}
	}
	return messages
}

func checkTriangleBudget(ctx *Context) []string {
	if !ctx.Object.IsMesh() {
		return notAMesh(ctx)
	}
	budget := ctx.Settings.TriangleBudget(ctx.AssetType)
	if ctx.Evaluated.Triangles > budget {
		return []string{fmt.Sprintf(
			"Evaluated triangle count %d exceeds the %s budget of %d.",
			ctx.Evaluated.Triangles, ctx.AssetType, budget)}
	}
	return nil
}

func checkTextureSquare(ctx *Context) []string {
	var messages []string
	for _, img := range ctx.Images {
		if !img.Square() {
			messages = append(messages, fmt.Sprintf(
				"Texture %s is not square (%dx%d).", img.Name, img.Width, img.Height))
		}
	}
	return messages
}

func checkTextureBudget(ctx *Context) []string {
	budget := ctx.Settings.TextureBudget(ctx.AssetType)
	var messages []string
	for _, img := range ctx.Images {
		if img.Width > budget {
			messages = append(messages, fmt.Sprintf(
				"Texture %s width %d exceeds the %s maximum of %d.",
				img.Name, img.Width, ctx.AssetType, budget))
		}
	}
	return messages
}

// checkGridAlignment enforces that modular kit pieces snap to the grid:
// every bounding-box extent is an integer multiple of the grid unit, and
// the minimum corner sits on the object's local origin.
func checkGridAlignment(ctx *Context) []string {
	if !ctx.Object.IsMesh() {
		return notAMesh(ctx)
	}
	unit := ctx.Settings.GridUnit(ctx.AssetType)
	if unit <= 0 {
		return nil
	}
	eps := ctx.Settings.GridEpsilon(ctx.AssetType)

	var messages []string
	extents := []struct {
		name  string
		value float64
	}{
		{"width", ctx.Bounds.Width()},
		{"depth", ctx.Bounds.Depth()},
		{"height", ctx.Bounds.Height()},
	}
	for _, e := range extents {
		if !onGrid(e.value, unit, eps) {
			messages = append(messages, fmt.Sprintf(
				"Bounding box %s %.6g is not a multiple of the grid unit %g.", e.name, e.value, unit))
		}
	}

	corner := ctx.Bounds.Min
	if math.Abs(corner.X) > eps || math.Abs(corner.Y) > eps || math.Abs(corner.Z) > eps {
		messages = append(messages, fmt.Sprintf(
			"Bounding box minimum corner (%.6g, %.6g, %.6g) does not coincide with the object origin.",
			corner.X, corner.Y, corner.Z))
	}
	return messages
}

// onGrid reports whether v is an integer multiple of unit within eps.
func onGrid(v, unit, eps float64) bool {
	r := math.Mod(math.Abs(v), unit)
	return r <= eps || unit-r <= eps
}
