package validate

import (
	"fmt"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
	"github.com/jackmchristensen/AssetForge/pkg/stats"
)

// Context is the immutable bundle shared read-only by all rules for the
// duration of one run. Materials and Images are deduplicated by identity in
// first-seen order.
type Context struct {
	Scene     scene.Scene
	Object    *scene.Object
	AssetType string
	Materials []*scene.Material
	Images    []*scene.Image

	Raw       stats.MeshStats
	Evaluated stats.MeshStats
	Bounds    scene.Box // evaluated local-space bounding box

	Settings *config.Settings
}

// BuildContext assembles the context for one run: deduplicated materials
// and images, raw and evaluated statistics, and the evaluated bounding box.
// A non-mesh object yields a context with zero statistics so that
// individual rules can degrade with a descriptive message instead of
// aborting the whole run.
func BuildContext(sc scene.Scene, obj *scene.Object, assetType string, cfg *config.Settings) (*Context, error) {
	ctx := &Context{
		Scene:     sc,
		Object:    obj,
		AssetType: config.CanonicalAssetType(assetType),
		Materials: obj.Materials(),
		Images:    obj.Images(),
		Settings:  cfg,
	}

	if !obj.IsMesh() {
		return ctx, nil
	}

	raw, err := stats.Compute(obj.Mesh)
	if err != nil {
		return nil, fmt.Errorf("statistics for %q: %w", obj.Name, err)
	}
	evaluated, err := stats.Evaluated(sc, obj)
	if err != nil {
		return nil, err
	}
	bounds, err := stats.EvaluatedBounds(sc, obj)
	if err != nil {
		return nil, err
	}

	ctx.Raw = raw
	ctx.Evaluated = evaluated
	ctx.Bounds = bounds
	return ctx, nil
}
