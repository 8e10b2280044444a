package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/naming"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
	"github.com/jackmchristensen/AssetForge/pkg/shader"
	"github.com/jackmchristensen/AssetForge/pkg/validate"
)

// Builder assembles manifests for scene objects. Now may be overridden for
// deterministic timestamps in tests; nil means time.Now.
type Builder struct {
	Scene    scene.Scene
	Settings *config.Settings
	Now      func() time.Time
}

// Build runs the full inspection pipeline for one object and assembles the
// manifest: canonical names, raw and evaluated statistics, per-material
// classification, and the validation result. The canonical export name is
// computed once and reused for the geometry filename and the manifest
// filename so the two stay in lock-step.
//
// A material that cannot be classified aborts the build; a manifest must
// not silently omit a material. Validation errors do NOT abort: the
// manifest is still produced with validation.passed=false, which blocks
// ingestion downstream.
func (b *Builder) Build(obj *scene.Object, assetType string) (*Manifest, error) {
	conv := b.Settings.Naming()
	canonical := conv.Normalize(naming.KindMesh, obj.Name)
	assetType = config.CanonicalAssetType(assetType)

	ctx, err := validate.BuildContext(b.Scene, obj, assetType, b.Settings)
	if err != nil {
		return nil, err
	}
	result := validate.Run(ctx, validate.Rules(assetType))

	materials := make([]MaterialEntry, 0, len(ctx.Materials))
	for _, mat := range ctx.Materials {
		params, err := shader.Classify(mat, conv)
		if err != nil {
			return nil, fmt.Errorf("classifying materials for %q: %w", obj.Name, err)
		}
		materials = append(materials, MaterialEntry{
			Name:           mat.Name,
			NormalizedName: conv.Normalize(naming.KindMaterial, mat.Name),
			Parameters:     params,
		})
	}

	exportDir, err := filepath.Abs(b.Settings.ExportDir())
	if err != nil {
		return nil, fmt.Errorf("resolving export directory: %w", err)
	}
	format := b.Settings.ExportFormat()
	exportPath := filepath.Join(exportDir, canonical+"."+format)

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	ue := b.Settings.Unreal()

	return &Manifest{
		Schema:        Schema,
		SchemaVersion: SchemaVersion,
		Source: Source{
			BlendFile:      b.Scene.BlendFile(),
			ObjectName:     obj.Name,
			NormalizedName: canonical,
			AssetType:      assetType,
		},
		Export: Export{
			Target:     "unreal",
			Format:     format,
			ExportPath: exportPath,
			ExportDir:  exportDir,
			Timestamp:  now().UTC().Format(TimestampLayout),
		},
		Unreal: Unreal{
			ProjectPath:     ue.ProjectPath,
			AssetsDirectory: ue.AssetsDirectory,
			MasterMaterial:  ue.MasterMaterial,
		},
		Mesh: MeshInfo{
			Name:          obj.Name,
			MaterialCount: len(ctx.Materials),
			Stats: StatsPair{
				Original:  ctx.Raw,
				Evaluated: ctx.Evaluated,
			},
		},
		Materials:  materials,
		Validation: result,
	}, nil
}
