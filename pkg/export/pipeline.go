package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/manifest"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
)

// Pipeline runs the validate-classify-export flow for the active selection.
// It is single-threaded and synchronous: each stage completes before the
// next starts.
type Pipeline struct {
	Scene    scene.Scene
	Settings *config.Settings
	Writer   GeometryWriter // nil = ObjWriter
	Launcher Launcher       // nil = ExecLauncher
	Log      *zap.Logger    // nil = no-op logger
}

// RunResult reports what one pipeline run produced.
type RunResult struct {
	Manifest     *manifest.Manifest
	GeometryPath string
	ManifestPath string
	Ingested     bool
}

// Run exports the active object: builds the manifest, writes the geometry
// and manifest files into the export directory, renames any raw-named files
// to the canonical name, and triggers ingestion when the strictness policy
// allows it. The export directory is scratch space: partially written files
// from a failed run are overwritten on retry, not cleaned up.
func (p *Pipeline) Run(assetType string) (*RunResult, error) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	writer := p.Writer
	if writer == nil {
		writer = ObjWriter{}
	}

	obj, err := p.Scene.ActiveObject()
	if err != nil {
		return nil, err
	}
	log.Info("starting export", zap.String("object", obj.Name), zap.String("asset_type", assetType))

	b := manifest.Builder{Scene: p.Scene, Settings: p.Settings}
	man, err := b.Build(obj, assetType)
	if err != nil {
		return nil, err
	}
	log.Info("validation finished",
		zap.Bool("passed", man.Validation.Passed),
		zap.Int("errors", len(man.Validation.Errors)),
		zap.Int("warnings", len(man.Validation.Warnings)))

	dir := man.Export.ExportDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	// Hosts name exported files after the raw object; write under the raw
	// name first, then finalize to the canonical name.
	ext := "." + man.Export.Format
	rawBase := sanitizeFilename(obj.Name)
	geomPath := filepath.Join(dir, rawBase+ext)
	manifestPath := filepath.Join(dir, rawBase+".json")

	if err := writer.Write(p.Scene, obj, geomPath); err != nil {
		return nil, err
	}
	data, err := man.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	canonical := man.Source.NormalizedName
	if rawBase != canonical {
		if geomPath, err = renameTo(geomPath, filepath.Join(dir, canonical+ext)); err != nil {
			return nil, err
		}
		if manifestPath, err = renameTo(manifestPath, filepath.Join(dir, canonical+".json")); err != nil {
			return nil, err
		}
		log.Info("renamed export files to canonical name", zap.String("name", canonical))
	}

	result := &RunResult{
		Manifest:     man,
		GeometryPath: geomPath,
		ManifestPath: manifestPath,
	}

	policy := p.Settings.Strictness()
	if !ShouldIngest(man.Validation, policy) {
		log.Info("ingestion skipped", zap.String("policy", string(policy)))
		return result, nil
	}
	launcher := p.Launcher
	if launcher == nil {
		launcher = ExecLauncher{}
	}
	if err := launcher.Launch(p.Settings.Unreal(), manifestPath); err != nil {
		// The export itself succeeded; surface the launch failure without
		// discarding the written files.
		log.Warn("ingestion launch failed", zap.Error(err))
		return result, nil
	}
	result.Ingested = true
	log.Info("ingestion triggered", zap.String("manifest", manifestPath))
	return result, nil
}

func renameTo(from, to string) (string, error) {
	if err := os.Rename(from, to); err != nil {
		return "", fmt.Errorf("renaming %s: %w", from, err)
	}
	return to, nil
}

// sanitizeFilename keeps raw-name exports writable on common filesystems.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, name)
}
