// Command assetforge validates and exports mesh assets described by scene
// snapshot files, producing the manifest consumed by the engine-side
// importer.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/export"
	"github.com/jackmchristensen/AssetForge/pkg/logger"
	"github.com/jackmchristensen/AssetForge/pkg/scene"
	"github.com/jackmchristensen/AssetForge/pkg/validate"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagObject    string
	flagAssetType string
)

func main() {
	root := &cobra.Command{
		Use:           "assetforge",
		Short:         "Validate and export mesh assets for Unreal Engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file (YAML)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagObject, "object", "", "object name override (defaults to the snapshot's active object)")
	root.PersistentFlags().StringVar(&flagAssetType, "type", "PROP_SMALL", "asset type (PROP_SMALL, PROP_HERO, MODULAR)")

	root.AddCommand(validateCmd(), exportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(snapshotPath string) (*config.Settings, *scene.Memory, *zap.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	level := cfg.LogLevel()
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	log, err := logger.New(level, cfg.LogFile())
	if err != nil {
		return nil, nil, nil, err
	}
	sc, err := scene.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if flagObject != "" {
		sc.ActiveName = flagObject
	}
	return cfg, sc, log, nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene-snapshot>",
		Short: "Run validation rules against the selected object and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sc, log, err := setup(args[0])
			if err != nil {
				return err
			}
			defer log.Sync()

			obj, err := sc.ActiveObject()
			if err != nil {
				return err
			}
			ctx, err := validate.BuildContext(sc, obj, flagAssetType, cfg)
			if err != nil {
				return err
			}
			result := validate.Run(ctx, validate.Rules(flagAssetType))

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.Passed {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <scene-snapshot>",
		Short: "Validate, export geometry and manifest, and trigger ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sc, log, err := setup(args[0])
			if err != nil {
				return err
			}
			defer log.Sync()

			p := export.Pipeline{Scene: sc, Settings: cfg, Log: log}
			result, err := p.Run(flagAssetType)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "geometry:", result.GeometryPath)
			fmt.Fprintln(cmd.OutOrStdout(), "manifest:", result.ManifestPath)
			if result.Ingested {
				fmt.Fprintln(cmd.OutOrStdout(), "ingestion triggered")
			}
			if !result.Manifest.Validation.Passed {
				return fmt.Errorf("exported with validation errors; ingestion blocked")
			}
			return nil
		},
	}
}
