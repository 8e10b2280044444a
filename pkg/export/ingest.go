package export

import (
	"fmt"
	"os/exec"

	"github.com/jackmchristensen/AssetForge/pkg/config"
	"github.com/jackmchristensen/AssetForge/pkg/validate"
)

// ShouldIngest applies the strictness policy to a validation result.
// Errors always block; warnings block only under errors_and_warnings;
// do_not_import never ingests.
func ShouldIngest(result validate.Result, policy config.Strictness) bool {
	switch policy {
	case config.DoNotImport:
		return false
	case config.ErrorsAndWarnings:
		return result.Passed && len(result.Warnings) == 0
	default: // errors_only
		return result.Passed
	}
}

// Launcher starts the external ingestion process. The pipeline never
// blocks on, observes, or retries its outcome.
type Launcher interface {
	Launch(ue config.Unreal, manifestPath string) error
}

// ExecLauncher starts the configured Unreal editor binary with the
// manifest path as its sole required argument.
type ExecLauncher struct{}

var _ Launcher = ExecLauncher{}

// Launch starts the ingestion process detached. Only start-up failures are
// reported; the process outcome is not.
func (ExecLauncher) Launch(ue config.Unreal, manifestPath string) error {
	if ue.EditorBinary == "" {
		return fmt.Errorf("unreal.editor_binary is not configured")
	}
	var args []string
	if ue.ProjectPath != "" {
		args = append(args, ue.ProjectPath)
	}
	if ue.IngestScript != "" {
		args = append(args, "-ExecutePythonScript="+ue.IngestScript)
	}
	args = append(args, "-manifest="+manifestPath)

	cmd := exec.Command(ue.EditorBinary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ingestion process: %w", err)
	}
	// Reap the child when it eventually exits; its result is ignored.
	go func() { _ = cmd.Wait() }()
	return nil
}
