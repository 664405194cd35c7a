package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"unibuild/internal/docker"
	apperrors "unibuild/internal/errors"
	"unibuild/internal/parser"
	"unibuild/internal/runtime"
	"unibuild/internal/ui"
	"unibuild/pkg/job"
)

// ExecuteOptions controls a single job execution.
type ExecuteOptions struct {
	// Silent suppresses container output.
	Silent bool
	// Command overrides the container's default entrypoint script invocation.
	Command string
	// EntrypointShell requests a shell entrypoint override for Command.
	EntrypointShell bool
	// RunID overrides the run identifier from the job file.
	RunID string
	// TempDirectory overrides the runner temp directory from the job file.
	TempDirectory string
	// SkipDaemonCheck skips the Docker daemon reachability precheck.
	SkipDaemonCheck bool
}

// Execute runs the complete job lifecycle against the real host. The returned
// int is the container's exit code, passed through unmodified; a non-zero code
// is a build outcome, not an error.
func Execute(jobPath string, opts ExecuteOptions) (int, error) {
	return executeJob(jobPath, opts, NewLifecycleFactory().GetLifecycle())
}

// executeJob runs the job lifecycle: parse the job file, reap any leftover
// container from a prior interrupted run, start the build container, and reap
// this run's container. The lifecycle collaborator is injected so the
// orchestration is testable without a container runtime.
func executeJob(jobPath string, opts ExecuteOptions, lifecycle ContainerLifecycle) (int, error) {
	console := ui.NewConsole()

	slog.Info("Starting unibuild run", "jobPath", jobPath)

	j, err := parser.Parse(jobPath)
	if err != nil {
		return -1, apperrors.NewParseError(
			fmt.Sprintf("Failed to parse job file %s", jobPath),
			err.Error(),
			"Check that the file exists and matches the BuildJob schema",
			fmt.Errorf("job parsing failed: %w", err))
	}
	slog.Info("Job parsed", "name", j.Metadata.Name, "image", j.Spec.Image)

	params := j.Spec.Parameters
	if opts.TempDirectory != "" {
		params.Runner.TempDirectory = opts.TempDirectory
	}
	params.Runner.RunID = resolveRunID(opts.RunID, params.Runner.RunID)

	if !opts.SkipDaemonCheck {
		if err := ValidatePrerequisites(); err != nil {
			return -1, apperrors.NewRuntimeError(
				"Docker daemon is not reachable",
				err.Error(),
				"Start the Docker daemon or point DOCKER_HOST at a reachable socket",
				err)
		}
	}

	ctx := context.Background()

	console.PrintStage(fmt.Sprintf("Preparing run %s", params.Runner.RunID))
	if err := lifecycle.EnsureContainerRemoval(ctx, params.Runner); err != nil {
		return -1, apperrors.NewCleanupError(
			fmt.Sprintf("Failed to reap leftover container for run %s", params.Runner.RunID),
			err.Error(),
			"Remove the container with 'docker rm -f' and delete its identity file, then retry",
			fmt.Errorf("pre-flight container cleanup failed: %w", err))
	}

	console.PrintStage(fmt.Sprintf("Building %s in %s", j.Metadata.Name, j.Spec.Image))
	code, err := lifecycle.Run(ctx, j.Spec.Image, params, docker.RunOptions{
		Silent:          opts.Silent,
		Command:         opts.Command,
		EntrypointShell: opts.EntrypointShell,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedPlatform) {
			return -1, apperrors.NewPlatformError(
				"This host platform cannot run build containers",
				err.Error(),
				"Run unibuild on a Linux or Windows host",
				err)
		}
		return -1, apperrors.NewRuntimeError(
			fmt.Sprintf("Failed to start the build container for '%s'", j.Metadata.Name),
			err.Error(),
			"Verify the docker CLI is on PATH and the image can be pulled",
			err)
	}

	console.PrintStage("Reaping build container")
	if err := lifecycle.EnsureContainerRemoval(ctx, params.Runner); err != nil {
		console.PrintWarning(fmt.Sprintf("Container cleanup failed: %s", err))
		slog.Warn("Post-run container cleanup failed", "runId", params.Runner.RunID, "error", err)
	}

	if code == 0 {
		console.PrintSuccess(fmt.Sprintf("Build '%s' succeeded", j.Metadata.Name))
	} else {
		console.PrintWarning(fmt.Sprintf("Build '%s' exited with code %d", j.Metadata.Name, code))
	}

	slog.Info("Run finished", "name", j.Metadata.Name, "exitCode", code)
	return code, nil
}

// Cleanup reaps a leftover container for the given runner context without starting a
// new run. A missing identity file is a successful no-op.
func Cleanup(tempDirectory, runID string) error {
	return cleanupContainer(tempDirectory, runID, NewLifecycleFactory().GetLifecycle())
}

func cleanupContainer(tempDirectory, runID string, lifecycle ContainerLifecycle) error {
	err := lifecycle.EnsureContainerRemoval(context.Background(), job.RunnerContext{
		TempDirectory: tempDirectory,
		RunID:         runID,
	})
	if err != nil {
		return apperrors.NewCleanupError(
			fmt.Sprintf("Failed to reap container for run %s", runID),
			err.Error(),
			"Remove the container with 'docker rm -f' and delete its identity file",
			err)
	}
	return nil
}

// resolveRunID picks the run identifier: explicit flag, then job file, then a fresh
// UUID. The process-id fallback inside the lifecycle manager never fires on this path.
func resolveRunID(flagID, jobID string) string {
	if flagID != "" {
		return flagID
	}
	if jobID != "" {
		return jobID
	}
	return uuid.New().String()
}

// ValidatePrerequisites checks that all required external dependencies are available.
func ValidatePrerequisites() error {
	slog.Info("Validating unibuild prerequisites")

	// The Docker daemon must be reachable before a container run is attempted.
	if _, err := runtime.NewDockerDaemon(); err != nil {
		return fmt.Errorf("Docker prerequisite check failed: %w", err)
	}

	slog.Info("All prerequisites validated successfully")
	return nil
}
