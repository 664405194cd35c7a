package docker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	apperrors "unibuild/internal/errors"
	"unibuild/internal/host"
	"unibuild/pkg/job"
	"unibuild/pkg/shell"
)

const runtimeBinary = "docker"

// EnvSource builds the environment-injection tokens for a container invocation. The
// returned tokens are already escaped and are inserted into the argument list verbatim.
type EnvSource interface {
	Args(p job.RunParameters, additional map[string]string) []string
}

// RunOptions controls a single container run.
type RunOptions struct {
	// Silent suppresses the container's output streams.
	Silent bool
	// Command replaces the default entrypoint script invocation when non-empty.
	Command string
	// AdditionalVariables are merged into the injected environment for this run only.
	AdditionalVariables map[string]string
	// EntrypointShell overrides the image entrypoint with the chosen shell and passes
	// Command via -c.
	EntrypointShell bool
}

// Docker coordinates the lifecycle of the single build container for a run: building
// the platform-appropriate invocation, executing it, and reaping leftovers tracked
// through the identity file.
type Docker struct {
	runner shell.Runner
	env    EnvSource
	host   host.Context
}

// New creates a Docker lifecycle manager.
func New(runner shell.Runner, env EnvSource, hostCtx host.Context) *Docker {
	return &Docker{
		runner: runner,
		env:    env,
		host:   hostCtx,
	}
}

// Run starts the build container for the host platform and blocks until it exits,
// returning the container's exit code verbatim. A non-zero code is a build outcome,
// not an error; errors are reserved for unsupported platforms and launch failures.
func (d *Docker) Run(ctx context.Context, image string, p job.RunParameters, opts RunOptions) (int, error) {
	if p.Runner.RunID == "" {
		p.Runner.RunID = d.host.FallbackRunID()
	}

	inv, err := d.buildInvocation(image, p, opts)
	if err != nil {
		return -1, err
	}

	slog.Info("Starting build container", "image", image, "runId", p.Runner.RunID, "platform", d.host.Platform())
	slog.Debug("Container invocation", "command", inv.String())

	code, err := d.runner.Run(ctx, inv.Name, inv.Args, shell.Options{
		Silent:           opts.Silent,
		IgnoreReturnCode: true,
	})
	if err != nil {
		return -1, fmt.Errorf("%w: %v", apperrors.ErrProcessLaunch, err)
	}

	slog.Info("Build container exited", "runId", p.Runner.RunID, "exitCode", code)
	return code, nil
}

// buildInvocation dispatches to the platform command builder. Unsupported host
// platforms are rejected before any command is built.
func (d *Docker) buildInvocation(image string, p job.RunParameters, opts RunOptions) (Invocation, error) {
	switch d.host.Platform() {
	case "linux":
		homeDir, err := d.host.HomeDir()
		if err != nil {
			return Invocation{}, fmt.Errorf("failed to resolve host home directory: %w", err)
		}
		envArgs := d.env.Args(p, opts.AdditionalVariables)
		args, err := linuxRunArgs(image, p, opts.Command, envArgs, opts.EntrypointShell, homeDir)
		if err != nil {
			return Invocation{}, err
		}
		return Invocation{Name: runtimeBinary, Args: args}, nil
	case "windows":
		envArgs := d.env.Args(p, opts.AdditionalVariables)
		return Invocation{Name: runtimeBinary, Args: windowsRunArgs(image, p, envArgs)}, nil
	default:
		return Invocation{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedPlatform, d.host.Platform())
	}
}

// EnsureContainerRemoval reaps the container tracked by the run's identity file, if
// any. A missing identity file means nothing to clean and is not an error. Once an id
// file is found, the in-container cleanup script and the force-remove are both
// attempted unconditionally; only failure to delete the identity file itself is fatal,
// since a stale file would misidentify a removed container as still present.
func (d *Docker) EnsureContainerRemoval(ctx context.Context, rc job.RunnerContext) error {
	if rc.RunID == "" {
		rc.RunID = d.host.FallbackRunID()
	}
	idFile := IdentityFilePath(rc.TempDirectory, rc.RunID)

	data, err := os.ReadFile(idFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to read identity file %s: %v", apperrors.ErrFileSystemFailed, idFile, err)
	}

	containerID := strings.TrimSpace(string(data))
	if containerID != "" {
		slog.Info("Reaping leftover container", "containerId", containerID, "identityFile", idFile)

		// Graceful teardown inside the container. A dead or unresponsive container
		// makes this fail; removal proceeds regardless.
		if _, err := d.runner.Run(ctx, runtimeBinary,
			[]string{"exec", containerID, "/bin/sh", "-c", containerCleanupScript},
			shell.Options{IgnoreReturnCode: true}); err != nil {
			slog.Warn("In-container cleanup could not run", "containerId", containerID, "error", err)
		}

		if _, err := d.runner.Run(ctx, runtimeBinary,
			[]string{"rm", "-f", "-v", containerID},
			shell.Options{Silent: true, IgnoreReturnCode: true}); err != nil {
			return fmt.Errorf("%w: force-remove of container %s failed: %v", apperrors.ErrCleanupFailed, containerID, err)
		}
	}

	if err := os.Remove(idFile); err != nil {
		return fmt.Errorf("%w: failed to delete identity file %s: %v", apperrors.ErrFileSystemFailed, idFile, err)
	}

	slog.Info("Container reaped", "containerId", containerID)
	return nil
}
