package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"unibuild/internal/app"
	apperrors "unibuild/internal/errors"
	"unibuild/internal/runtime"
)

// version is set at build time via ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "unibuild",
	Short:   "unibuild - containerized Unity build runner",
	Version: version,
	Long: `unibuild runs a Unity build job inside a single ephemeral Docker container,
mounting the project workspace and build scripts at the paths the build image
expects, and guarantees that leftover containers from interrupted runs are
cleaned up before and after each job.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a build job in an ephemeral container",
	Long: `Run parses a job YAML file, reaps any leftover container tracked by the
run's identity file, starts the build container and blocks until it exits.

The process exit code is the container's exit code: a non-zero code means the
build inside the container failed, not that unibuild itself failed.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			fmt.Fprintln(os.Stderr, "Error: --file flag is required")
			os.Exit(1)
		}

		silent, _ := cmd.Flags().GetBool("silent")
		command, _ := cmd.Flags().GetString("command")
		entrypointShell, _ := cmd.Flags().GetBool("entrypoint-shell")
		runID, _ := cmd.Flags().GetString("run-id")
		tempDir, _ := cmd.Flags().GetString("temp-dir")
		skipCheck, _ := cmd.Flags().GetBool("skip-daemon-check")

		code, err := app.Execute(file, app.ExecuteOptions{
			Silent:          silent,
			Command:         command,
			EntrypointShell: entrypointShell,
			RunID:           runID,
			TempDirectory:   tempDir,
			SkipDaemonCheck: skipCheck,
		})
		if err != nil {
			apperrors.HandleError(err)
			os.Exit(1)
		}

		os.Exit(code)
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Reap a leftover build container",
	Long: `Cleanup reads the identity file for the given run, executes the in-container
cleanup script, force-removes the container and its volumes, and deletes the
identity file. A missing identity file means nothing to clean and is not an error.`,
	Run: func(cmd *cobra.Command, args []string) {
		runID, _ := cmd.Flags().GetString("run-id")
		tempDir, _ := cmd.Flags().GetString("temp-dir")
		if tempDir == "" {
			tempDir = os.TempDir()
		}

		if err := app.Cleanup(tempDir, runID); err != nil {
			apperrors.HandleError(err)
			os.Exit(1)
		}
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that unibuild prerequisites are available",
	Run: func(cmd *cobra.Command, args []string) {
		daemon, err := runtime.NewDockerDaemon()
		if err != nil {
			apperrors.HandleError(apperrors.NewRuntimeError(
				"Docker daemon is not reachable",
				err.Error(),
				"Start the Docker daemon or point DOCKER_HOST at a reachable socket",
				err))
			for path, exists := range runtime.DiagnoseSockets() {
				fmt.Fprintf(os.Stderr, "  socket %s: exists=%v\n", path, exists)
			}
			os.Exit(1)
		}

		version, err := daemon.Version(cmd.Context())
		if err != nil {
			apperrors.HandleError(apperrors.NewRuntimeError(
				"Docker daemon answered the ping but not the version query",
				err.Error(),
				"Check that the daemon API version is compatible with this client",
				err))
			os.Exit(1)
		}
		fmt.Printf("Docker daemon is reachable (server version %s).\n", version)
	},
}

func init() {
	runCmd.Flags().StringP("file", "f", "", "Path to the job YAML file (required)")
	runCmd.Flags().Bool("silent", false, "Suppress container output")
	runCmd.Flags().String("command", "", "Override the in-container command (default: the image entrypoint script)")
	runCmd.Flags().Bool("entrypoint-shell", false, "Override the image entrypoint with a shell and pass the command via -c")
	runCmd.Flags().String("run-id", "", "Run identifier used to namespace the container identity file")
	runCmd.Flags().String("temp-dir", "", "Runner temp directory holding identity files and substitute mounts")
	runCmd.Flags().Bool("skip-daemon-check", false, "Skip the Docker daemon reachability check")
	if err := runCmd.MarkFlagRequired("file"); err != nil {
		slog.Error("Failed to mark file flag as required for run command", "error", err)
	}
	rootCmd.AddCommand(runCmd)

	cleanupCmd.Flags().String("run-id", "", "Run identifier of the container to reap (required)")
	cleanupCmd.Flags().String("temp-dir", "", "Runner temp directory holding the identity file")
	if err := cleanupCmd.MarkFlagRequired("run-id"); err != nil {
		slog.Error("Failed to mark run-id flag as required for cleanup command", "error", err)
	}
	rootCmd.AddCommand(cleanupCmd)

	rootCmd.AddCommand(doctorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
