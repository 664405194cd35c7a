package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/docker/docker/client"
)

// DockerDaemon wraps the Docker SDK client for host-level daemon checks. Container
// execution itself goes through the CLI so the invocation text stays the contract;
// the SDK is used to verify the daemon is reachable before a run is attempted.
type DockerDaemon struct {
	client *client.Client
}

// NewDockerDaemon creates a daemon handle using client.FromEnv and verifies the
// daemon is reachable.
func NewDockerDaemon() (*DockerDaemon, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Check if Docker daemon is accessible
	ctx := context.Background()
	_, err = dockerClient.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerDaemon{
		client: dockerClient,
	}, nil
}

// Version returns the daemon's reported server version.
func (d *DockerDaemon) Version(ctx context.Context) (string, error) {
	v, err := d.client.ServerVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query Docker daemon version: %w", err)
	}
	slog.Debug("Docker daemon version", "version", v.Version, "apiVersion", v.APIVersion)
	return v.Version, nil
}

// getDockerSocketPaths returns candidate daemon socket locations on this host,
// most specific first. Used for diagnostics when the daemon is unreachable.
func getDockerSocketPaths() []string {
	paths := []string{}
	if host := os.Getenv("DOCKER_HOST"); host != "" {
		paths = append(paths, host)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".docker", "run", "docker.sock"))
	}
	paths = append(paths, "/var/run/docker.sock")
	return paths
}

// DiagnoseSockets reports which candidate socket paths exist on this host.
func DiagnoseSockets() map[string]bool {
	result := make(map[string]bool)
	for _, p := range getDockerSocketPaths() {
		_, err := os.Stat(p)
		result[p] = err == nil
	}
	return result
}
