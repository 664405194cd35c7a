package runtime

import (
	"testing"
)

func TestGetDockerSocketPaths(t *testing.T) {
	paths := getDockerSocketPaths()

	if len(paths) == 0 {
		t.Error("Expected at least one socket path, got none")
	}

	for i, path := range paths {
		if path == "" {
			t.Errorf("Socket path at index %d is empty", i)
		}
	}
}

func TestGetDockerSocketPaths_HonorsDockerHost(t *testing.T) {
	t.Setenv("DOCKER_HOST", "unix:///custom/docker.sock")

	paths := getDockerSocketPaths()
	if paths[0] != "unix:///custom/docker.sock" {
		t.Errorf("Expected DOCKER_HOST first, got %q", paths[0])
	}
}

func TestDiagnoseSockets(t *testing.T) {
	result := DiagnoseSockets()
	if len(result) == 0 {
		t.Error("Expected at least one diagnosed socket path")
	}
}

func TestNewDockerDaemon_RequiresDockerDaemon(t *testing.T) {
	// This test will fail if Docker daemon is not running, but that's expected
	// We're testing the error handling path
	_, err := NewDockerDaemon()

	if err != nil {
		errorMsg := err.Error()
		if errorMsg == "" {
			t.Error("Error message should not be empty")
		}

		// Should contain either "failed to create Docker client" or "failed to connect to Docker daemon"
		hasCreateError := len(errorMsg) > 20 && (errorMsg[:20] == "failed to create Doc" || errorMsg[:20] == "failed to connect to")
		if !hasCreateError {
			t.Errorf("Unexpected error format: %s", errorMsg)
		}
	}
}
