package host

import (
	"os"
	"runtime"
	"strconv"
)

// Context abstracts the process-environment reads the container lifecycle depends on,
// so tests can supply a deterministic host instead of the real one.
type Context interface {
	// Platform returns the host platform identifier (a GOOS value).
	Platform() string
	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)
	// FallbackRunID returns an identifier usable when the caller supplied none.
	FallbackRunID() string
}

type systemContext struct{}

// System returns the Context backed by the real process environment.
func System() Context {
	return systemContext{}
}

func (systemContext) Platform() string {
	return runtime.GOOS
}

func (systemContext) HomeDir() (string, error) {
	return os.UserHomeDir()
}

func (systemContext) FallbackRunID() string {
	return strconv.Itoa(os.Getpid())
}
