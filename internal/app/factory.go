package app

import (
	"context"

	"unibuild/internal/docker"
	"unibuild/internal/env"
	"unibuild/internal/host"
	"unibuild/internal/shell"
	"unibuild/pkg/job"
)

// ContainerLifecycle is the slice of the container layer the orchestrator
// depends on: starting a build container and reaping the container tracked
// by a run's identity file.
type ContainerLifecycle interface {
	Run(ctx context.Context, image string, p job.RunParameters, opts docker.RunOptions) (int, error)
	EnsureContainerRemoval(ctx context.Context, rc job.RunnerContext) error
}

// LifecycleFactory provides the container lifecycle manager wired to its
// host-level collaborators. This implements the Factory pattern to decouple
// the application orchestrator from the concrete Docker runner.
type LifecycleFactory struct{}

// NewLifecycleFactory creates a new instance of LifecycleFactory.
func NewLifecycleFactory() *LifecycleFactory {
	return &LifecycleFactory{}
}

// GetLifecycle returns the lifecycle manager backed by the real host: the
// os/exec shell runner, the environment flag factory and the running system's
// host context.
func (f *LifecycleFactory) GetLifecycle() ContainerLifecycle {
	return docker.New(shell.NewExecRunner(), env.NewFactory(), host.System())
}
