package job

// Job is the root object that holds the entire configuration for a unibuild execution.
// It's populated by parsing the user's job YAML file.
type Job struct {
	APIVersion string   `yaml:"apiVersion" mapstructure:"apiVersion" validate:"required"`
	Kind       string   `yaml:"kind" mapstructure:"kind" validate:"required,eq=BuildJob"`
	Metadata   Metadata `yaml:"metadata" mapstructure:"metadata" validate:"required"`
	Spec       Spec     `yaml:"spec" mapstructure:"spec" validate:"required"`
}

// Metadata contains job-level metadata.
type Metadata struct {
	Name        string            `yaml:"name" mapstructure:"name" validate:"required"`
	Description string            `yaml:"description" mapstructure:"description"`
	Labels      map[string]string `yaml:"labels,omitempty" mapstructure:"labels"`
}

// Spec contains the image reference and the resolved run parameters for the build container.
type Spec struct {
	Image      string        `yaml:"image" mapstructure:"image" validate:"required"`
	Parameters RunParameters `yaml:"parameters" mapstructure:"parameters" validate:"required"`
}

// RunnerContext identifies the calling run uniquely within the host. It is supplied by
// the caller and immutable for the run's duration.
type RunnerContext struct {
	TempDirectory string `yaml:"tempDirectory" mapstructure:"tempDirectory"`
	RunID         string `yaml:"runId" mapstructure:"runId"`
}

// RunParameters is the fully resolved configuration the command builder consumes.
// All required host paths must be present before a container invocation is built.
type RunParameters struct {
	// Workspace is the host project directory mounted into the container.
	Workspace string `yaml:"workspace" mapstructure:"workspace" validate:"required"`

	// ActionFolder is the host directory holding build scripts, platform steps and
	// Unity configuration that are mounted into the container at fixed paths.
	ActionFolder string `yaml:"actionFolder" mapstructure:"actionFolder" validate:"required"`

	// ContainerWorkspace is the in-container mount point for Workspace.
	ContainerWorkspace string `yaml:"containerWorkspace" mapstructure:"containerWorkspace" validate:"required"`

	// CPULimit and MemoryLimit are passed verbatim to the container runtime.
	CPULimit    string `yaml:"cpuLimit" mapstructure:"cpuLimit" validate:"required"`
	MemoryLimit string `yaml:"memoryLimit" mapstructure:"memoryLimit" validate:"required"`

	// SSHAgent is the host path of an SSH agent socket to share with the container.
	SSHAgent string `yaml:"sshAgent,omitempty" mapstructure:"sshAgent"`

	// SSHPublicKeysDirectory overrides the known-hosts fallback with an explicit
	// directory of trusted keys.
	SSHPublicKeysDirectory string `yaml:"sshPublicKeysDirectory,omitempty" mapstructure:"sshPublicKeysDirectory"`

	// GitPrivateToken, when set, is injected as a token environment variable.
	GitPrivateToken string `yaml:"gitPrivateToken,omitempty" mapstructure:"gitPrivateToken"`

	// IsolationMode selects the Windows container isolation mode.
	IsolationMode string `yaml:"isolationMode,omitempty" mapstructure:"isolationMode"`

	// Environment holds additional key/value pairs injected into the container.
	Environment map[string]string `yaml:"environment,omitempty" mapstructure:"environment"`

	Runner RunnerContext `yaml:"runner" mapstructure:"runner"`
}
