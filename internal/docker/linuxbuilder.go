package docker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unibuild/pkg/job"
)

// Fixed in-container paths. These are a contract with the build image and must
// match the image contents exactly.
const (
	containerHomePath         = "/root"
	containerWorkflowPath     = "/unibuild/workflow"
	containerBuildScriptPath  = "/UnityBuilderAction"
	containerStepsPath        = "/steps"
	containerEntrypointPath   = "/entrypoint.sh"
	containerUnityConfigPath  = "/usr/share/unity3d/config/"
	containerBlankProjectPath = "/BlankProject"
	containerSSHSocketPath    = "/ssh-agent"
	containerKnownHostsPath   = "/root/.ssh/known_hosts"
	containerSSHKeysPath      = "/root/.ssh"
	containerCleanupScript    = "/cleanup.sh"
)

// Layout of the action folder on the host.
const (
	defaultBuildScriptDir = "default-build-script"
	linuxStepsDir         = "platforms/ubuntu"
	linuxEntrypointScript = "platforms/ubuntu/entrypoint.sh"
	unityConfigDir        = "unity-config"
	blankProjectDir       = "BlankProject"
)

// Host directories substituted for the runner's home and workflow state. Created
// under the run temp directory so the container never touches the real ones.
const (
	homeSubstituteDir     = "_unibuild_home"
	workflowSubstituteDir = "_unibuild_workflow"
)

// shellFor picks the in-container shell. Minimal "base" flavor images ship without
// bash, so they get /bin/sh.
func shellFor(image string) string {
	tag := ""
	if idx := strings.LastIndex(image, ":"); idx >= 0 {
		tag = image[idx+1:]
	}
	if strings.Contains(tag, "base") {
		return "/bin/sh"
	}
	return "/bin/bash"
}

// linuxRunArgs builds the argument list for a Linux container run. envArgs is an
// opaque, already-escaped token sequence produced by the environment collaborator
// and is inserted verbatim. The only I/O performed is the idempotent creation of
// the two substitute host directories.
func linuxRunArgs(image string, p job.RunParameters, command string, envArgs []string, entrypointBash bool, homeDir string) ([]string, error) {
	homeSubstitute := filepath.Join(p.Runner.TempDirectory, homeSubstituteDir)
	workflowSubstitute := filepath.Join(p.Runner.TempDirectory, workflowSubstituteDir)
	for _, dir := range []string{homeSubstitute, workflowSubstitute} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create substitute directory %s: %w", dir, err)
		}
	}

	sh := shellFor(image)
	if command == "" {
		command = containerEntrypointPath
	}

	args := []string{
		"run",
		"--workdir", p.ContainerWorkspace,
		"--cidfile", IdentityFilePath(p.Runner.TempDirectory, p.Runner.RunID),
		"--rm",
	}
	args = append(args, envArgs...)

	if p.GitPrivateToken != "" {
		args = append(args, "--env", "GIT_PRIVATE_TOKEN="+p.GitPrivateToken)
	}
	if p.SSHAgent != "" {
		args = append(args, "--env", "SSH_AUTH_SOCK="+containerSSHSocketPath)
	}

	args = append(args,
		"--volume", volume(homeSubstitute, containerHomePath),
		"--volume", volume(workflowSubstitute, containerWorkflowPath),
		"--volume", volume(p.Workspace, p.ContainerWorkspace),
		"--volume", volume(filepath.Join(p.ActionFolder, defaultBuildScriptDir), containerBuildScriptPath),
		"--volume", volume(filepath.Join(p.ActionFolder, linuxStepsDir), containerStepsPath),
		"--volume", volume(filepath.Join(p.ActionFolder, linuxEntrypointScript), containerEntrypointPath),
		"--volume", volume(filepath.Join(p.ActionFolder, unityConfigDir), containerUnityConfigPath),
		"--volume", volume(filepath.Join(p.ActionFolder, blankProjectDir), containerBlankProjectPath),
	)

	if p.SSHAgent != "" {
		args = append(args, "--volume", volume(p.SSHAgent, containerSSHSocketPath))
		// An explicit public-keys directory wins over the known-hosts fallback.
		if p.SSHPublicKeysDirectory != "" {
			args = append(args, "--volume", volume(p.SSHPublicKeysDirectory, containerSSHKeysPath)+":ro")
		} else {
			args = append(args, "--volume", volume(filepath.Join(homeDir, ".ssh", "known_hosts"), containerKnownHostsPath)+":ro")
		}
	}

	args = append(args,
		"--cpus="+p.CPULimit,
		"--memory="+p.MemoryLimit,
	)

	if entrypointBash {
		args = append(args, "--entrypoint", sh, image, "-c", command)
	} else {
		args = append(args, image, sh, "-c", command)
	}

	return args, nil
}

func volume(hostPath, containerPath string) string {
	return hostPath + ":" + containerPath
}
