package docker

import (
	"path/filepath"

	"unibuild/pkg/job"
)

// Fixed in-container paths for Windows containers.
const (
	winContainerBuildScriptPath  = "c:/UnityBuilderAction"
	winContainerStepsPath        = "c:/steps"
	winContainerBlankProjectPath = "c:/BlankProject"
	winContainerRegKeysPath      = "c:/regkeys"
	winEntrypointScript          = "c:/steps/entrypoint.ps1"

	winStepsDir = "platforms/windows"

	// defaultIsolationMode keeps --isolation from being emitted empty when the
	// caller never set a mode; "default" defers to the daemon's configuration.
	defaultIsolationMode = "default"
)

// Toolchain directories bind-mounted read/write from identical host paths. These are
// not configurable: the image expects the host's installations at the same letters.
var windowsToolchainMounts = []string{
	"C:/Program Files (x86)/Microsoft Visual Studio",
	"C:/Program Files (x86)/Windows Kits",
	"C:/ProgramData/Microsoft/VisualStudio",
}

// windowsRunArgs builds the argument list for a Windows container run. No cidfile is
// produced on this path: cleanup tracking is Linux-only and Windows containers are
// reaped by --rm and the external orchestrator.
func windowsRunArgs(image string, p job.RunParameters, envArgs []string) []string {
	args := []string{
		"run",
		"--workdir", p.ContainerWorkspace,
		"--rm",
	}
	args = append(args, envArgs...)

	if p.GitPrivateToken != "" {
		args = append(args, "--env", "GIT_PRIVATE_TOKEN="+p.GitPrivateToken)
	}

	args = append(args,
		"--volume", volume(p.Workspace, p.ContainerWorkspace),
		"--volume", volume(winContainerRegKeysPath, winContainerRegKeysPath),
	)
	for _, dir := range windowsToolchainMounts {
		args = append(args, "--volume", volume(dir, dir))
	}
	args = append(args,
		"--volume", volume(filepath.ToSlash(filepath.Join(p.ActionFolder, defaultBuildScriptDir)), winContainerBuildScriptPath),
		"--volume", volume(filepath.ToSlash(filepath.Join(p.ActionFolder, winStepsDir)), winContainerStepsPath),
		"--volume", volume(filepath.ToSlash(filepath.Join(p.ActionFolder, blankProjectDir)), winContainerBlankProjectPath),
	)

	isolation := p.IsolationMode
	if isolation == "" {
		isolation = defaultIsolationMode
	}

	args = append(args,
		"--cpus="+p.CPULimit,
		"--memory="+p.MemoryLimit,
		"--isolation="+isolation,
		image,
		"powershell", winEntrypointScript,
	)

	return args
}
