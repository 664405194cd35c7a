package docker

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"unibuild/pkg/job"
)

func testParams(t *testing.T) job.RunParameters {
	t.Helper()
	return job.RunParameters{
		Workspace:          "/home/ci/project",
		ActionFolder:       "/home/ci/action",
		ContainerWorkspace: "/unibuild/workspace",
		CPULimit:           "2",
		MemoryLimit:        "4g",
		Runner: job.RunnerContext{
			TempDirectory: t.TempDir(),
			RunID:         "run-1",
		},
	}
}

func argText(args []string) string {
	return strings.Join(args, " ")
}

func dirExists(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func TestLinuxRunArgs_Deterministic(t *testing.T) {
	p := testParams(t)

	first, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci")
	if err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}
	second, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci")
	if err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Identical inputs produced different argument lists:\n%v\n%v", first, second)
	}
}

func TestLinuxRunArgs_Defaults(t *testing.T) {
	p := testParams(t)

	args, err := linuxRunArgs("unityci/editor:ubuntu-2022.3.7f1-linux-il2cpp-3", p, "", nil, false, "/home/ci")
	if err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}
	text := argText(args)

	for _, want := range []string{
		"--cpus=2",
		"--memory=4g",
		"--rm",
		"--cidfile " + IdentityFilePath(p.Runner.TempDirectory, "run-1"),
		"--workdir /unibuild/workspace",
		p.Workspace + ":/unibuild/workspace",
		"/bin/bash -c /entrypoint.sh",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected command to contain %q, got: %s", want, text)
		}
	}

	for _, forbidden := range []string{"SSH_AUTH_SOCK", "GIT_PRIVATE_TOKEN", "known_hosts"} {
		if strings.Contains(text, forbidden) {
			t.Errorf("Command must not contain %q when the field is unset, got: %s", forbidden, text)
		}
	}
}

func TestLinuxRunArgs_CreatesSubstituteDirectories(t *testing.T) {
	p := testParams(t)

	if _, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci"); err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}

	for _, dir := range []string{homeSubstituteDir, workflowSubstituteDir} {
		full := filepath.Join(p.Runner.TempDirectory, dir)
		if !dirExists(t, full) {
			t.Errorf("Expected substitute directory %s to be created", full)
		}
	}

	// Idempotent: building again with the directories already present must not fail.
	if _, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci"); err != nil {
		t.Errorf("Second build with existing directories failed: %v", err)
	}
}

func TestLinuxRunArgs_SSHAgentMounts(t *testing.T) {
	tests := []struct {
		name          string
		sshAgent      string
		publicKeysDir string
		wantAgent     bool
		wantFallback  bool
		wantPublicKey bool
	}{
		{name: "no agent", wantAgent: false},
		{name: "agent only uses known-hosts fallback", sshAgent: "/tmp/agent.sock", wantAgent: true, wantFallback: true},
		{name: "public keys dir wins over fallback", sshAgent: "/tmp/agent.sock", publicKeysDir: "/home/ci/keys", wantAgent: true, wantPublicKey: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(t)
			p.SSHAgent = tt.sshAgent
			p.SSHPublicKeysDirectory = tt.publicKeysDir

			args, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci")
			if err != nil {
				t.Fatalf("linuxRunArgs() failed: %v", err)
			}
			text := argText(args)

			if got := strings.Contains(text, "SSH_AUTH_SOCK=/ssh-agent"); got != tt.wantAgent {
				t.Errorf("SSH_AUTH_SOCK present=%v, want %v", got, tt.wantAgent)
			}
			if got := strings.Contains(text, "/home/ci/.ssh/known_hosts:/root/.ssh/known_hosts:ro"); got != tt.wantFallback {
				t.Errorf("known-hosts fallback present=%v, want %v", got, tt.wantFallback)
			}
			if got := strings.Contains(text, "/home/ci/keys:/root/.ssh:ro"); got != tt.wantPublicKey {
				t.Errorf("public-keys mount present=%v, want %v", got, tt.wantPublicKey)
			}
		})
	}
}

func TestLinuxRunArgs_GitPrivateToken(t *testing.T) {
	p := testParams(t)
	p.GitPrivateToken = "s3cret"

	args, err := linuxRunArgs("unityci/editor:tag", p, "", nil, false, "/home/ci")
	if err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}

	if !strings.Contains(argText(args), "GIT_PRIVATE_TOKEN=s3cret") {
		t.Error("Expected token environment variable when a token is supplied")
	}
}

func TestLinuxRunArgs_EntrypointOverride(t *testing.T) {
	p := testParams(t)

	t.Run("shell entrypoint override", func(t *testing.T) {
		args, err := linuxRunArgs("unityci/editor:tag", p, "echo hi", nil, true, "/home/ci")
		if err != nil {
			t.Fatalf("linuxRunArgs() failed: %v", err)
		}
		text := argText(args)
		if !strings.Contains(text, "--entrypoint /bin/bash unityci/editor:tag -c echo hi") {
			t.Errorf("Expected entrypoint override form, got: %s", text)
		}
	})

	t.Run("plain shell invocation", func(t *testing.T) {
		args, err := linuxRunArgs("unityci/editor:tag", p, "echo hi", nil, false, "/home/ci")
		if err != nil {
			t.Fatalf("linuxRunArgs() failed: %v", err)
		}
		text := argText(args)
		if strings.Contains(text, "--entrypoint") {
			t.Errorf("Did not expect --entrypoint, got: %s", text)
		}
		if !strings.Contains(text, "unityci/editor:tag /bin/bash -c echo hi") {
			t.Errorf("Expected shell -c invocation, got: %s", text)
		}
	})
}

func TestLinuxRunArgs_EnvArgsInsertedVerbatim(t *testing.T) {
	p := testParams(t)
	envArgs := []string{"--env", "BUILD_TARGET=StandaloneLinux64", "--env", `MESSAGE=a "quoted" value`}

	args, err := linuxRunArgs("unityci/editor:tag", p, "", envArgs, false, "/home/ci")
	if err != nil {
		t.Fatalf("linuxRunArgs() failed: %v", err)
	}

	for i, arg := range args {
		if arg == "--env" && args[i+1] == `MESSAGE=a "quoted" value` {
			return
		}
	}
	t.Errorf("Env tokens were not inserted verbatim: %v", args)
}

func TestShellFor(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{"unityci/editor:ubuntu-6000.0.0f1-base-1", "/bin/sh"},
		{"unityci/editor:ubuntu-2022.3.7f1-linux-il2cpp-3", "/bin/bash"},
		{"unityci/editor", "/bin/bash"},
	}

	for _, tt := range tests {
		if got := shellFor(tt.image); got != tt.want {
			t.Errorf("shellFor(%q) = %q, want %q", tt.image, got, tt.want)
		}
	}
}

func TestWindowsRunArgs(t *testing.T) {
	p := testParams(t)
	p.ContainerWorkspace = "c:/unibuild/workspace"
	p.IsolationMode = "process"

	args := windowsRunArgs("unityci/editor:windows-tag", p, nil)
	text := argText(args)

	for _, want := range []string{
		"--cpus=2",
		"--memory=4g",
		"--isolation=process",
		"C:/Program Files (x86)/Microsoft Visual Studio",
		"C:/Program Files (x86)/Windows Kits",
		"C:/ProgramData/Microsoft/VisualStudio",
		"c:/regkeys",
		"powershell c:/steps/entrypoint.ps1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected Windows command to contain %q, got: %s", want, text)
		}
	}

	if strings.Contains(text, "--cidfile") {
		t.Error("Windows command must not produce an identity file")
	}
}

func TestWindowsRunArgs_IsolationDefault(t *testing.T) {
	// An unset isolation mode must not produce a bare "--isolation=" flag.
	p := testParams(t)
	p.ContainerWorkspace = "c:/unibuild/workspace"
	p.IsolationMode = ""

	text := argText(windowsRunArgs("unityci/editor:windows-tag", p, nil))

	if strings.Contains(text, "--isolation= ") || strings.HasSuffix(text, "--isolation=") {
		t.Errorf("Empty isolation flag emitted: %s", text)
	}
	if !strings.Contains(text, "--isolation=default") {
		t.Errorf("Expected --isolation=default, got: %s", text)
	}
}

func TestInvocationString_QuotesWhitespaceTokens(t *testing.T) {
	inv := Invocation{Name: "docker", Args: []string{"run", "--volume", "C:/Program Files (x86)/Windows Kits:C:/Program Files (x86)/Windows Kits"}}

	s := inv.String()
	if !strings.Contains(s, `"C:/Program Files (x86)/Windows Kits:C:/Program Files (x86)/Windows Kits"`) {
		t.Errorf("Expected whitespace token to be quoted, got: %s", s)
	}
	if !strings.HasPrefix(s, "docker run") {
		t.Errorf("Expected command to start with the binary name, got: %s", s)
	}
}
