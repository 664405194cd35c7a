package shell

import (
	"context"
	"runtime"
	"testing"

	"unibuild/pkg/shell"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test uses POSIX shell utilities")
	}
}

func TestRun_ZeroExit(t *testing.T) {
	skipOnWindows(t)

	r := NewExecRunner()
	code, err := r.Run(context.Background(), "true", nil, shell.Options{Silent: true})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
}

func TestRun_NonZeroExitIgnored(t *testing.T) {
	skipOnWindows(t)

	r := NewExecRunner()
	code, err := r.Run(context.Background(), "sh", []string{"-c", "exit 137"}, shell.Options{Silent: true, IgnoreReturnCode: true})
	if err != nil {
		t.Fatalf("Run() with IgnoreReturnCode must not fail on non-zero exit: %v", err)
	}
	if code != 137 {
		t.Errorf("Run() = %d, want 137", code)
	}
}

func TestRun_NonZeroExitReported(t *testing.T) {
	skipOnWindows(t)

	r := NewExecRunner()
	code, err := r.Run(context.Background(), "sh", []string{"-c", "exit 3"}, shell.Options{Silent: true})
	if err == nil {
		t.Fatal("Run() without IgnoreReturnCode must report non-zero exit")
	}
	if code != 3 {
		t.Errorf("Run() = %d, want 3", code)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	r := NewExecRunner()
	_, err := r.Run(context.Background(), "unibuild-no-such-binary", nil, shell.Options{Silent: true, IgnoreReturnCode: true})
	if err == nil {
		t.Fatal("Run() must fail when the binary cannot be launched")
	}
}
