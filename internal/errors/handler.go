package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"unibuild/internal/ui"
)

// ErrorHandler routes failures to a structured JSON log file and a console summary.
type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
}

func NewErrorHandler() (*ErrorHandler, error) {
	logFile, err := createLogFile()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	console := ui.NewConsole()

	return &ErrorHandler{
		logger:  logger,
		console: console,
	}, nil
}

// logDir returns the OS-standard log directory, honoring UNIBUILD_LOG_DIR.
func logDir() (string, error) {
	if custom := os.Getenv("UNIBUILD_LOG_DIR"); custom != "" {
		return custom, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "unibuild"), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return filepath.Join(homeDir, ".local", "share", "unibuild", "logs"), nil
	case "windows":
		appDataDir := os.Getenv("APPDATA")
		if appDataDir == "" {
			return filepath.Join(homeDir, "AppData", "Roaming", "unibuild", "logs"), nil
		}
		return filepath.Join(appDataDir, "unibuild", "logs"), nil
	default:
		return filepath.Join(homeDir, ".unibuild", "logs"), nil
	}
}

// checkLogRotation rotates the log aside once it crosses the size cap.
func checkLogRotation(logPath string) error {
	const maxSizeBytes = 10 * 1024 * 1024

	info, err := os.Stat(logPath)
	if err != nil {
		return nil
	}

	if info.Size() >= maxSizeBytes {
		old := logPath + ".1"
		if _, err := os.Stat(old); err == nil {
			if err := os.Remove(old); err != nil {
				return err
			}
		}
		return os.Rename(logPath, old)
	}

	return nil
}

func createLogFile() (*os.File, error) {
	dir, err := logDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		// Fall back to the working directory when the standard location is unusable.
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	logPath := filepath.Join(dir, "unibuild.log")

	if err := checkLogRotation(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to rotate log file: %v\n", err)
	}

	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		h.handleBuildError(buildErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleBuildError(err *BuildError) {
	h.logStructuredError(err)

	message := h.console.FormatErrorMessage(err.Context, err.Cause, err.Suggestion)
	h.console.PrintError(message)
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)

	h.console.PrintError(err.Error())
}

func (h *ErrorHandler) logStructuredError(err *BuildError) {
	logAttrs := []slog.Attr{
		slog.String("error", err.OriginalErr.Error()),
		slog.String("type", getErrorTypeName(err.Type)),
		slog.String("context", err.Context),
	}

	if err.Cause != "" {
		logAttrs = append(logAttrs, slog.String("cause", err.Cause))
	}

	if err.Suggestion != "" {
		logAttrs = append(logAttrs, slog.String("suggestion", err.Suggestion))
	}

	h.logger.LogAttrs(context.TODO(), slog.LevelError, "Build error occurred", logAttrs...)
}

func getErrorTypeName(errType error) string {
	switch errType {
	case ErrJobNotFound:
		return "job_not_found"
	case ErrJobParseFailed:
		return "job_parse_failed"
	case ErrUnsupportedPlatform:
		return "unsupported_platform"
	case ErrProcessLaunch:
		return "process_launch_failed"
	case ErrRuntimeFailed:
		return "runtime_failed"
	case ErrCleanupFailed:
		return "cleanup_failed"
	case ErrConfigInvalid:
		return "config_invalid"
	case ErrFileSystemFailed:
		return "filesystem_failed"
	default:
		return "unknown"
	}
}
