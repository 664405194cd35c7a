package errors

import "errors"

var (
	ErrJobNotFound         = errors.New("job file not found")
	ErrJobParseFailed      = errors.New("job parsing failed")
	ErrUnsupportedPlatform = errors.New("unsupported host platform")
	ErrProcessLaunch       = errors.New("process launch failed")
	ErrRuntimeFailed       = errors.New("runtime operation failed")
	ErrCleanupFailed       = errors.New("container cleanup failed")
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrFileSystemFailed    = errors.New("filesystem operation failed")
)

// BuildError carries the user-facing context around a failure: what was being done,
// why it failed, and what to try next.
type BuildError struct {
	Type        error
	Context     string
	Cause       string
	Suggestion  string
	OriginalErr error
}

func (e *BuildError) Error() string {
	return e.OriginalErr.Error()
}

func (e *BuildError) Unwrap() error {
	return e.OriginalErr
}

func NewBuildError(errorType error, context, cause, suggestion string, originalErr error) *BuildError {
	return &BuildError{
		Type:        errorType,
		Context:     context,
		Cause:       cause,
		Suggestion:  suggestion,
		OriginalErr: originalErr,
	}
}

func NewParseError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrJobParseFailed, context, cause, suggestion, originalErr)
}

func NewPlatformError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrUnsupportedPlatform, context, cause, suggestion, originalErr)
}

func NewRuntimeError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrRuntimeFailed, context, cause, suggestion, originalErr)
}

func NewCleanupError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrCleanupFailed, context, cause, suggestion, originalErr)
}

func NewConfigError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrConfigInvalid, context, cause, suggestion, originalErr)
}

func NewFileSystemError(context, cause, suggestion string, originalErr error) *BuildError {
	return NewBuildError(ErrFileSystemFailed, context, cause, suggestion, originalErr)
}
