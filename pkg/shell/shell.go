package shell

import "context"

// Options defines execution behavior for a single process invocation.
type Options struct {
	// Silent suppresses stdout/stderr streaming.
	Silent bool
	// IgnoreReturnCode treats a non-zero exit as a normal outcome rather than an error.
	IgnoreReturnCode bool
}

// Runner defines the contract for executing host processes. A non-zero exit code is
// reported through the returned int; an error means the process could not be launched
// or waited on at all.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts Options) (int, error)
}
