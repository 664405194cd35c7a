package docker

import (
	"fmt"
	"path/filepath"
)

// IdentityFilePath returns the stable path where the container runtime writes the
// started container's id for a given run. The path is a pure function of the runner
// temp directory and run identifier, so repeated invocations within one run agree.
func IdentityFilePath(tempDirectory, runID string) string {
	return filepath.Join(tempDirectory, fmt.Sprintf("container_%s", runID))
}
