package env

import (
	"fmt"
	"sort"

	"unibuild/pkg/job"
)

// Factory builds --env tokens for a container invocation from the job's environment
// map merged with per-run additional variables. Output ordering is sorted by key so
// identical inputs always yield identical argument lists.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Args returns the --env token sequence. Additional variables win over job
// environment entries on key collision.
func (f *Factory) Args(p job.RunParameters, additional map[string]string) []string {
	merged := make(map[string]string, len(p.Environment)+len(additional))
	for k, v := range p.Environment {
		merged[k] = v
	}
	for k, v := range additional {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, "--env", fmt.Sprintf("%s=%s", k, merged[k]))
	}
	return args
}
