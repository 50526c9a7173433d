package preflight

import (
	"errors"

	"mkcdda/internal/cdda"
	"mkcdda/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Kind classifies a failed check.
	Kind cdda.Kind
}

// RunAll executes the checks for writing need bytes of output into dir.
// The free space check only runs when enabled in cfg.
func RunAll(cfg *config.Config, dir string, need int64) []Result {
	results := []Result{CheckDirectoryAccess("Output directory", dir)}
	if cfg == nil || cfg.Assembly.CheckFreeSpace {
		results = append(results, CheckFreeSpace("Free space", dir, need))
	}
	return results
}

// Err joins the failed results into a single error, or returns nil when every
// check passed.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Passed {
			continue
		}
		kind := r.Kind
		if kind == 0 {
			kind = cdda.OutputWriteFailed
		}
		errs = append(errs, cdda.Errorf(kind, "", "%s: %s", r.Name, r.Detail))
	}
	return errors.Join(errs...)
}
