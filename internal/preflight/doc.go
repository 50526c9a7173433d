// Package preflight checks that a conversion can finish before any output is
// written.
//
// The workflow runs RunAll after every input has been parsed and before the
// image is created. A failed check aborts the run so a long copy never dies
// half way through for a reason that was knowable up front.
//
// Each failed Result carries the error kind the run reports: an unusable
// directory is OutputWriteFailed, a short filesystem is ResourceExhausted.
package preflight
