// Package workflow runs one conversion from input paths to a finished disc
// image and cue sheet.
//
// A run happens in two phases. First every input is parsed and the whole
// image is laid out, so a bad input or an oversized disc fails before any
// output exists. Then the image is streamed track by track and the cue sheet
// is written only once the image is complete. Any failure in the second phase
// leaves the partial image in place; callers must treat an error as "outputs
// may be incomplete".
package workflow
