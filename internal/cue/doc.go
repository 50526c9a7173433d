// Package cue renders the cue sheet that accompanies a disc image.
//
// Only single-file BINARY sheets are produced: one FILE line, then a TRACK
// and INDEX 01 pair per track. The first track also declares a fixed
// 00:02:00 PREGAP. The pregap is textual only; no silent sectors back it in
// the image, so tools that expect a pregap-inclusive physical layout will see
// track one start at sector 0.
package cue
