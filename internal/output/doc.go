// Package output formats scrub results for display or machine consumption.
//
// Two formats are supported:
//   - text: the redacted text followed by a short PHI summary (default)
//   - json: the full structured result
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*scrub.Result]. [WriteResult]
// handles destination selection.
package output
