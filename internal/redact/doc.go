// Package redact inspects text that has already been through PHI redaction.
//
// A redacting model replaces each protected span with a bracketed uppercase
// tag such as [NAME], [DATE] or [MRN]. [Analyze] counts those tags and
// collects the distinct ones so the caller can summarise what was removed.
// [LineCount] supports the line-preservation check between the input text
// and the redacted output.
package redact
