// Package scrub is the redaction client: it wraps user text in the fixed
// PHI-filter prompt, asks the local model for one completion and summarises
// the tags in the result.
//
// A [Scrubber] performs one network call per [Scrubber.Scrub]. Empty input is
// rejected before any request is built. [Scrubber.CheckAvailability] asks the
// service which models are installed and reports whether the required model
// family is present, with install guidance when it is not.
//
// The underlying model is not fully deterministic even at temperature zero,
// so repeated calls with the same text may differ in exact wording.
package scrub
