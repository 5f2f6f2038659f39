// Package cli wires together the Cobra command tree for the phiscrub binary.
//
// It defines the root command and all subcommands (scrub, insert, status,
// agent, config, version), binds flags, reads configuration, drives the
// redaction client and the page bridge, and returns deterministic exit codes.
package cli
