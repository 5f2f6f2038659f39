// Package config loads and merges phiscrub configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (OLLAMA_HOST, PHISCRUB_MODEL, PHISCRUB_CDP_URL, etc.)
//  3. Config file ($XDG_CONFIG_HOME/phiscrub/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
