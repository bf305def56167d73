// Package config loads, normalizes, and validates Podcastr configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and layers environment overrides such as
// PODCASTR_API_KEY on top. The Config type centralizes every knob the CLI
// needs; anything still missing after file and environment resolution is
// collected interactively before a run starts.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
