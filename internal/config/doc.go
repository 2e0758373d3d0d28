// Package config loads, normalizes, and validates taskman configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TASKMAN_DATA_DIR environment
// override. The Config type centralizes every knob the CLI, store, and
// exporters need so the data directory is discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
