// Package config loads form declarations from YAML, JSON or TOML files. A
// file declares one form (id, title, fields); LoadFS walks a filesystem and
// collects every declaration into a Store keyed by form id. Custom
// validators cannot be expressed in files, so fields reference them by name
// and the Loader resolves the name against functions registered with
// WithCustomValidator.
package config
