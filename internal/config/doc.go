// Package config loads and validates application configuration from the
// environment (prefix SHAREWARE) layered over an optional YAML file, and
// holds the compile-time constants the validation scheme depends on: the
// epoch month ordinal, the sentinel key, and the key environment prefix.
package config
