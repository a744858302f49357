// Package config manages user-level settings stored at ~/.skelgen/config.yaml.
// Every key can be overridden by an environment variable carrying the
// SKELGEN_ prefix, e.g. SKELGEN_CONCURRENCY=4.
package config
