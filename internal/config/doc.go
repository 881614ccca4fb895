// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and WANDERLIST_-prefixed environment
// variables. It provides type-safe access to the settings needed by the
// server, the storage backends and the token service.
package config
