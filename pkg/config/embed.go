package config

import (
	_ "embed"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded default configuration. It is what
// `dotsnap genconfig` emits.
func DefaultContent() string {
	return string(defaultConfig)
}
