package config

import _ "embed"

// defaultConfig is the embedded defaults layer, always loaded first.
//
//go:embed unbox.toml
var defaultConfig []byte
