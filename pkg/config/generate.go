package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/unbox/pkg/errors"
)

// userConfig mirrors Config with toml tags for rendering a starter file.
type userConfig struct {
	CacheRoot   string `toml:"cache_root"`
	Environment string `toml:"environment"`
	Keep        bool   `toml:"keep"`
}

// GenerateDefault renders the default configuration as TOML, suitable for
// writing to a fresh unbox.toml.
func GenerateDefault() (string, error) {
	def := Default()
	out, err := toml.Marshal(userConfig{
		CacheRoot:   def.CacheRoot,
		Environment: def.Environment,
		Keep:        def.Keep,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal default config")
	}
	return string(out), nil
}
