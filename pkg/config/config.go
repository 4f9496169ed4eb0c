// Package config loads unbox's runtime configuration.
//
// Configuration is merged from three layers, later layers winning:
// embedded defaults, the user's unbox.toml in the XDG config directory,
// and UNBOX_-prefixed environment variables.
package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/paths"
)

// Config holds the process-wide options a reconciliation call runs under.
// These used to be ambient state in the original system; here they are an
// explicit struct passed alongside each request.
type Config struct {
	// CacheRoot is the directory downloaded archives are cached in.
	// Empty means the XDG archive cache dir.
	CacheRoot string `koanf:"cache_root"`

	// Environment is an opaque environment tag forwarded to the fetcher.
	Environment string `koanf:"environment"`

	// Keep, when true, retains downloaded archives after successful
	// extraction for every state that does not say otherwise.
	Keep bool `koanf:"keep"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		CacheRoot:   "",
		Environment: "base",
		Keep:        false,
	}
}

// Load merges defaults, the config file (if present), and environment
// variables into a Config.
func Load(p paths.Paths) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file, if it exists
	cfgPath := p.ConfigFilePath()
	if _, err := os.Stat(cfgPath); err == nil {
		if err := k.Load(file.Provider(cfgPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", cfgPath)
		}
	}

	// 3. Environment overrides: UNBOX_CACHE_ROOT, UNBOX_ENVIRONMENT, ...
	if err := k.Load(env.Provider("UNBOX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "UNBOX_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// rawBytesProvider feeds an embedded byte slice to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read()")
}
