// Package manifest parses the YAML document describing desired extraction
// states. A manifest maps state names to declarations:
//
//	graylog2-server:
//	  target: /opt
//	  source: https://example.com/graylog2-server-0.9.6p1.tar.gz
//	  source_hash: md5=499ae16dcae71eeb7c3a30c75ea7a1a6
//	  format: tar
//	  if_missing: /opt/graylog2-server-0.9.6p1
package manifest

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/types"
)

// State is one extraction declaration in a manifest.
type State struct {
	Target     string `yaml:"target"`
	Source     string `yaml:"source"`
	Format     string `yaml:"format"`
	TarOptions string `yaml:"tar_options,omitempty"`
	SourceHash string `yaml:"source_hash,omitempty"`
	IfMissing  string `yaml:"if_missing,omitempty"`
	Keep       *bool  `yaml:"keep,omitempty"`
}

// Manifest maps state names to their declarations.
type Manifest map[string]State

// NamedRequest pairs a manifest state name with the request it declares.
type NamedRequest struct {
	Name    string
	Request types.ExtractionRequest
}

// Load reads and parses a manifest file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", path)
	}
	return Parse(data)
}

// Parse parses manifest YAML.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse manifest")
	}
	return m, nil
}

// Validate checks every state for required fields and a known format.
func (m Manifest) Validate() error {
	for name, st := range m {
		if st.Target == "" {
			return errors.Newf(errors.ErrManifestValid, "state %q: target is required", name)
		}
		if st.Source == "" {
			return errors.Newf(errors.ErrManifestValid, "state %q: source is required", name)
		}
		if _, err := types.ParseFormat(st.Format); err != nil {
			return errors.Wrapf(err, errors.ErrManifestValid, "state %q", name)
		}
	}
	return nil
}

// Requests converts the manifest into extraction requests, sorted by state
// name for deterministic application order. defaultKeep applies to states
// that do not set keep themselves.
func (m Manifest) Requests(defaultKeep bool) []NamedRequest {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	requests := make([]NamedRequest, 0, len(names))
	for _, name := range names {
		st := m[name]
		keep := defaultKeep
		if st.Keep != nil {
			keep = *st.Keep
		}
		requests = append(requests, NamedRequest{
			Name: name,
			Request: types.ExtractionRequest{
				Target:     st.Target,
				Source:     st.Source,
				Format:     types.Format(st.Format),
				TarOptions: st.TarOptions,
				SourceHash: st.SourceHash,
				IfMissing:  st.IfMissing,
				Keep:       keep,
			},
		})
	}
	return requests
}
