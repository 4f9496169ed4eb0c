package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/manifest"
	"github.com/arthur-debert/unbox/pkg/testutil"
	"github.com/arthur-debert/unbox/pkg/types"
)

const sampleManifest = `
graylog2-server:
  target: /opt
  source: https://example.com/graylog2-server-0.9.6p1.tar.lzma
  source_hash: md5=499ae16dcae71eeb7c3a30c75ea7a1a6
  tar_options: J
  format: tar
  if_missing: /opt/graylog2-server-0.9.6p1
assets:
  target: /srv/assets
  source: https://example.com/assets.zip
  format: zip
  keep: true
`

func TestParse(t *testing.T) {
	m, err := manifest.Parse([]byte(sampleManifest))
	require.NoError(t, err)
	require.Len(t, m, 2)

	st := m["graylog2-server"]
	assert.Equal(t, "/opt", st.Target)
	assert.Equal(t, "J", st.TarOptions)
	assert.Equal(t, "/opt/graylog2-server-0.9.6p1", st.IfMissing)
	assert.Nil(t, st.Keep)

	require.NotNil(t, m["assets"].Keep)
	assert.True(t, *m["assets"].Keep)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := manifest.Parse([]byte("[not yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing target",
			yaml:     "bad:\n  source: https://example.com/x.tar\n  format: tar\n",
			wantCode: errors.ErrManifestValid,
		},
		{
			name:     "missing source",
			yaml:     "bad:\n  target: /opt\n  format: tar\n",
			wantCode: errors.ErrManifestValid,
		},
		{
			name:     "unsupported format",
			yaml:     "bad:\n  target: /opt\n  source: https://example.com/x.7z\n  format: 7z\n",
			wantCode: errors.ErrManifestValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manifest.Parse([]byte(tt.yaml))
			require.NoError(t, err)
			err = m.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode))
		})
	}

	t.Run("valid manifest passes", func(t *testing.T) {
		m, err := manifest.Parse([]byte(sampleManifest))
		require.NoError(t, err)
		assert.NoError(t, m.Validate())
	})
}

func TestRequestsSortedAndDefaulted(t *testing.T) {
	m, err := manifest.Parse([]byte(sampleManifest))
	require.NoError(t, err)

	requests := m.Requests(false)
	require.Len(t, requests, 2)

	// Sorted by state name for deterministic application order
	assert.Equal(t, "assets", requests[0].Name)
	assert.Equal(t, "graylog2-server", requests[1].Name)

	assert.True(t, requests[0].Request.Keep, "explicit keep wins")
	assert.False(t, requests[1].Request.Keep, "default keep applies")
	assert.Equal(t, types.FormatZip, requests[0].Request.Format)

	// Global keep default flows into states that do not set it
	requests = m.Requests(true)
	assert.True(t, requests[1].Request.Keep)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "states.yaml", sampleManifest)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Len(t, m, 2)

	_, err = manifest.Load(dir + "/missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
}
