package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/unbox/pkg/state"
)

func TestCachePathDeterministic(t *testing.T) {
	a := state.CachePath("/var/cache/unbox", "/opt/app-1.0", "tar")
	b := state.CachePath("/var/cache/unbox", "/opt/app-1.0", "tar")
	assert.Equal(t, a, b)
}

func TestCachePathFlattensSeparators(t *testing.T) {
	path := state.CachePath("/var/cache/unbox", "/opt/app-1.0", "tar")
	assert.Equal(t, "/var/cache/unbox/_opt_app-1.0.tar", path)
}

func TestCachePathKeyedByFormat(t *testing.T) {
	tarPath := state.CachePath("/var/cache/unbox", "/opt/app", "tar")
	zipPath := state.CachePath("/var/cache/unbox", "/opt/app", "zip")
	assert.NotEqual(t, tarPath, zipPath)
}
