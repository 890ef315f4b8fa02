package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "nope", "config.json"))
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.False(t, cfg.DisableSMB)
	assert.False(t, cfg.DisableArchives)
	assert.False(t, cfg.PersistCredentials)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"disableSMB": true, "persistCredentials": true}`), 0644))

	cfg, err := NewManagerAt(path).Load()
	require.NoError(t, err)
	assert.True(t, cfg.DisableSMB)
	assert.False(t, cfg.DisableArchives)
	assert.True(t, cfg.PersistCredentials)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := NewManagerAt(path).Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.json")
	m := NewManagerAt(path)

	want := &Config{DisableArchives: true, PersistCredentials: true}
	require.NoError(t, m.Save(want))

	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvOverridesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"disableSMB": true}`), 0644))
	t.Setenv(EnvVar, path)

	cfg, err := NewManager().Load()
	require.NoError(t, err)
	assert.True(t, cfg.DisableSMB)
}
