package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.KV.Driver)
	assert.Equal(t, 20, cfg.Library.MaxRecent)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("KV_DRIVER", "sqlite")
	t.Setenv("LIBRARY_MAX_RECENT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "sqlite", cfg.KV.Driver)
	assert.Equal(t, 5, cfg.Library.MaxRecent)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docshelf.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9090"

[kv]
driver = "postgres"

[library]
max_recent = 7
`), 0o600))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.KV.Driver)
	assert.Equal(t, 7, cfg.Library.MaxRecent)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docshelf.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[library]
max_recent = 7
`), 0o600))
	t.Setenv(EnvConfigFile, path)
	t.Setenv("LIBRARY_MAX_RECENT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Library.MaxRecent)
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "absent.toml"))

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte(`port = [`), 0o600))
		t.Setenv(EnvConfigFile, path)

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}
