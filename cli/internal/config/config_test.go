package config

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := AppFs
	fs := afero.NewMemMapFs()
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	useMemFs(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PRISMA_FTS_DATABASE_URL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &Config{CacheSize: 256, ValidateConditions: true}, cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/fts.yaml", []byte(`
debug: true
cache_size: 16
validate_conditions: false
default_table: Categories
database_url: sqlserver://file
`), 0644))

	t.Setenv("PRISMA_FTS_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	cfg, err := LoadConfig("/etc/fts.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.False(t, cfg.ValidateConditions)
	assert.Equal(t, "Categories", cfg.DefaultTable)
	assert.Equal(t, "sqlserver://file", cfg.DatabaseURL)

	t.Setenv("DATABASE_URL", "sqlserver://env")
	t.Setenv("PRISMA_FTS_CACHE_SIZE", "8")
	cfg, err = LoadConfig("/etc/fts.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sqlserver://env", cfg.DatabaseURL)
	assert.Equal(t, 8, cfg.CacheSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	fs := useMemFs(t)

	_, err := LoadConfig("/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/neg.yaml", []byte("cache_size: -1\n"), 0644))
	_, err = LoadConfig("/neg.yaml")
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	fs := useMemFs(t)

	path, err := SaveConfig(&Config{CacheSize: 32, DefaultTable: "Products"})
	require.NoError(t, err)

	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "prisma-fts", ".prisma-fts.yaml"), path)

	t.Setenv("PRISMA_FTS_CACHE_SIZE", "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, "Products", cfg.DefaultTable)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}
