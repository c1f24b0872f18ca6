package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.NoError(t, err)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, 8082, cfg.App.Port)
	assert.Equal(t, 50, cfg.Versioning.MaxVersions)
	assert.Equal(t, 10, cfg.Versioning.PruneBatch)
	assert.Equal(t, 2*time.Minute, cfg.Versioning.TreeCacheTTL())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: production
  port: 9000
versioning:
  max_versions: 5
  prune_batch: 2
  tree_cache_ttl_sec: 30
`
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, 5, cfg.Versioning.MaxVersions)
	assert.Equal(t, 30*time.Second, cfg.Versioning.TreeCacheTTL())
	// untouched sections keep defaults
	assert.Equal(t, 3306, cfg.Database.Port)
}

func TestLoad_EnvBeatsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9000\n"), 0o644))

	t.Setenv("APP_PORT", "7777")
	t.Setenv("DB_PASSWORD", "hunter2")

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, 7777, cfg.App.Port)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoad_InvalidVersioningValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("versioning:\n  max_versions: -1\n  prune_batch: 0\n"), 0o644))

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, 50, cfg.Versioning.MaxVersions)
	assert.Equal(t, 10, cfg.Versioning.PruneBatch)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("app: [not a map"), 0o644))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db.internal", Port: 3307, User: "u", Password: "p", Name: "artloom"}

	assert.Equal(t, "u:p@tcp(db.internal:3307)/artloom?charset=utf8mb4&parseTime=True&loc=UTC", d.GetDSN())
}
