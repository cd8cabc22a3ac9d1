package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "db/ptcg_card.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "db/deck_category.json", cfg.Category.Path)
	assert.Equal(t, 4, cfg.Ingest.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost:5432/pokeca
category:
  path: /var/lib/pokeca/deck_category.json
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost:5432/pokeca", cfg.Store.DatabaseURL)
	assert.Equal(t, "/var/lib/pokeca/deck_category.json", cfg.Category.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// unset keys keep their defaults
	assert.Equal(t, 4, cfg.Ingest.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("store: ["), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "chatty", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	assert.NoError(t, err)
}
