package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/pyctx/internal/config"
)

func TestSave_WritesValidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	cfg.DefaultManager = "uv"
	cfg.Shell = "fish"
	ttl := 30
	cfg.CacheTTLDays = &ttl

	err := config.Save(path, cfg)
	require.NoError(t, err)

	// 파일 권한 0600 확인
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Load로 round-trip 검증
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "uv", loaded.DefaultManager)
	assert.Equal(t, "fish", loaded.Shell)
	assert.Equal(t, 30, loaded.TTLDays())
}

func TestSave_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "pyctx", "config.toml")

	err := config.Save(path, config.Default())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSave_RoundTripPreservesHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := config.Default()
	cfg.DefaultManager = "pipenv"
	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.ConfigHash(), loaded.ConfigHash())
}
