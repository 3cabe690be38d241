package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/testutil"
)

func TestLoadCache_ValidJSON(t *testing.T) {
	content := `{
		"version": 1,
		"entries": {
			"/home/user/proj": {
				"env_path": "/tmp/envs/proj-abc123",
				"manager": "poetry",
				"resolved_at": "2026-08-14T10:30:00Z",
				"lock_hash": "a1b2c3d4"
			}
		}
	}`
	path := testutil.TempCacheFile(t, content)
	c, err := cache.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1, c.Version)
	assert.Len(t, c.Entries, 1)
	assert.Equal(t, "/tmp/envs/proj-abc123", c.Entries["/home/user/proj"].EnvPath)
}

func TestLoadCache_MissingFile(t *testing.T) {
	c, err := cache.Load("/nonexistent/cache.json")
	require.NoError(t, err) // graceful: empty cache
	assert.Empty(t, c.Entries)
}

func TestLoadCache_InvalidJSON(t *testing.T) {
	path := testutil.TempCacheFile(t, "not json {{{")
	c, err := cache.Load(path)
	require.NoError(t, err) // graceful degradation
	assert.Empty(t, c.Entries)
}

func TestLoadCache_UnreadablePath(t *testing.T) {
	// 경로가 디렉토리인 경우에도 사용 가능한 빈 캐시를 반환해야 한다
	c, err := cache.Load(t.TempDir())
	require.Error(t, err)
	require.NotNil(t, c)
	assert.Empty(t, c.Entries)

	// 반환된 캐시로 모든 연산이 가능하다
	_, ok := c.Lookup("/home/user/proj", "abc", 7)
	assert.False(t, ok)
	c.Set("/home/user/proj", cache.Entry{EnvPath: "/tmp/envs/a"})
	assert.Len(t, c.Entries, 1)
}

func TestLookup_Hit(t *testing.T) {
	envDir := testutil.WriteVenvDir(t, t.TempDir(), "proj-abc123")

	c := &cache.Cache{
		Entries: map[string]cache.Entry{
			"/home/user/proj": {
				EnvPath:    envDir,
				Manager:    "poetry",
				ResolvedAt: time.Now().Format(time.RFC3339),
				LockHash:   "abc123",
			},
		},
	}
	entry, ok := c.Lookup("/home/user/proj", "abc123", 7)
	require.True(t, ok)
	assert.Equal(t, envDir, entry.EnvPath)
}

func TestLookup_TTLExpired(t *testing.T) {
	envDir := testutil.WriteVenvDir(t, t.TempDir(), "proj-abc123")

	c := &cache.Cache{
		Entries: map[string]cache.Entry{
			"/home/user/proj": {
				EnvPath:    envDir,
				ResolvedAt: time.Now().Add(-8 * 24 * time.Hour).Format(time.RFC3339),
				LockHash:   "abc123",
			},
		},
	}
	_, ok := c.Lookup("/home/user/proj", "abc123", 7)
	assert.False(t, ok)
}

func TestLookup_HashMismatch(t *testing.T) {
	envDir := testutil.WriteVenvDir(t, t.TempDir(), "proj-abc123")

	c := &cache.Cache{
		Entries: map[string]cache.Entry{
			"/home/user/proj": {
				EnvPath:    envDir,
				ResolvedAt: time.Now().Format(time.RFC3339),
				LockHash:   "old_hash",
			},
		},
	}
	_, ok := c.Lookup("/home/user/proj", "new_hash", 7)
	assert.False(t, ok)
}

func TestLookup_EnvDirGone(t *testing.T) {
	// 매니저가 환경을 지운 경우 캐시 hit이 되면 안 된다
	c := &cache.Cache{
		Entries: map[string]cache.Entry{
			"/home/user/proj": {
				EnvPath:    "/nonexistent/envs/proj-abc123",
				ResolvedAt: time.Now().Format(time.RFC3339),
				LockHash:   "abc123",
			},
		},
	}
	_, ok := c.Lookup("/home/user/proj", "abc123", 7)
	assert.False(t, ok)
}

func TestSave_NewEntry(t *testing.T) {
	c := cache.New()
	c.Set("/home/user/proj", cache.Entry{
		EnvPath:    "/tmp/envs/proj-abc123",
		Manager:    "poetry",
		ResolvedAt: time.Now().Format(time.RFC3339),
		LockHash:   "abc",
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.json")
	err := c.Save(path)
	require.NoError(t, err)

	info, _ := os.Stat(path)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "poetry", loaded.Entries["/home/user/proj"].Manager)
}

func TestInvalidate(t *testing.T) {
	c := cache.New()
	c.Set("/home/user/proj", cache.Entry{EnvPath: "/tmp/envs/a", Manager: "poetry"})
	c.Set("/home/user/other", cache.Entry{EnvPath: "/tmp/envs/b", Manager: "poetry"})

	c.Invalidate("/home/user/proj")

	assert.NotContains(t, c.Entries, "/home/user/proj")
	assert.Contains(t, c.Entries, "/home/user/other")
}

func TestInvalidateByManager(t *testing.T) {
	c := cache.New()
	c.Set("/home/user/a", cache.Entry{EnvPath: "/tmp/envs/a", Manager: "poetry"})
	c.Set("/home/user/b", cache.Entry{EnvPath: "/tmp/envs/b", Manager: "uv"})

	c.InvalidateByManager("poetry")

	assert.NotContains(t, c.Entries, "/home/user/a")
	assert.Contains(t, c.Entries, "/home/user/b")
}
