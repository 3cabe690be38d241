package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/pyctx/internal/project"
	"github.com/hbjs97/pyctx/internal/testutil"
)

func TestFindRootWithin_PyprojectMarker(t *testing.T) {
	t.Parallel()

	dir := testutil.TempProject(t)
	sub := filepath.Join(dir, "src", "pkg")
	require.NoError(t, os.MkdirAll(sub, 0755))

	root, err := project.FindRootWithin(sub, filepath.Dir(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindRootWithin_GitDirMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	sub := filepath.Join(dir, "deep", "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))

	root, err := project.FindRootWithin(sub, filepath.Dir(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestFindRootWithin_GitFileIsNotMarker(t *testing.T) {
	t.Parallel()

	// worktree의 .git은 파일이다 — 루트 마커는 디렉토리만 인정
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: elsewhere\n"), 0644))

	_, err := project.FindRootWithin(dir, filepath.Dir(dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrNoProject)
}

func TestFindRootWithin_NoMarker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	_, err := project.FindRootWithin(sub, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrNoProject)
}

func TestFindRootWithin_BoundaryItselfIsNotRoot(t *testing.T) {
	t.Parallel()

	// 경계 디렉토리에 마커가 있어도 루트로 인정하지 않는다
	dir := testutil.TempProject(t)

	_, err := project.FindRootWithin(dir, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrNoProject)
}

func TestDetect_ManagerFromLockfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		manager string
	}{
		{"poetry"},
		{"uv"},
		{"pipenv"},
	}

	for _, tt := range tests {
		t.Run(tt.manager, func(t *testing.T) {
			t.Parallel()

			dir := testutil.TempProjectWithLock(t, tt.manager)
			assert.Equal(t, tt.manager, project.DetectManager(dir))
		})
	}
}

func TestDetectManager_NoLockfile(t *testing.T) {
	t.Parallel()

	dir := testutil.TempProject(t)
	assert.Equal(t, "", project.DetectManager(dir))
}

func TestDetectManager_PoetryWinsOverPipenv(t *testing.T) {
	t.Parallel()

	dir := testutil.TempProjectWithLock(t, "poetry")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Pipfile"), []byte("# pipfile\n"), 0644))

	assert.Equal(t, "poetry", project.DetectManager(dir))
}

func TestLockHash_ChangesWithLockfile(t *testing.T) {
	t.Parallel()

	dir := testutil.TempProjectWithLock(t, "poetry")
	before := project.LockHash(dir, "poetry")
	require.NotEmpty(t, before)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "poetry.lock"), []byte("# changed\n"), 0644))
	after := project.LockHash(dir, "poetry")

	assert.NotEqual(t, before, after)
}

func TestLockHash_FallsBackToPyproject(t *testing.T) {
	t.Parallel()

	dir := testutil.TempProject(t)
	assert.NotEmpty(t, project.LockHash(dir, "poetry"))
}

func TestLockHash_NoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, project.LockHash(dir, "poetry"))
}
