package doctor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbjs97/pyctx/internal/doctor"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/testutil"
)

func TestCheckBinaries_AllPresent(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("python3 --version", "Python 3.12.1", nil)
	fake.Register("poetry --version", "Poetry (version 1.8.2)", nil)

	results := doctor.CheckBinaries(context.Background(), fake, "poetry")
	for _, r := range results {
		assert.Equal(t, doctor.StatusOK, r.Status, "check %s should be OK", r.Name)
	}
}

func TestCheckBinaries_ManagerMissing(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("python3 --version", "Python 3.12.1", nil)
	fake.Register("poetry --version", "", fmt.Errorf("not found"))

	results := doctor.CheckBinaries(context.Background(), fake, "poetry")
	var poetryResult *doctor.DiagResult
	for _, r := range results {
		if r.Name == "poetry" {
			poetryResult = &r
			break
		}
	}
	require.NotNil(t, poetryResult)
	assert.Equal(t, doctor.StatusFail, poetryResult.Status)
	assert.NotEmpty(t, poetryResult.Fix)
}

func TestCheckProject_NoRoot(t *testing.T) {
	result := doctor.CheckProject("", "poetry")
	assert.Equal(t, doctor.StatusFail, result.Status)
}

func TestCheckProject_NoLockfile(t *testing.T) {
	result := doctor.CheckProject("/home/user/proj", "")
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Fix, "lock")
}

func TestCheckProject_OK(t *testing.T) {
	result := doctor.CheckProject("/home/user/proj", "poetry")
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Contains(t, result.Message, "poetry")
}

func TestCheckEnv_NotProvisioned(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("poetry env info --path", "", fmt.Errorf("exit status 1"))

	result := doctor.CheckEnv(context.Background(), pkgmgr.NewAdapter(fake), "poetry", "/home/user/proj")
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Fix, "pyctx install")
}

func TestCheckEnv_ReportedPathMissing(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("poetry env info --path", "/nonexistent/envs/proj-abc123\n", nil)

	result := doctor.CheckEnv(context.Background(), pkgmgr.NewAdapter(fake), "poetry", "/home/user/proj")
	assert.Equal(t, doctor.StatusFail, result.Status)
}

func TestCheckEnv_OK(t *testing.T) {
	envDir := testutil.WriteVenvDir(t, t.TempDir(), "proj-abc123")

	fake := testutil.NewFakeCommander()
	fake.Register("poetry env info --path", envDir+"\n", nil)

	result := doctor.CheckEnv(context.Background(), pkgmgr.NewAdapter(fake), "poetry", "/home/user/proj")
	assert.Equal(t, doctor.StatusOK, result.Status)
	assert.Equal(t, envDir, result.Message)
}

func TestCheckActiveInterference_NothingActive(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "")

	result := doctor.CheckActiveInterference("/tmp/envs/proj-abc123")
	assert.Equal(t, doctor.StatusOK, result.Status)
}

func TestCheckActiveInterference_ProjectEnvActive(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "/tmp/envs/proj-abc123")

	result := doctor.CheckActiveInterference("/tmp/envs/proj-abc123")
	assert.Equal(t, doctor.StatusOK, result.Status)
}

func TestCheckActiveInterference_ForeignEnvActive(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "/tmp/envs/other-project")

	result := doctor.CheckActiveInterference("/tmp/envs/proj-abc123")
	assert.Equal(t, doctor.StatusWarn, result.Status)
	assert.Contains(t, result.Message, "/tmp/envs/other-project")
}
