package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/pyctx/internal/cmdexec"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckBinaries는 필수 바이너리(python3, 패키지 매니저) 존재 여부를 확인한다.
func CheckBinaries(ctx context.Context, cmd cmdexec.Commander, manager string) []DiagResult {
	binaries := []struct {
		name    string
		args    []string
		install string
	}{
		{"python3", []string{"--version"}, "https://www.python.org/downloads/"},
		{pkgmgr.Binary(manager), []string{"--version"}, fmt.Sprintf("%s 설치 문서를 확인하세요", manager)},
	}

	var results []DiagResult
	for _, b := range binaries {
		out, err := cmd.Run(ctx, ".", b.name, b.args...)
		if err != nil {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s 없음", b.name),
				Fix:     fmt.Sprintf("설치: %s", b.install),
			})
		} else {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusOK,
				Message: strings.TrimSpace(string(out)),
			})
		}
	}
	return results
}

// CheckProject는 프로젝트 마커와 lockfile 상태를 확인한다.
func CheckProject(root, manager string) DiagResult {
	if root == "" {
		return DiagResult{
			Name:    "project",
			Status:  StatusFail,
			Message: "프로젝트 루트 없음",
			Fix:     "pyproject.toml이 있는 디렉토리에서 실행하세요",
		}
	}
	if manager == "" {
		return DiagResult{
			Name:    "project",
			Status:  StatusWarn,
			Message: fmt.Sprintf("lockfile 없음: %s — 설정 기본 매니저를 사용합니다", root),
			Fix:     "매니저로 lock을 생성하세요 (예: poetry lock)",
		}
	}
	return DiagResult{
		Name:    "project",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%s)", root, manager),
	}
}

// CheckEnv는 매니저가 보고하는 환경 상태를 확인한다.
func CheckEnv(ctx context.Context, adapter *pkgmgr.Adapter, manager, root string) DiagResult {
	envPath, err := adapter.EnvPath(ctx, manager, root)
	if err != nil {
		return DiagResult{
			Name:    "env",
			Status:  StatusFail,
			Message: err.Error(),
		}
	}
	if envPath == "" {
		return DiagResult{
			Name:    "env",
			Status:  StatusWarn,
			Message: "환경 미제공 상태",
			Fix:     "pyctx install 실행",
		}
	}
	if info, err := os.Stat(envPath); err != nil || !info.IsDir() {
		return DiagResult{
			Name:    "env",
			Status:  StatusFail,
			Message: fmt.Sprintf("매니저가 보고한 경로가 존재하지 않음: %s", envPath),
			Fix:     "pyctx install 실행",
		}
	}
	if _, err := os.Stat(filepath.Join(envPath, "bin", "activate")); err != nil {
		return DiagResult{
			Name:    "env",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s: activation 스크립트 없음", envPath),
		}
	}
	return DiagResult{
		Name:    "env",
		Status:  StatusOK,
		Message: envPath,
	}
}

// CheckActiveInterference는 VIRTUAL_ENV 간섭을 확인한다. 다른 프로젝트의
// 환경이 활성화된 채면 매니저 질의가 오염될 수 있다.
func CheckActiveInterference(resolvedEnvPath string) DiagResult {
	active, found := pkgmgr.DetectActiveInterference()
	if !found {
		return DiagResult{
			Name:    "virtual_env",
			Status:  StatusOK,
			Message: "활성 환경 없음",
		}
	}
	if resolvedEnvPath != "" && active == resolvedEnvPath {
		return DiagResult{
			Name:    "virtual_env",
			Status:  StatusOK,
			Message: fmt.Sprintf("프로젝트 환경 활성화됨: %s", active),
		}
	}
	return DiagResult{
		Name:    "virtual_env",
		Status:  StatusWarn,
		Message: fmt.Sprintf("다른 환경이 활성화됨: %s", active),
		Fix:     "deactivate 실행 또는 pyctx activate 재평가",
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, root, manager string) []DiagResult {
	var results []DiagResult
	results = append(results, CheckBinaries(ctx, cmd, manager)...)
	results = append(results, CheckProject(root, manager))

	adapter := pkgmgr.NewAdapter(cmd)
	envResult := CheckEnv(ctx, adapter, manager, root)
	results = append(results, envResult)

	resolved := ""
	if envResult.Status == StatusOK {
		resolved = envResult.Message
	}
	results = append(results, CheckActiveInterference(resolved))
	return results
}
