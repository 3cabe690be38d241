// Package activator implements the environment resolution pipeline: cache
// lookup, package manager query, install-if-missing, and the resulting
// shell mutation plan.
package activator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/project"
	"github.com/hbjs97/pyctx/internal/shell"
)

// Options는 Resolve 동작 옵션이다.
type Options struct {
	// Manager는 명시적으로 지정된 매니저 이름이다. 빈 문자열이면
	// lockfile 감지 → 설정 기본값 순으로 판정한다.
	Manager string
	// NoInstall이 true면 환경이 없어도 설치를 수행하지 않는다.
	NoInstall bool
}

// Result는 환경 판정 결과다.
type Result struct {
	// EnvPath는 판정된 환경 경로다. 빈 문자열이면 환경 미제공 상태다.
	EnvPath string
	// Manager는 사용된 매니저 이름이다.
	Manager string
	// Installed는 이번 판정에서 설치가 수행되었는지 여부다.
	Installed bool
	// Reason은 판정 경로다. "cache", "query", "install", "none" 중 하나.
	Reason string
	// InstallOutput은 설치가 수행된 경우 매니저의 출력이다.
	InstallOutput []byte
}

// Activator는 환경 판정과 변이 plan 생성의 진입점이다.
type Activator struct {
	Config   *config.Config
	Managers *pkgmgr.Adapter
	Cache    *cache.Cache
}

// ResolveManager는 매니저 이름을 판정한다: 명시 플래그 → lockfile 감지 →
// 설정 기본값. 판정된 이름이 지원 대상이 아니면 에러를 반환한다.
func (a *Activator) ResolveManager(proj *project.Project, explicit string) (string, error) {
	manager := explicit
	if manager == "" {
		manager = proj.Manager
	}
	if manager == "" {
		manager = a.Config.DefaultManager
	}
	if err := pkgmgr.Validate(manager); err != nil {
		return "", err
	}
	return manager, nil
}

// Resolve는 프로젝트의 환경 경로를 판정한다. 환경이 없고 설치가 허용되면
// 매니저 install을 수행한 뒤 재질의한다. 설치 에러는 그대로 전파되며,
// 설치 후에도 환경이 없으면 에러 없이 빈 EnvPath를 반환한다.
func (a *Activator) Resolve(ctx context.Context, proj *project.Project, opts Options) (*Result, error) {
	manager, err := a.ResolveManager(proj, opts.Manager)
	if err != nil {
		return nil, err
	}

	lockHash := a.cacheHash(proj, manager)

	// Step 1: 캐시 조회
	if entry, ok := a.Cache.Lookup(proj.Root, lockHash, a.Config.TTLDays()); ok {
		return &Result{EnvPath: entry.EnvPath, Manager: manager, Reason: "cache"}, nil
	}

	// Step 2: 매니저 질의
	envPath, err := a.Managers.EnvPath(ctx, manager, proj.Root)
	if err != nil {
		return nil, fmt.Errorf("activator.Resolve: %w", err)
	}
	if envPath != "" {
		a.remember(proj.Root, manager, envPath, lockHash)
		return &Result{EnvPath: envPath, Manager: manager, Reason: "query"}, nil
	}

	if opts.NoInstall || !a.Config.IsAutoInstall() {
		return &Result{Manager: manager, Reason: "none"}, nil
	}

	// Step 3: 설치 후 재질의
	out, err := a.Managers.Install(ctx, manager, proj.Root)
	if err != nil {
		return nil, err
	}

	envPath, err = a.Managers.EnvPath(ctx, manager, proj.Root)
	if err != nil {
		return nil, fmt.Errorf("activator.Resolve: %w", err)
	}
	if envPath == "" {
		// 설치 성공 후에도 환경 미보고: 에러가 아닌 무활성화로 종결
		return &Result{Manager: manager, Installed: true, Reason: "none", InstallOutput: out}, nil
	}

	a.remember(proj.Root, manager, envPath, lockHash)
	return &Result{EnvPath: envPath, Manager: manager, Installed: true, Reason: "install", InstallOutput: out}, nil
}

// BuildPlan은 판정 결과를 셸 변이 plan으로 변환한다. 프롬프트 억제와
// 프로젝트 로컬 bin 추가는 환경 유무와 무관하게 수행되고, 활성화 변이는
// EnvPath가 비어있지 않을 때만 추가된다.
func (a *Activator) BuildPlan(proj *project.Project, res *Result) *shell.Plan {
	plan := &shell.Plan{}

	if a.Config.IsSuppressPrompt() {
		plan.Export("VIRTUAL_ENV_DISABLE_PROMPT", "1")
	}

	// 디렉토리 존재 여부와 무관하게 추가한다. 중복 제거도 하지 않는다.
	plan.PrependPath(filepath.Join(proj.Root, a.Config.LocalBinDir))

	if res.EnvPath == "" {
		return plan
	}

	plan.Deactivate()
	plan.Export("VIRTUAL_ENV", res.EnvPath)
	plan.PrependPath(filepath.Join(res.EnvPath, "bin"))

	if a.Config.IsLoadDotenv() {
		a.appendDotenv(plan, proj.Root)
	}

	return plan
}

// appendDotenv는 프로젝트의 .env 파일을 export 변이로 추가한다.
// 파일이 없거나 파싱에 실패하면 조용히 건너뛴다.
func (a *Activator) appendDotenv(plan *shell.Plan, root string) {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		plan.Export(k, vars[k])
	}
}

func (a *Activator) cacheHash(proj *project.Project, manager string) string {
	return fmt.Sprintf("%s:%s", project.LockHash(proj.Root, manager), a.Config.ConfigHash())
}

func (a *Activator) remember(root, manager, envPath, lockHash string) {
	a.Cache.Set(root, cache.Entry{
		EnvPath:    envPath,
		Manager:    manager,
		ResolvedAt: time.Now().Format(time.RFC3339),
		LockHash:   lockHash,
	})
}
