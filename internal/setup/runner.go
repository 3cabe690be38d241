package setup

import (
	"fmt"
	"os"

	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/config"
)

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	CfgPath    string
	CachePath  string
	FormRunner FormRunner
	RCPath     string // 테스트용. 비어있으면 셸별 기본 경로.
}

// Run은 setup 플로우를 실행한다. 설정 파일이 이미 있으면 기존 값을
// 기본값으로 하는 재설정 모드로 동작한다.
func (r *Runner) Run() error {
	_, err := os.Stat(r.CfgPath)
	if os.IsNotExist(err) {
		return r.runFirstTime()
	}
	if err != nil {
		return fmt.Errorf("setup.Run: %w", err)
	}
	return r.runExisting()
}

func (r *Runner) runFirstTime() error {
	fmt.Println("pyctx 초기 설정을 시작합니다.")

	input, err := r.FormRunner.RunSetupForm(nil)
	if err != nil {
		return fmt.Errorf("setup.Run: %w", err)
	}

	return r.apply(input, "")
}

func (r *Runner) runExisting() error {
	existing, err := config.Load(r.CfgPath)
	if err != nil {
		return err
	}

	ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("설정 파일이 이미 존재합니다: %s. 다시 설정할까요?", r.CfgPath))
	if err != nil {
		return fmt.Errorf("setup.Run: %w", err)
	}
	if !ok {
		return nil
	}

	defaults := &Input{
		Manager:     existing.DefaultManager,
		Shell:       existing.Shell,
		InstallHook: true,
	}
	input, err := r.FormRunner.RunSetupForm(defaults)
	if err != nil {
		return fmt.Errorf("setup.Run: %w", err)
	}

	return r.apply(input, existing.DefaultManager)
}

func (r *Runner) apply(input *Input, previousManager string) error {
	cfg := config.Default()
	cfg.DefaultManager = input.Manager
	cfg.Shell = input.Shell

	if err := config.Save(r.CfgPath, cfg); err != nil {
		return err
	}
	fmt.Printf("설정 파일이 생성되었습니다: %s\n", r.CfgPath)

	// 기본 매니저가 바뀌면 이전 매니저로 판정된 캐시가 stale해진다
	if previousManager != "" && previousManager != input.Manager && r.CachePath != "" {
		c, _ := cache.Load(r.CachePath) // 캐시 로드 실패 시 빈 캐시 사용
		c.InvalidateByManager(previousManager)
		_ = c.Save(r.CachePath) // 캐시 저장 실패는 치명적이지 않음
	}

	if input.InstallHook {
		rcPath := r.RCPath
		if rcPath == "" {
			rcPath = ShellRCPath(input.Shell)
		}
		if rcPath == "" {
			return fmt.Errorf("setup.Run: 지원하지 않는 셸: %s", input.Shell)
		}
		if err := InstallShellHook(input.Shell, rcPath); err != nil {
			return err
		}
		fmt.Printf("셸 hook이 설치되었습니다: %s\n", rcPath)
		fmt.Println("새 셸을 열거나 RC 파일을 다시 source 하세요.")
	} else {
		fmt.Println("hook 설치를 건너뛰었습니다. 'pyctx activate --hook' 출력으로 직접 설치할 수 있습니다.")
	}

	return nil
}
