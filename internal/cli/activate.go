package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/activator"
	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/project"
	"github.com/hbjs97/pyctx/internal/shell"
)

func (a *App) newActivateCmd() *cobra.Command {
	var shellType string
	var managerFlag string
	var hookOnly bool
	var noInstall bool

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "현재 프로젝트의 가상환경을 활성화하는 셸 코드를 출력한다",
		Long: `현재 디렉토리의 프로젝트 환경을 판정하고, eval 가능한 셸 코드를 출력한다.
환경이 없으면 패키지 매니저 install을 수행한 뒤 다시 판정한다.
출력은 stdout으로만 나가며 셸 hook이 eval로 적용한다.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hookOnly {
				st := shellType
				if st == "" {
					cfg, err := config.LoadOrDefault(a.CfgPath)
					if err != nil {
						return err
					}
					st = cfg.Shell
				}
				fmt.Fprint(cmd.OutOrStdout(), shell.HookSnippet(st))
				return nil
			}
			return a.runActivate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), shellType, managerFlag, noInstall)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "", "셸 유형 (bash, zsh, fish). 기본값은 설정 파일")
	cmd.Flags().StringVarP(&managerFlag, "manager", "m", "", "사용할 패키지 매니저 (poetry, uv, pipenv)")
	cmd.Flags().BoolVar(&hookOnly, "hook", false, "hook 스니펫만 출력")
	cmd.Flags().BoolVar(&noInstall, "no-install", false, "환경이 없어도 설치하지 않음")
	return cmd
}

func (a *App) runActivate(ctx context.Context, stdout, stderr io.Writer, shellType, managerFlag string, noInstall bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.activate: %w", err)
	}

	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return err
	}
	if shellType == "" {
		shellType = cfg.Shell
	}

	proj, err := project.Detect(cwd)
	if errors.Is(err, project.ErrNoProject) {
		// 프로젝트 밖: 활성화된 환경이 있으면 best-effort 해제
		plan := &shell.Plan{}
		plan.Deactivate()
		fmt.Fprint(stdout, shell.Render(plan, shellType))
		return nil
	}
	if err != nil {
		return err
	}

	c, _ := cache.Load(a.CachePath) // 캐시 로드 실패 시 빈 캐시 사용

	act := &activator.Activator{
		Config:   cfg,
		Managers: pkgmgr.NewAdapter(a.Commander),
		Cache:    c,
	}

	res, err := act.Resolve(ctx, proj, activator.Options{
		Manager:   managerFlag,
		NoInstall: noInstall,
	})
	if err != nil {
		// 설치 실패 등: stdout은 비운 채 종료해야 셸 환경이 변하지 않는다
		return err
	}

	if res.Installed {
		fmt.Fprintf(stderr, "pyctx: %s 의존성 설치 완료\n", res.Manager)
	}

	plan := act.BuildPlan(proj, res)
	fmt.Fprint(stdout, shell.Render(plan, shellType))

	_ = c.Save(a.CachePath) // 캐시 저장 실패는 치명적이지 않음
	return nil
}
