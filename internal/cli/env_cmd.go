package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/activator"
	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/project"
)

func (a *App) newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "현재 프로젝트의 환경 경로를 출력한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEnv(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// runEnv는 환경 경로만 출력한다. 스크립트에서 사용하기 위한 명령이므로
// 설치는 수행하지 않고, 환경이 없으면 에러로 종료한다.
func (a *App) runEnv(ctx context.Context, stdout io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.env: %w", err)
	}

	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return err
	}

	proj, err := project.Detect(cwd)
	if err != nil {
		return err
	}

	c, _ := cache.Load(a.CachePath) // 캐시 로드 실패 시 빈 캐시 사용
	act := &activator.Activator{Config: cfg, Managers: pkgmgr.NewAdapter(a.Commander), Cache: c}

	res, err := act.Resolve(ctx, proj, activator.Options{NoInstall: true})
	if err != nil {
		return err
	}
	if res.EnvPath == "" {
		return fmt.Errorf("cli.env: 환경 미제공 상태: pyctx install을 실행하세요")
	}

	fmt.Fprintln(stdout, res.EnvPath)
	return nil
}
