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

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "현재 프로젝트의 환경 상태를 표시한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runStatus(ctx context.Context, stdout io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}

	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return err
	}

	proj, err := project.Detect(cwd)
	if err != nil {
		fmt.Fprintln(stdout, "프로젝트 루트가 없습니다. pyproject.toml이 있는 디렉토리에서 실행하세요.")
		return nil
	}

	c, _ := cache.Load(a.CachePath) // 캐시 로드 실패 시 빈 캐시 사용
	act := &activator.Activator{Config: cfg, Managers: pkgmgr.NewAdapter(a.Commander), Cache: c}

	manager, err := act.ResolveManager(proj, "")
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "프로젝트: %s\n", proj.Root)
	fmt.Fprintf(stdout, "  매니저:   %s\n", manager)

	res, err := act.Resolve(ctx, proj, activator.Options{NoInstall: true})
	if err != nil {
		return err
	}

	if res.EnvPath == "" {
		fmt.Fprintf(stdout, "  환경:     %s\n", colorize(styleWarn, "미제공 (pyctx install 필요)"))
		return nil
	}

	fmt.Fprintf(stdout, "  환경:     %s %s\n", res.EnvPath, colorize(styleDim, "("+res.Reason+")"))

	if active, found := pkgmgr.DetectActiveInterference(); found && active == res.EnvPath {
		fmt.Fprintf(stdout, "  상태:     %s\n", colorize(styleOK, "활성화됨"))
	} else {
		fmt.Fprintf(stdout, "  상태:     %s\n", colorize(styleDim, "비활성"))
	}
	return nil
}
