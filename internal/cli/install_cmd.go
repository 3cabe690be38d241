package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/activator"
	"github.com/hbjs97/pyctx/internal/cache"
	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/project"
)

func (a *App) newInstallCmd() *cobra.Command {
	var managerFlag string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "현재 프로젝트의 의존성을 설치한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstall(cmd.Context(), cmd.OutOrStdout(), managerFlag)
		},
	}
	cmd.Flags().StringVarP(&managerFlag, "manager", "m", "", "사용할 패키지 매니저 (poetry, uv, pipenv)")
	return cmd
}

func (a *App) runInstall(ctx context.Context, stdout io.Writer, managerFlag string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.install: %w", err)
	}

	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return err
	}

	proj, err := project.Detect(cwd)
	if err != nil {
		return err
	}

	adapter := pkgmgr.NewAdapter(a.Commander)
	act := &activator.Activator{Config: cfg, Managers: adapter}
	manager, err := act.ResolveManager(proj, managerFlag)
	if err != nil {
		return err
	}

	out, err := adapter.Install(ctx, manager, proj.Root)
	if err != nil {
		return err
	}
	if len(out) > 0 {
		fmt.Fprint(stdout, string(out))
	}

	// 설치로 환경이 재생성되었을 수 있으므로 캐시를 갱신한다
	c, _ := cache.Load(a.CachePath) // 캐시 로드 실패 시 빈 캐시 사용
	c.Invalidate(proj.Root)
	if envPath, err := adapter.EnvPath(ctx, manager, proj.Root); err == nil && envPath != "" {
		c.Set(proj.Root, cache.Entry{
			EnvPath:    envPath,
			Manager:    manager,
			ResolvedAt: time.Now().Format(time.RFC3339),
			LockHash:   fmt.Sprintf("%s:%s", project.LockHash(proj.Root, manager), cfg.ConfigHash()),
		})
		fmt.Fprintf(stdout, "설치 완료: %s → %s\n", manager, envPath)
	} else {
		fmt.Fprintf(stdout, "설치 완료: %s\n", manager)
	}
	_ = c.Save(a.CachePath) // 캐시 저장 실패는 치명적이지 않음

	return nil
}
