package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/setup"
)

func (a *App) newSetupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "pyctx 초기 설정을 시작한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일을 삭제하고 처음부터 설정")
	return cmd
}

func (a *App) runSetup(force bool) error {
	if force {
		if err := os.Remove(a.CfgPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("cli.setup: 기존 설정 파일 삭제 실패: %w", err)
		}
	}

	runner := &setup.Runner{
		CfgPath:    a.CfgPath,
		CachePath:  a.CachePath,
		FormRunner: &setup.HuhFormRunner{},
	}
	return runner.Run()
}
