package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/cmdexec"
)

// App은 CLI 의존성 주입 지점이다. 테스트에서는 FakeCommander와 임시 경로를 주입한다.
type App struct {
	Commander cmdexec.Commander
	CfgPath   string
	CachePath string
}

// NewApp은 기본 의존성으로 App을 생성한다.
func NewApp() *App {
	return &App{
		Commander: &cmdexec.RealCommander{},
		CfgPath:   filepath.Join(configDir(), "config.toml"),
		CachePath: filepath.Join(configDir(), "cache.json"),
	}
}

// NewRootCmd는 pyctx CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "pyctx",
		Short:        "Python 가상환경 activator",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")

	cmd.AddCommand(
		a.newActivateCmd(),
		a.newInstallCmd(),
		a.newStatusCmd(),
		a.newEnvCmd(),
		a.newDoctorCmd(),
		a.newSetupCmd(),
	)
	return cmd
}

func configDir() string {
	return filepath.Join(homeDir(), ".config", "pyctx")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return home
}
