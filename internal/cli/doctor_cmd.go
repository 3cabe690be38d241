package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/doctor"
	"github.com/hbjs97/pyctx/internal/project"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		fmt.Fprintf(stdout, "[%s] config: %v\n", colorize(styleFail, "FAIL"), err)
		fmt.Fprintln(stdout, "      Fix: pyctx setup 실행 또는 설정 파일 확인")
		cfg = config.Default()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.doctor: %w", err)
	}

	root := ""
	manager := cfg.DefaultManager
	if proj, err := project.Detect(cwd); err == nil {
		root = proj.Root
		if proj.Manager != "" {
			manager = proj.Manager
		}
	}

	results := doctor.RunAll(ctx, a.Commander, root, manager)
	printDiagResults(stdout, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(w, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return colorize(styleOK, "OK")
	case doctor.StatusWarn:
		return colorize(styleWarn, "!!")
	case doctor.StatusFail:
		return colorize(styleFail, "FAIL")
	default:
		return "??"
	}
}
