package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/pyctx/internal/shell"
)

// InstallShellHook은 셸 RC 파일에 pyctx hook을 추가한다.
// 이미 설치되어 있으면 건너뛴다.
func InstallShellHook(shellType, rcPath string) error {
	snippet := shell.HookSnippet(shellType)
	if snippet == "" {
		return fmt.Errorf("setup.InstallShellHook: 지원하지 않는 셸: %s", shellType)
	}

	existing, _ := os.ReadFile(rcPath) // 파일이 없으면 빈 바이트
	if strings.Contains(string(existing), "pyctx shell integration") {
		return nil // 이미 설치됨
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0755); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", snippet); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	return nil
}
