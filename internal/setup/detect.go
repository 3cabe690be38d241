package setup

import (
	"os"
	"path/filepath"
)

// DetectShell은 현재 사용자의 셸을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	return filepath.Base(sh)
}

// ShellRCPath는 셸별 RC 파일 경로를 반환한다.
func ShellRCPath(shellType string) string {
	home, _ := os.UserHomeDir() // 홈 디렉토리 조회 실패 시 빈 문자열
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "pyctx.fish")
	default:
		return ""
	}
}
