package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleDim  = lipgloss.NewStyle().Faint(true)
)

// stdoutIsTTY는 stdout이 터미널인지 확인한다. activate 출력은 eval되므로
// 색상은 사람이 읽는 명령에서만 사용한다.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// colorize는 TTY일 때만 스타일을 적용한다.
func colorize(style lipgloss.Style, s string) string {
	if !stdoutIsTTY() {
		return s
	}
	return style.Render(s)
}
