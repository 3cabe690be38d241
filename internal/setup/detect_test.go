package setup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, "zsh", DetectShell())

	t.Setenv("SHELL", "/bin/bash")
	assert.Equal(t, "bash", DetectShell())
}

func TestShellRCPath(t *testing.T) {
	assert.Equal(t, ".zshrc", filepath.Base(ShellRCPath("zsh")))
	assert.Equal(t, ".bashrc", filepath.Base(ShellRCPath("bash")))
	assert.Equal(t, "pyctx.fish", filepath.Base(ShellRCPath("fish")))
	assert.Empty(t, ShellRCPath("powershell"))
}
