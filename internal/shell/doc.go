// Package shell renders environment mutation plans as eval-able shell code.
// pyctx never mutates its own process environment; it decides which mutations
// are needed, renders them for the target shell (zsh, bash, fish), and the
// sourcing shell applies them. It also generates the shell hook snippets
// (chpwd for Zsh, PROMPT_COMMAND for Bash, --on-variable for Fish) that call
// pyctx activate on directory change.
package shell
