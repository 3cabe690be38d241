package shell

import (
	"fmt"
	"strings"
)

// Op는 셸 환경 변이 연산의 종류다.
type Op string

const (
	// OpExport는 환경변수 설정이다.
	OpExport Op = "export"
	// OpUnset는 환경변수 해제다.
	OpUnset Op = "unset"
	// OpPrependPath는 PATH 앞에 디렉토리를 추가한다. 중복 제거는 하지 않는다.
	OpPrependPath Op = "prepend_path"
	// OpDeactivate는 기존 가상환경의 best-effort 해제다.
	// deactivate 함수가 없는 경우는 실패가 아니다.
	OpDeactivate Op = "deactivate"
)

// Mutation은 하나의 환경 변이다.
type Mutation struct {
	Op    Op
	Key   string
	Value string
}

// Plan은 순서가 있는 환경 변이 목록이다. activator가 결정을 채우고
// Render가 셸 코드로 변환한다.
type Plan struct {
	Mutations []Mutation
}

// Export는 환경변수 설정을 추가한다.
func (p *Plan) Export(key, value string) {
	p.Mutations = append(p.Mutations, Mutation{Op: OpExport, Key: key, Value: value})
}

// Unset는 환경변수 해제를 추가한다.
func (p *Plan) Unset(key string) {
	p.Mutations = append(p.Mutations, Mutation{Op: OpUnset, Key: key})
}

// PrependPath는 PATH 앞에 디렉토리 추가를 계획한다.
func (p *Plan) PrependPath(dir string) {
	p.Mutations = append(p.Mutations, Mutation{Op: OpPrependPath, Value: dir})
}

// Deactivate는 기존 환경의 best-effort 해제를 계획한다.
func (p *Plan) Deactivate() {
	p.Mutations = append(p.Mutations, Mutation{Op: OpDeactivate})
}

// Render는 plan을 셸별 eval 가능한 코드로 변환한다.
func Render(p *Plan, shellType string) string {
	var sb strings.Builder
	for _, m := range p.Mutations {
		sb.WriteString(renderMutation(m, shellType))
	}
	return sb.String()
}

func renderMutation(m Mutation, shellType string) string {
	switch shellType {
	case "fish":
		return renderFish(m)
	default: // bash, zsh, sh
		return renderPosix(m)
	}
}

func renderPosix(m Mutation) string {
	switch m.Op {
	case OpExport:
		return fmt.Sprintf("export %s=%q\n", m.Key, m.Value)
	case OpUnset:
		return fmt.Sprintf("unset %s\n", m.Key)
	case OpPrependPath:
		return fmt.Sprintf("export PATH=%q\n", m.Value+":$PATH")
	case OpDeactivate:
		// deactivate가 정의되지 않은 셸에서도 전체 플로우는 계속되어야 한다
		return "type deactivate >/dev/null 2>&1 && deactivate\n"
	default:
		return ""
	}
}

func renderFish(m Mutation) string {
	switch m.Op {
	case OpExport:
		return fmt.Sprintf("set -gx %s %q\n", m.Key, m.Value)
	case OpUnset:
		return fmt.Sprintf("set -e %s\n", m.Key)
	case OpPrependPath:
		return fmt.Sprintf("set -gx PATH %q $PATH\n", m.Value)
	case OpDeactivate:
		return "functions -q deactivate; and deactivate\n"
	default:
		return ""
	}
}

// HookSnippet는 셸 디렉토리 변경 hook 스니펫을 반환한다.
func HookSnippet(shellType string) string {
	switch shellType {
	case "zsh":
		return `# pyctx shell integration (zsh)
_pyctx_chpwd() {
  eval "$(pyctx activate --shell zsh 2>/dev/null)"
}
chpwd_functions+=(_pyctx_chpwd)
`
	case "bash":
		return `# pyctx shell integration (bash)
_pyctx_prompt_command() {
  eval "$(pyctx activate --shell bash 2>/dev/null)"
}
PROMPT_COMMAND="_pyctx_prompt_command;${PROMPT_COMMAND}"
`
	case "fish":
		return `# pyctx shell integration (fish)
function _pyctx_chpwd --on-variable PWD
  eval (pyctx activate --shell fish 2>/dev/null)
end
`
	default:
		return ""
	}
}
