// Package pkgmgr drives Python package managers (poetry, uv, pipenv) through
// the Commander interface. It exposes the two operations the activator needs:
// "report the environment path" and "install declared dependencies".
package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/pyctx/internal/cmdexec"
)

// ErrUnknownManager는 지원하지 않는 매니저 이름일 때의 sentinel error다.
var ErrUnknownManager = errors.New("지원하지 않는 패키지 매니저")

// ErrInstall는 의존성 설치 실패 sentinel error다.
var ErrInstall = errors.New("의존성 설치 실패")

// managerSpec은 매니저별 명령 사양이다.
type managerSpec struct {
	binary      string
	queryArgs   []string // 환경 경로 질의. 비어있으면 venvDir로 판정.
	installArgs []string
	venvDir     string // 프로젝트 내 고정 venv 디렉토리 (uv)
}

var specs = map[string]managerSpec{
	"poetry": {
		binary:      "poetry",
		queryArgs:   []string{"env", "info", "--path"},
		installArgs: []string{"install"},
	},
	"uv": {
		binary:      "uv",
		installArgs: []string{"sync"},
		venvDir:     ".venv",
	},
	"pipenv": {
		binary:      "pipenv",
		queryArgs:   []string{"--venv"},
		installArgs: []string{"install"},
	},
}

// Supported는 지원 매니저 이름 목록을 정렬된 순서로 반환한다.
func Supported() []string {
	return []string{"pipenv", "poetry", "uv"}
}

// Validate는 매니저 이름이 지원 대상인지 확인한다.
func Validate(manager string) error {
	if _, ok := specs[manager]; !ok {
		return fmt.Errorf("pkgmgr.Validate: %w: %s", ErrUnknownManager, manager)
	}
	return nil
}

// Binary는 매니저 실행 바이너리 이름을 반환한다. doctor에서 사용한다.
func Binary(manager string) string {
	return specs[manager].binary
}

// Adapter는 패키지 매니저 CLI를 Commander를 통해 실행한다.
type Adapter struct {
	cmd cmdexec.Commander
}

// NewAdapter는 새 Adapter를 생성한다.
func NewAdapter(cmd cmdexec.Commander) *Adapter {
	return &Adapter{cmd: cmd}
}

// EnvPath는 매니저에게 환경 경로를 질의한다. 환경이 아직 없으면 빈 문자열을
// 반환하며 이는 에러가 아니다. 매니저의 비정상 종료도 "환경 없음"으로
// 취급한다 (poetry는 환경 부재 시 exit 1을 반환한다).
func (a *Adapter) EnvPath(ctx context.Context, manager, root string) (string, error) {
	spec, ok := specs[manager]
	if !ok {
		return "", fmt.Errorf("pkgmgr.EnvPath: %w: %s", ErrUnknownManager, manager)
	}

	if spec.venvDir != "" {
		venv := filepath.Join(root, spec.venvDir)
		if info, err := os.Stat(venv); err == nil && info.IsDir() {
			return venv, nil
		}
		return "", nil
	}

	out, err := a.cmd.Output(ctx, root, SuppressActiveEnv(), spec.binary, spec.queryArgs...)
	if err != nil {
		return "", nil
	}
	path := strings.TrimSpace(string(out))
	// 복수 라인 출력 방어: 첫 라인만 경로다
	if idx := strings.IndexByte(path, '\n'); idx >= 0 {
		path = strings.TrimSpace(path[:idx])
	}
	return path, nil
}

// Install은 선언된 의존성을 설치한다. 환경이 없으면 매니저가 생성한다.
// 실패 시 매니저 출력이 포함된 에러를 반환한다.
func (a *Adapter) Install(ctx context.Context, manager, root string) ([]byte, error) {
	spec, ok := specs[manager]
	if !ok {
		return nil, fmt.Errorf("pkgmgr.Install: %w: %s", ErrUnknownManager, manager)
	}

	out, err := a.cmd.Run(ctx, root, spec.binary, spec.installArgs...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return out, fmt.Errorf("pkgmgr.Install: %w: %s: %v\n%s", ErrInstall, manager, err, msg)
		}
		return out, fmt.Errorf("pkgmgr.Install: %w: %s: %v", ErrInstall, manager, err)
	}
	return out, nil
}

// SuppressActiveEnv는 현재 셸에 활성화된 가상환경 변수를 억제하기 위한
// env 맵을 반환한다. VIRTUAL_ENV가 설정된 채로 질의하면 poetry가 프로젝트
// 소유 환경 대신 활성 환경을 보고한다.
func SuppressActiveEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range []string{"VIRTUAL_ENV", "PYTHONHOME"} {
		if os.Getenv(key) != "" {
			env[key] = ""
		}
	}
	return env
}

// DetectActiveInterference는 VIRTUAL_ENV 환경변수를 감지한다.
func DetectActiveInterference() (string, bool) {
	if v := os.Getenv("VIRTUAL_ENV"); v != "" {
		return v, true
	}
	return "", false
}
