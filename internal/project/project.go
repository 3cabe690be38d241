// Package project discovers the Python project root and its package manager.
// The root is the nearest ancestor of the working directory containing a .git
// directory or a pyproject.toml file; the search never escapes the user's
// home directory (or the filesystem root when outside it).
package project

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoProject는 프로젝트 루트를 찾지 못했을 때의 sentinel error다.
var ErrNoProject = errors.New("프로젝트 루트 없음")

// Project는 발견된 프로젝트다.
type Project struct {
	// Root는 프로젝트 루트 디렉토리의 절대 경로다.
	Root string
	// Manager는 lockfile로 감지된 패키지 매니저 이름이다. 감지 실패 시 빈 문자열.
	Manager string
}

// FindRoot는 dir에서 위로 올라가며 프로젝트 루트를 찾는다.
// 탐색 경계는 홈 디렉토리이며, dir이 홈 밖이면 파일시스템 루트다.
// 경계 디렉토리 자체는 프로젝트 루트가 될 수 없다.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("project.FindRoot: %w", err)
	}

	boundary := string(filepath.Separator)
	if home, err := os.UserHomeDir(); err == nil && isWithin(abs, home) {
		boundary = home
	}
	return FindRootWithin(abs, boundary)
}

// FindRootWithin은 boundary를 경계로 프로젝트 루트를 찾는다. 테스트용으로 노출한다.
func FindRootWithin(dir, boundary string) (string, error) {
	d := filepath.Clean(dir)
	boundary = filepath.Clean(boundary)

	for {
		if d == boundary {
			return "", fmt.Errorf("project.FindRoot: %w: %s", ErrNoProject, dir)
		}
		if isRoot(d) {
			return d, nil
		}
		parent := filepath.Dir(d)
		if parent == d || !isWithin(d, boundary) {
			return "", fmt.Errorf("project.FindRoot: %w: %s", ErrNoProject, dir)
		}
		d = parent
	}
}

// isRoot는 디렉토리가 프로젝트 루트 마커를 포함하는지 확인한다.
// .git은 디렉토리여야 하고 pyproject.toml은 파일이어야 한다.
func isRoot(dir string) bool {
	if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
		return true
	}
	if info, err := os.Stat(filepath.Join(dir, "pyproject.toml")); err == nil && !info.IsDir() {
		return true
	}
	return false
}

func isWithin(dir, parent string) bool {
	rel, err := filepath.Rel(parent, dir)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// Detect는 dir 기준으로 프로젝트 루트와 패키지 매니저를 감지한다.
func Detect(dir string) (*Project, error) {
	root, err := FindRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Project{Root: root, Manager: DetectManager(root)}, nil
}

// lockfiles는 매니저별 lockfile 이름이다. 순서가 감지 우선순위다.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"poetry.lock", "poetry"},
	{"uv.lock", "uv"},
	{"Pipfile", "pipenv"},
}

// DetectManager는 루트의 lockfile로 패키지 매니저를 감지한다.
func DetectManager(root string) string {
	for _, lf := range lockfiles {
		if info, err := os.Stat(filepath.Join(root, lf.file)); err == nil && !info.IsDir() {
			return lf.manager
		}
	}
	return ""
}

// LockHash는 매니저 lockfile 내용의 해시를 반환한다. lockfile이 없으면
// pyproject.toml로 대체하고, 그것도 없으면 빈 문자열을 반환한다.
// 캐시된 환경 경로의 유효성 판정에 사용된다.
func LockHash(root, manager string) string {
	candidates := []string{"pyproject.toml"}
	for _, lf := range lockfiles {
		if lf.manager == manager {
			candidates = []string{lf.file, "pyproject.toml"}
			break
		}
	}

	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		sum := sha256.Sum256(data)
		return fmt.Sprintf("%x", sum[:8])
	}
	return ""
}
