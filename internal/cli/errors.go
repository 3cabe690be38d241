package cli

import (
	"github.com/hbjs97/pyctx/internal/config"
	"github.com/hbjs97/pyctx/internal/pkgmgr"
	"github.com/hbjs97/pyctx/internal/project"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrInstall는 의존성 설치 실패 sentinel error다.
	ErrInstall = pkgmgr.ErrInstall
	// ErrNoProject는 프로젝트 루트를 찾지 못했을 때의 sentinel error다.
	ErrNoProject = project.ErrNoProject
	// ErrUnknownManager는 지원하지 않는 매니저 이름일 때의 sentinel error다.
	ErrUnknownManager = pkgmgr.ErrUnknownManager
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)
