package cli

import (
	"errors"
)

// ExitCode는 pyctx의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitInstallFail는 의존성 설치 실패다.
	ExitInstallFail ExitCode = 2
	// ExitNoProject는 프로젝트 루트 부재다.
	ExitNoProject ExitCode = 3
	// ExitUnknownManager는 지원하지 않는 매니저 지정이다.
	ExitUnknownManager ExitCode = 4
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrInstall):
		return ExitInstallFail
	case errors.Is(err, ErrNoProject):
		return ExitNoProject
	case errors.Is(err, ErrUnknownManager):
		return ExitUnknownManager
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
