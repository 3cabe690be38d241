package setup

// Input은 초기 설정에서 수집하는 사용자 입력 값이다.
type Input struct {
	// Manager는 기본 패키지 매니저 이름이다.
	Manager string
	// Shell은 hook을 설치할 셸 유형이다 (bash, zsh, fish).
	Shell string
	// InstallHook은 RC 파일에 hook을 설치할지 여부다.
	InstallHook bool
}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunSetupForm은 초기 설정 폼을 실행한다.
	// defaults가 nil이 아니면 기존 값을 기본값으로 표시한다 (재설정 모드).
	RunSetupForm(defaults *Input) (*Input, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}
