package setup

import (
	"github.com/charmbracelet/huh"

	"github.com/hbjs97/pyctx/internal/pkgmgr"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

// RunSetupForm은 초기 설정 폼을 실행한다.
func (h *HuhFormRunner) RunSetupForm(defaults *Input) (*Input, error) {
	input := &Input{
		Manager:     "poetry",
		Shell:       DetectShell(),
		InstallHook: true,
	}
	if defaults != nil {
		*input = *defaults
	}

	var managerOptions []huh.Option[string]
	for _, name := range pkgmgr.Supported() {
		managerOptions = append(managerOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("기본 패키지 매니저").
				Options(managerOptions...).
				Value(&input.Manager),
			huh.NewSelect[string]().
				Title("셸 유형").
				Options(
					huh.NewOption("zsh", "zsh"),
					huh.NewOption("bash", "bash"),
					huh.NewOption("fish", "fish"),
				).
				Value(&input.Shell),
			huh.NewConfirm().
				Title("셸 RC 파일에 hook을 설치할까요?").
				Value(&input.InstallHook),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return input, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().Title(message).Value(&confirmed).Run()
	return confirmed, err
}
