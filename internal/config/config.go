package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// Config는 pyctx 설정 파일의 최상위 구조체다.
type Config struct {
	Version        int    `toml:"version"`
	DefaultManager string `toml:"default_manager"`
	Shell          string `toml:"shell"`
	LocalBinDir    string `toml:"local_bin_dir"`
	CacheTTLDays   *int   `toml:"cache_ttl_days"`
	SuppressPrompt *bool  `toml:"suppress_prompt"`
	AutoInstall    *bool  `toml:"auto_install"`
	LoadDotenv     *bool  `toml:"load_dotenv"`
}

// Default는 설정 파일이 없을 때 사용하는 기본 Config를 반환한다.
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault는 설정 파일을 파싱하되, 파일이 없으면 기본 Config를 반환한다.
// activate는 설정 없이도 동작해야 하므로 파일 부재는 에러가 아니다.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save는 Config를 TOML 파일로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// IsSuppressPrompt는 suppress_prompt 설정값을 반환한다.
func (c *Config) IsSuppressPrompt() bool {
	if c.SuppressPrompt == nil {
		return true
	}
	return *c.SuppressPrompt
}

// IsAutoInstall는 auto_install 설정값을 반환한다.
func (c *Config) IsAutoInstall() bool {
	if c.AutoInstall == nil {
		return true
	}
	return *c.AutoInstall
}

// TTLDays는 cache_ttl_days 설정값을 반환한다. 명시적 0은 "항상 재질의"를
// 의미하며 기본값 7과 구분된다.
func (c *Config) TTLDays() int {
	if c.CacheTTLDays == nil {
		return 7
	}
	return *c.CacheTTLDays
}

// IsLoadDotenv는 load_dotenv 설정값을 반환한다.
func (c *Config) IsLoadDotenv() bool {
	if c.LoadDotenv == nil {
		return false
	}
	return *c.LoadDotenv
}

// ConfigHash는 설정 내용의 해시를 반환한다. 캐시 무효화에 사용된다.
func (c *Config) ConfigHash() string {
	var sb strings.Builder
	_ = toml.NewEncoder(&sb).Encode(c) // 인코딩 실패 시 빈 해시 대신 상수 입력 해시
	sum := sha256.Sum256([]byte(sb.String()))
	return fmt.Sprintf("%x", sum[:8])
}

func (c *Config) applyDefaults() {
	if c.DefaultManager == "" {
		c.DefaultManager = "poetry"
	}
	if c.Shell == "" {
		c.Shell = "zsh"
	}
	if c.LocalBinDir == "" {
		c.LocalBinDir = "bin"
	}
	if c.CacheTTLDays == nil {
		n := 7
		c.CacheTTLDays = &n
	}
	if c.SuppressPrompt == nil {
		t := true
		c.SuppressPrompt = &t
	}
	if c.AutoInstall == nil {
		t := true
		c.AutoInstall = &t
	}
	if c.LoadDotenv == nil {
		f := false
		c.LoadDotenv = &f
	}
}

func (c *Config) validate() error {
	switch c.Shell {
	case "zsh", "bash", "fish":
	default:
		return fmt.Errorf("config.Load: %w: 지원하지 않는 셸: %s", ErrConfig, c.Shell)
	}
	if c.TTLDays() < 0 {
		return fmt.Errorf("config.Load: %w: cache_ttl_days는 음수일 수 없음", ErrConfig)
	}
	if filepath.IsAbs(c.LocalBinDir) {
		return fmt.Errorf("config.Load: %w: local_bin_dir는 프로젝트 상대 경로여야 함", ErrConfig)
	}
	return nil
}
