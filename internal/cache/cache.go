package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache는 프로젝트 루트-환경 경로 매핑 캐시다. 매 프롬프트마다 패키지
// 매니저를 호출하지 않기 위해 activate 결과를 저장한다.
type Cache struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 캐시 항목이다. 키는 프로젝트 루트 경로다.
type Entry struct {
	EnvPath    string `json:"env_path"`
	Manager    string `json:"manager"`
	ResolvedAt string `json:"resolved_at"`
	LockHash   string `json:"lock_hash"`
}

// New는 빈 캐시를 생성한다.
func New() *Cache {
	return &Cache{Version: 1, Entries: make(map[string]Entry)}
}

// Load는 캐시 파일을 파싱한다. 파일 없음/읽기 실패/파싱 실패 시 빈 캐시를
// 반환한다 (graceful). 반환된 캐시는 항상 사용 가능하다.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return New(), fmt.Errorf("cache.Load: %w", err)
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return New(), nil
	}
	if c.Entries == nil {
		c.Entries = make(map[string]Entry)
	}
	return &c, nil
}

// Lookup은 프로젝트 루트로 캐시를 조회한다. TTL과 lock_hash가 유효하고
// 환경 디렉토리가 실제로 존재해야 hit.
func (c *Cache) Lookup(root, lockHash string, ttlDays int) (*Entry, bool) {
	e, ok := c.Entries[root]
	if !ok {
		return nil, false
	}
	if e.LockHash != lockHash {
		return nil, false
	}
	resolved, err := time.Parse(time.RFC3339, e.ResolvedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(resolved) > time.Duration(ttlDays)*24*time.Hour {
		return nil, false
	}
	// 매니저가 환경을 지웠을 수 있다
	if info, err := os.Stat(e.EnvPath); err != nil || !info.IsDir() {
		return nil, false
	}
	return &e, true
}

// Set은 캐시 항목을 추가하거나 갱신한다.
func (c *Cache) Set(root string, entry Entry) {
	c.Entries[root] = entry
}

// Invalidate는 프로젝트 루트의 캐시 항목을 제거한다.
// install로 환경이 재생성되면 경로가 바뀔 수 있다.
func (c *Cache) Invalidate(root string) {
	delete(c.Entries, root)
}

// InvalidateByManager는 특정 매니저의 모든 캐시 항목을 제거한다.
func (c *Cache) InvalidateByManager(manager string) {
	for root, entry := range c.Entries {
		if entry.Manager == manager {
			delete(c.Entries, root)
		}
	}
}

// Save는 캐시를 JSON 파일로 저장한다 (0600 권한).
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cache.Save: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
