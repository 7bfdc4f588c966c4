package guestcart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/storefront-next/internal/constants"
)

// Store 游客购物车本地存储
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Clear() error
}

// FileStore 以固定键名保存在目录下的 JSON 文件
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore 创建文件存储，dir 为空时使用用户配置目录
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir failed: %w", err)
		}
		dir = filepath.Join(base, "storefront")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create guest cart dir failed: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, constants.GuestCartStorageKey+".json")}, nil
}

// Path 存储文件路径
func (s *FileStore) Path() string {
	return s.path
}

// Load 读取全部条目，文件不存在视为空购物车
func (s *FileStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode guest cart failed: %w", err)
	}
	return entries, nil
}

// Save 覆盖写入全部条目
func (s *FileStore) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear 删除存储
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore 内存存储，服务端合并登录时随请求提交的游客购物车
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore 创建内存存储
func NewMemoryStore(entries []Entry) *MemoryStore {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &MemoryStore{entries: copied}
}

// Load 实现 Store
func (s *MemoryStore) Load() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Entry, len(s.entries))
	copy(copied, s.entries)
	return copied, nil
}

// Save 实现 Store
func (s *MemoryStore) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry(nil), entries...)
	return nil
}

// Clear 实现 Store
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Add 游客加购，同一商品累加数量
func Add(store Store, entry Entry) ([]Entry, error) {
	if entry.ProductID == 0 || entry.Quantity < 1 {
		return nil, fmt.Errorf("invalid guest cart entry: product=%d quantity=%d", entry.ProductID, entry.Quantity)
	}
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	entries = mergeEntry(entries, entry)
	if err := store.Save(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Remove 游客删除商品
func Remove(store Store, productID uint) ([]Entry, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, entry := range entries {
		if entry.ProductID != productID {
			kept = append(kept, entry)
		}
	}
	if err := store.Save(kept); err != nil {
		return nil, err
	}
	return kept, nil
}
