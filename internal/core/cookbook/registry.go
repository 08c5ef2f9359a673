package cookbook

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry 以名稱為鍵的條目儲存，條目寫入後不再變動
type Registry struct {
	id       string
	mu       sync.RWMutex
	entries  map[string]Entry
	revision uint64
}

// NewRegistry 創建空的食譜庫
func NewRegistry() *Registry {
	return &Registry{
		id:      uuid.NewString(),
		entries: make(map[string]Entry),
	}
}

// Insert 驗證並新增條目
//
// 驗證順序：類型 → 重名 → 變體欄位。重名檢查與寫入在同一把寫鎖內完成，
// 被拒絕的輸入不會留下任何狀態。
func (r *Registry) Insert(in EntryInput) error {
	if !validKind(in.Type) {
		return ErrInvalidType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[in.Name]; exists {
		return ErrDuplicateName
	}

	entry, err := in.build()
	if err != nil {
		return err
	}

	r.entries[in.Name] = entry
	r.revision++
	return nil
}

// Get 依名稱查詢條目
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	return entry, ok
}

// Len 條目數量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names 回傳排序後的所有條目名稱
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ID 每個 Registry 實例的隨機識別碼，revision 只在同一實例內有意義
func (r *Registry) ID() string {
	return r.id
}

// Revision 每次成功新增後遞增，用於快取失效
func (r *Registry) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// view 在讀鎖內執行 fn，fn 取得的 lookup 不再加鎖
func (r *Registry) view(fn func(lookup func(string) (Entry, bool), revision uint64)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(func(name string) (Entry, bool) {
		entry, ok := r.entries[name]
		return entry, ok
	}, r.revision)
}
