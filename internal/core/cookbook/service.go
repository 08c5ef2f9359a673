package cookbook

import (
	"context"
	"fmt"

	"cookbook-service/internal/pkg/common"

	"go.uber.org/zap"
)

// SummaryCache 彙總結果快取
type SummaryCache interface {
	Get(ctx context.Context, key string) (*Summary, bool)
	Set(ctx context.Context, key string, summary *Summary) error
}

// Stats 食譜庫統計
type Stats struct {
	Entries  int    `json:"entries"`
	Revision uint64 `json:"revision"`
}

// Service 食譜庫服務：名稱整理、新增條目、彙總
type Service struct {
	registry   *Registry
	summarizer *Summarizer
	cache      SummaryCache
}

// NewService 創建食譜庫服務，cache 可為 nil
func NewService(registry *Registry, opts SummarizerOptions, cache SummaryCache) *Service {
	return &Service{
		registry:   registry,
		summarizer: NewSummarizer(registry, opts),
		cache:      cache,
	}
}

// ParseName 整理食譜名稱
func (s *Service) ParseName(raw string) (string, error) {
	return Normalize(raw)
}

// CreateEntry 新增條目
func (s *Service) CreateEntry(ctx context.Context, in EntryInput) error {
	if err := s.registry.Insert(in); err != nil {
		common.LogDebug("條目被拒絕",
			zap.String("name", in.Name),
			zap.String("type", in.Type),
			zap.String("reason", err.Error()),
		)
		return err
	}

	common.LogDebug("條目已新增",
		zap.String("name", in.Name),
		zap.String("type", in.Type),
	)
	return nil
}

// Load 依序新增多筆條目，遇到第一個錯誤即停止，回傳成功筆數
func (s *Service) Load(ctx context.Context, entries []EntryInput) (int, error) {
	for i, in := range entries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.CreateEntry(ctx, in); err != nil {
			return i, fmt.Errorf("entry %d (%q): %w", i, in.Name, err)
		}
	}
	return len(entries), nil
}

// Summarize 計算食譜彙總，結果以 registry ID 與 revision 為鍵快取
func (s *Service) Summarize(ctx context.Context, name string) (*Summary, error) {
	if s.cache != nil {
		if summary, ok := s.cache.Get(ctx, s.summaryKey(s.registry.Revision(), name)); ok {
			return summary, nil
		}
	}

	summary, revision, err := s.summarizer.summarizeAt(name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.summaryKey(revision, name), summary); err != nil {
			common.LogWarn("彙總快取寫入失敗",
				zap.String("name", name),
				zap.Error(err),
			)
		}
	}
	return summary, nil
}

// Stats 回傳目前的條目數與 revision
func (s *Service) Stats() Stats {
	return Stats{
		Entries:  s.registry.Len(),
		Revision: s.registry.Revision(),
	}
}

// summaryKey 快取可能跨實例共用（Redis），鍵必須帶上 registry ID
func (s *Service) summaryKey(revision uint64, name string) string {
	return fmt.Sprintf("summary:%s:%d:%s", s.registry.ID(), revision, name)
}
