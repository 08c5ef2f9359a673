package cookbook

import (
	"fmt"
	"math"

	"cookbook-service/internal/pkg/common"

	"go.uber.org/zap"
)

// Summary 食譜彙總：基礎烹飪時間與攤平後的食材數量
type Summary struct {
	Name        string               `json:"name"`
	CookTime    int                  `json:"cookTime"`
	Ingredients []IngredientQuantity `json:"ingredients"`
}

// IngredientQuantity 基礎食材與總數量
type IngredientQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SummarizerOptions 彙總行為設定，零值即為預設行為：
// 不偵測循環、不限深度、略過不存在的引用。
type SummarizerOptions struct {
	StrictReferences bool
	DetectCycles     bool
	MaxDepth         int
}

// Summarizer 遞迴展開食譜的需求項目
type Summarizer struct {
	registry *Registry
	opts     SummarizerOptions
}

// NewSummarizer 創建彙總器
func NewSummarizer(registry *Registry, opts SummarizerOptions) *Summarizer {
	return &Summarizer{
		registry: registry,
		opts:     opts,
	}
}

// Summarize 計算食譜的總烹飪時間與基礎食材
//
// 食材的烹飪時間乘以數量；子食譜的烹飪時間直接累加，不乘數量。
// 食材依深度優先、由左至右首次出現的順序排列。
func (s *Summarizer) Summarize(name string) (*Summary, error) {
	summary, _, err := s.summarizeAt(name)
	return summary, err
}

// summarizeAt 同時回傳計算時的 registry revision
func (s *Summarizer) summarizeAt(name string) (summary *Summary, revision uint64, err error) {
	s.registry.view(func(lookup func(string) (Entry, bool), rev uint64) {
		revision = rev
		summary, err = s.summarize(lookup, name)
	})
	return summary, revision, err
}

func (s *Summarizer) summarize(lookup func(string) (Entry, bool), name string) (*Summary, error) {
	entry, ok := lookup(name)
	if !ok {
		return nil, ErrNotFound
	}
	recipe, ok := entry.(*Recipe)
	if !ok {
		return nil, ErrNotFound
	}

	w := &walker{
		lookup: lookup,
		opts:   s.opts,
		tally:  newTally(),
	}
	if s.opts.DetectCycles {
		w.path = map[string]bool{recipe.Name: true}
	}
	if err := w.expand(recipe.RequiredItems, 0); err != nil {
		return nil, err
	}

	return &Summary{
		Name:        name,
		CookTime:    w.cookTime,
		Ingredients: w.tally.list(),
	}, nil
}

// walker 單次彙總的展開狀態
//
// 子食譜的貢獻直接累加到同一份 tally 與 cookTime，
// 結果與「先算子食譜再逐鍵合併」相同。
type walker struct {
	lookup   func(string) (Entry, bool)
	opts     SummarizerOptions
	path     map[string]bool
	cookTime int
	tally    *tally
}

func (w *walker) expand(items []RequiredItem, depth int) error {
	for _, item := range items {
		entry, ok := w.lookup(item.Name)
		if !ok {
			if w.opts.StrictReferences {
				return fmt.Errorf("%w: %q", ErrDanglingReference, item.Name)
			}
			common.LogDebug("略過不存在的引用", zap.String("name", item.Name))
			continue
		}

		switch e := entry.(type) {
		case *Ingredient:
			cookTime, ok := mulInt(e.CookTime, item.Quantity)
			if ok {
				cookTime, ok = addInt(w.cookTime, cookTime)
			}
			if !ok {
				return fmt.Errorf("%w: cookTime at %q", ErrOverflow, e.Name)
			}
			w.cookTime = cookTime
			if !w.tally.add(e.Name, item.Quantity) {
				return fmt.Errorf("%w: quantity of %q", ErrOverflow, e.Name)
			}

		case *Recipe:
			if w.opts.MaxDepth > 0 && depth+1 > w.opts.MaxDepth {
				return fmt.Errorf("%w: depth limit %d exceeded at %q", ErrCyclicReference, w.opts.MaxDepth, e.Name)
			}
			if w.path != nil {
				if w.path[e.Name] {
					return fmt.Errorf("%w: %q", ErrCyclicReference, e.Name)
				}
				w.path[e.Name] = true
			}
			if err := w.expand(e.RequiredItems, depth+1); err != nil {
				return err
			}
			if w.path != nil {
				delete(w.path, e.Name)
			}
		}
	}
	return nil
}

// tally 依首次出現順序累計數量
type tally struct {
	order []string
	qty   map[string]int
}

func newTally() *tally {
	return &tally{qty: make(map[string]int)}
}

func (t *tally) add(name string, quantity int) bool {
	total, ok := addInt(t.qty[name], quantity)
	if !ok {
		return false
	}
	if _, seen := t.qty[name]; !seen {
		t.order = append(t.order, name)
	}
	t.qty[name] = total
	return true
}

func (t *tally) list() []IngredientQuantity {
	out := make([]IngredientQuantity, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, IngredientQuantity{Name: name, Quantity: t.qty[name]})
	}
	return out
}

func addInt(a, b int) (int, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
