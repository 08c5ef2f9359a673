package cookbook

import (
	"cookbook-service/internal/pkg/common"
)

// Kind 條目類型
type Kind string

const (
	KindIngredient Kind = "ingredient"
	KindRecipe     Kind = "recipe"
)

// Entry 食譜庫條目，只有 *Ingredient 與 *Recipe 兩種實作
type Entry interface {
	EntryName() string
	Kind() Kind
	entry()
}

// Ingredient 基礎食材
type Ingredient struct {
	Name     string
	CookTime int
}

// EntryName 實現 Entry 介面
func (i *Ingredient) EntryName() string { return i.Name }

// Kind 實現 Entry 介面
func (i *Ingredient) Kind() Kind { return KindIngredient }

func (*Ingredient) entry() {}

// Recipe 食譜，引用其他條目
type Recipe struct {
	Name          string
	RequiredItems []RequiredItem
}

// EntryName 實現 Entry 介面
func (r *Recipe) EntryName() string { return r.Name }

// Kind 實現 Entry 介面
func (r *Recipe) Kind() Kind { return KindRecipe }

func (*Recipe) entry() {}

// RequiredItem 依名稱引用的需求項目，在彙總時才解析
type RequiredItem struct {
	Name     string
	Quantity int
}

// EntryInput 新增條目的輸入，指標欄位用來區分「缺少」與「零值」
type EntryInput struct {
	Type          string
	Name          string
	CookTime      *int
	RequiredItems []RequiredItemInput
}

// RequiredItemInput 需求項目輸入
type RequiredItemInput struct {
	Name     *string
	Quantity *int
}

// NewEntryInput 將 API 請求轉為條目輸入
func NewEntryInput(req common.EntryRequest) EntryInput {
	in := EntryInput{
		Type:     req.Type,
		Name:     req.Name,
		CookTime: req.CookTime,
	}
	if len(req.RequiredItems) > 0 {
		in.RequiredItems = make([]RequiredItemInput, len(req.RequiredItems))
		for i, item := range req.RequiredItems {
			in.RequiredItems[i] = RequiredItemInput{Name: item.Name, Quantity: item.Quantity}
		}
	}
	return in
}

// build 驗證變體欄位並建立條目（類型與重名檢查由 Registry 負責）
func (in EntryInput) build() (Entry, error) {
	switch Kind(in.Type) {
	case KindIngredient:
		if in.CookTime == nil || *in.CookTime < 0 {
			return nil, ErrInvalidCookTime
		}
		return &Ingredient{Name: in.Name, CookTime: *in.CookTime}, nil

	case KindRecipe:
		seen := make(map[string]struct{}, len(in.RequiredItems))
		items := make([]RequiredItem, 0, len(in.RequiredItems))
		for _, item := range in.RequiredItems {
			if item.Name == nil || item.Quantity == nil {
				return nil, ErrInvalidRequiredItem
			}
			if _, dup := seen[*item.Name]; dup {
				return nil, ErrDuplicateRequiredItem
			}
			seen[*item.Name] = struct{}{}
			items = append(items, RequiredItem{Name: *item.Name, Quantity: *item.Quantity})
		}
		return &Recipe{Name: in.Name, RequiredItems: items}, nil
	}

	return nil, ErrInvalidType
}

func validKind(t string) bool {
	return Kind(t) == KindIngredient || Kind(t) == KindRecipe
}
