package common

// ParseRequest 名稱整理請求
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse 名稱整理結果
type ParseResponse struct {
	Msg string `json:"msg"`
}

// EntryRequest 新增條目請求，cookTime 與 requiredItems 依類型擇一
type EntryRequest struct {
	Type          string                `json:"type" yaml:"type"`
	Name          string                `json:"name" yaml:"name"`
	CookTime      *int                  `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	RequiredItems []RequiredItemRequest `json:"requiredItems,omitempty" yaml:"requiredItems,omitempty"`
}

// RequiredItemRequest 需求項目
type RequiredItemRequest struct {
	Name     *string `json:"name" yaml:"name"`
	Quantity *int    `json:"quantity" yaml:"quantity"`
}

// SummaryResponse 食譜彙總
type SummaryResponse struct {
	Name        string               `json:"name"`
	CookTime    int                  `json:"cookTime"`
	Ingredients []IngredientQuantity `json:"ingredients"`
}

// IngredientQuantity 基礎食材數量
type IngredientQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
