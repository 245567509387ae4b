package common

import "time"

// Confidence AI 建議的可信度
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid 是否為已知的可信度
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// EntryType 食譜條目類型
type EntryType string

const (
	EntryTypeIngredient EntryType = "ingredient"
	EntryTypeStep       EntryType = "step"
)

// GroceryCategory 購物分類
type GroceryCategory struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// GroceryItem 購物清單項目
type GroceryItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Menge       string    `json:"menge"`
	Done        bool      `json:"done"`
	CategoryIDs []string  `json:"category_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroceryInput 新增或更新購物項目的欄位
type GroceryInput struct {
	Title       string   `json:"title"`
	Menge       string   `json:"menge"`
	Done        bool     `json:"done"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// GroceryFilter 購物清單查詢條件
type GroceryFilter struct {
	Done       *bool
	CategoryID string
	Search     string
}

// CategorySuggestion AI 針對單一食材的分類建議
type CategorySuggestion struct {
	IngredientName      string     `json:"ingredientName"`
	SuggestedCategoryID *string    `json:"suggestedCategoryId"`
	CategoryName        *string    `json:"categoryName"`
	Confidence          Confidence `json:"confidence"`
}

// NullSuggestion 無建議時使用的預設值
func NullSuggestion(ingredient string) CategorySuggestion {
	return CategorySuggestion{
		IngredientName: ingredient,
		Confidence:     ConfidenceLow,
	}
}

// RecipeEntry 食譜條目（食材或步驟）
type RecipeEntry struct {
	Type     EntryType `json:"type"`
	Text     string    `json:"text"`
	Position int       `json:"position"`
}

// Recipe 食譜
type Recipe struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Title     string        `json:"title"`
	Entries   []RecipeEntry `json:"entries"`
	CreatedAt time.Time     `json:"created_at"`
}

// Ingredients 返回食材條目的文字，步驟不會包含在內
func (r *Recipe) Ingredients() []string {
	var out []string
	for _, e := range r.Entries {
		if e.Type == EntryTypeIngredient {
			out = append(out, e.Text)
		}
	}
	return out
}
