package grocery

import (
	"context"

	"recipe-grocery/internal/pkg/common"
)

// Suggester 外部 AI 分類建議能力
type Suggester interface {
	Suggest(ctx context.Context, ingredients []string, categories []common.GroceryCategory) ([]common.CategorySuggestion, error)
}

// GroceryStore 購物清單儲存，擁有權由實作檢查
type GroceryStore interface {
	List(ctx context.Context, userID string, filter *common.GroceryFilter) ([]common.GroceryItem, error)
	Create(ctx context.Context, userID string, in common.GroceryInput) (*common.GroceryItem, error)
	Update(ctx context.Context, itemID, userID string, in common.GroceryInput) (*common.GroceryItem, error)
}

// CategoryStore 分類儲存
type CategoryStore interface {
	List(ctx context.Context) ([]common.GroceryCategory, error)
}

// RecipeStore 食譜儲存
type RecipeStore interface {
	Get(ctx context.Context, recipeID, userID string) (*common.Recipe, error)
}

// Result 一次對帳的結果
type Result struct {
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Message string `json:"message"`
}
