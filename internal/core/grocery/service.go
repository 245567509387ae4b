package grocery

import (
	"context"
	"fmt"

	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜轉購物清單服務
type Service struct {
	recipes    RecipeStore
	groceries  GroceryStore
	categories CategoryStore
	reconciler *Reconciler
}

// NewService 創建服務
func NewService(recipes RecipeStore, groceries GroceryStore, categories CategoryStore, suggester Suggester, rules *Rules) *Service {
	return &Service{
		recipes:    recipes,
		groceries:  groceries,
		categories: categories,
		reconciler: NewReconciler(groceries, suggester, rules),
	}
}

// ReconcileRecipe 將食譜的食材加入使用者的購物清單
func (s *Service) ReconcileRecipe(ctx context.Context, recipeID, userID string) (*Result, error) {
	if recipeID == "" || userID == "" {
		return nil, common.NewValidationError("recipe id and user id are required")
	}

	recipe, err := s.recipes.Get(ctx, recipeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	existing, err := s.groceries.List(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list groceries: %w", err)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	ingredients := recipe.Ingredients()
	common.LogDebug("Reconciling recipe",
		zap.String("recipe_id", recipeID),
		zap.String("user_id", userID),
		zap.Int("ingredients", len(ingredients)),
		zap.Int("existing_items", len(existing)),
		zap.Int("categories", len(categories)),
	)

	return s.reconciler.Reconcile(ctx, userID, ingredients, existing, categories), nil
}
