package grocery

import (
	"context"
	"errors"
	"testing"

	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServiceReconcileRecipe(t *testing.T) {
	ctx := context.Background()
	recipe := &common.Recipe{
		ID:     "r1",
		UserID: "u1",
		Title:  "Hähnchenpfanne",
		Entries: []common.RecipeEntry{
			{Type: common.EntryTypeIngredient, Text: "500 g Hähnchenbrust", Position: 0},
			{Type: common.EntryTypeStep, Text: "Alles anbraten", Position: 1},
			{Type: common.EntryTypeIngredient, Text: "1 EL Olivenöl", Position: 2},
		},
	}

	t.Run("Success", func(t *testing.T) {
		recipes := new(mockRecipeStore)
		recipes.On("Get", ctx, "r1", "u1").Return(recipe, nil)
		groceries := new(mockGroceryStore)
		groceries.On("List", ctx, "u1", (*common.GroceryFilter)(nil)).Return([]common.GroceryItem{}, nil)
		groceries.On("Create", ctx, "u1", common.GroceryInput{Title: "Hähnchenbrust", Menge: "500g", CategoryIDs: []string{"c1"}}).
			Return(&common.GroceryItem{ID: "g1"}, nil)
		categories := new(mockCategoryStore)
		categories.On("List", ctx).Return(testCategories, nil)

		svc := NewService(recipes, groceries, categories, nil, defaultRules(t))
		result, err := svc.ReconcileRecipe(ctx, "r1", "u1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 1, result.Skipped)
		groceries.AssertExpectations(t)
	})

	t.Run("Missing IDs", func(t *testing.T) {
		svc := NewService(new(mockRecipeStore), new(mockGroceryStore), new(mockCategoryStore), nil, defaultRules(t))
		_, err := svc.ReconcileRecipe(ctx, "", "u1")
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("Recipe Not Owned", func(t *testing.T) {
		recipes := new(mockRecipeStore)
		recipes.On("Get", ctx, "r1", "u2").Return(nil, common.ErrForbidden)
		groceries := new(mockGroceryStore)

		svc := NewService(recipes, groceries, new(mockCategoryStore), nil, defaultRules(t))
		_, err := svc.ReconcileRecipe(ctx, "r1", "u2")

		assert.ErrorIs(t, err, common.ErrForbidden)
		groceries.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Category Load Failure", func(t *testing.T) {
		recipes := new(mockRecipeStore)
		recipes.On("Get", ctx, "r1", "u1").Return(recipe, nil)
		groceries := new(mockGroceryStore)
		groceries.On("List", ctx, "u1", (*common.GroceryFilter)(nil)).Return([]common.GroceryItem{}, nil)
		categories := new(mockCategoryStore)
		categories.On("List", ctx).Return(nil, errors.New("db down"))

		svc := NewService(recipes, groceries, categories, nil, defaultRules(t))
		_, err := svc.ReconcileRecipe(ctx, "r1", "u1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list categories")
		groceries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}
