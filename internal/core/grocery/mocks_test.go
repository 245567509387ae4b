package grocery

import (
	"context"

	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/mock"
)

type mockGroceryStore struct {
	mock.Mock
}

func (m *mockGroceryStore) List(ctx context.Context, userID string, filter *common.GroceryFilter) ([]common.GroceryItem, error) {
	args := m.Called(ctx, userID, filter)
	items, _ := args.Get(0).([]common.GroceryItem)
	return items, args.Error(1)
}

func (m *mockGroceryStore) Create(ctx context.Context, userID string, in common.GroceryInput) (*common.GroceryItem, error) {
	args := m.Called(ctx, userID, in)
	item, _ := args.Get(0).(*common.GroceryItem)
	return item, args.Error(1)
}

func (m *mockGroceryStore) Update(ctx context.Context, itemID, userID string, in common.GroceryInput) (*common.GroceryItem, error) {
	args := m.Called(ctx, itemID, userID, in)
	item, _ := args.Get(0).(*common.GroceryItem)
	return item, args.Error(1)
}

type mockSuggester struct {
	mock.Mock
}

func (m *mockSuggester) Suggest(ctx context.Context, ingredients []string, categories []common.GroceryCategory) ([]common.CategorySuggestion, error) {
	args := m.Called(ctx, ingredients, categories)
	out, _ := args.Get(0).([]common.CategorySuggestion)
	return out, args.Error(1)
}

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) List(ctx context.Context) ([]common.GroceryCategory, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]common.GroceryCategory)
	return cats, args.Error(1)
}

type mockRecipeStore struct {
	mock.Mock
}

func (m *mockRecipeStore) Get(ctx context.Context, recipeID, userID string) (*common.Recipe, error) {
	args := m.Called(ctx, recipeID, userID)
	r, _ := args.Get(0).(*common.Recipe)
	return r, args.Error(1)
}
