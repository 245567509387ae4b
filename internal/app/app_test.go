package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig 使用暫存 sqlite、記憶體快取並停用 AI 的設定
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Version: "test"},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          filepath.Join(t.TempDir(), "grocery.db"),
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Backend: "memory",
			MaxSize: 10,
			TTL:     time.Minute,
		},
	}
}

func findCategory(t *testing.T, a *App, value string) string {
	t.Helper()
	cats, err := a.Categories.List(context.Background())
	require.NoError(t, err)
	for _, c := range cats {
		if c.Value == value {
			return c.ID
		}
	}
	t.Fatalf("category %q not seeded", value)
	return ""
}

func TestReconcileEndToEnd(t *testing.T) {
	ctx := context.Background()

	a, err := New(newTestConfig(t))
	require.NoError(t, err)
	defer a.Close()
	assert.False(t, a.AIEnabled)
	require.NoError(t, a.Ping(ctx))

	recipe, err := a.Recipes.Create(ctx, "u1", "Hähnchenpfanne", []common.RecipeEntry{
		{Type: common.EntryTypeIngredient, Text: "500 g Hähnchenbrust"},
		{Type: common.EntryTypeIngredient, Text: "Olivenöl"},
		{Type: common.EntryTypeStep, Text: "Anbraten"},
		{Type: common.EntryTypeIngredient, Text: "2 Zwiebeln"},
	})
	require.NoError(t, err)

	result, err := a.Service.ReconcileRecipe(ctx, recipe.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	items, err := a.Groceries.List(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byTitle := map[string]common.GroceryItem{}
	for _, it := range items {
		byTitle[it.Title] = it
	}
	assert.Equal(t, []string{findCategory(t, a, "Fleisch")}, byTitle["Hähnchenbrust"].CategoryIDs)
	assert.Equal(t, []string{findCategory(t, a, "Obst / Gemüse")}, byTitle["Zwiebeln"].CategoryIDs)

	result, err = a.Service.ReconcileRecipe(ctx, recipe.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 0, result.Added)

	items, err = a.Groceries.List(ctx, "u1", &common.GroceryFilter{Search: "hähnchen"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1000g", items[0].Menge)

	_, err = a.Service.ReconcileRecipe(ctx, recipe.ID, "u2")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestNewInvalidRulesFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Reconcile.RulesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(cfg)
	assert.Error(t, err)
}
