package store

import (
	"context"
	"errors"
	"testing"

	"recipe-grocery/internal/infrastructure/database"
	"recipe-grocery/internal/pkg/common"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB 建立遷移完成的記憶體 sqlite
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, Models()...))
	return db
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func seedCategories(t *testing.T, db *gorm.DB) (fleisch, gemuese string) {
	t.Helper()
	cats := NewCategoryStore(db)

	c1, err := cats.Create(context.Background(), common.GroceryCategory{ID: "c1", Value: "Fleisch", Order: 2})
	require.NoError(t, err)
	c2, err := cats.Create(context.Background(), common.GroceryCategory{ID: "c2", Value: "Obst / Gemüse", Order: 1})
	require.NoError(t, err)
	return c1.ID, c2.ID
}

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("List Ordered By Display Order", func(t *testing.T) {
		db := setupDB(t)
		seedCategories(t, db)

		cats, err := NewCategoryStore(db).List(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Obst / Gemüse", cats[0].Value)
		assert.Equal(t, "Fleisch", cats[1].Value)
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		db := setupDB(t)
		seedCategories(t, db)

		_, err := NewCategoryStore(db).Create(ctx, common.GroceryCategory{Value: "fleisch"})
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("Create Requires Value", func(t *testing.T) {
		db := setupDB(t)
		_, err := NewCategoryStore(db).Create(ctx, common.GroceryCategory{Value: "  "})
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("Ensure Defaults Once", func(t *testing.T) {
		db := setupDB(t)
		store := NewCategoryStore(db)

		n, err := store.EnsureDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(DefaultCategories), n)

		n, err = store.EnsureDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestGroceryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And List", func(t *testing.T) {
		db := setupDB(t)
		fleisch, _ := seedCategories(t, db)
		store := NewGroceryStore(db)

		item, err := store.Create(ctx, "u1", common.GroceryInput{
			Title:       " Hähnchenbrust ",
			Menge:       "500g",
			CategoryIDs: []string{fleisch},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "Hähnchenbrust", item.Title)
		assert.Equal(t, []string{fleisch}, item.CategoryIDs)

		items, err := store.List(ctx, "u1", nil)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "500g", items[0].Menge)
		assert.False(t, items[0].Done)
		assert.Equal(t, []string{fleisch}, items[0].CategoryIDs)

		other, err := store.List(ctx, "u2", nil)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("Create Unknown Category", func(t *testing.T) {
		db := setupDB(t)
		store := NewGroceryStore(db)

		_, err := store.Create(ctx, "u1", common.GroceryInput{Title: "Mehl", CategoryIDs: []string{"missing"}})
		assert.ErrorIs(t, err, common.ErrInvalidCategory)

		items, err := store.List(ctx, "u1", nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("List Filters", func(t *testing.T) {
		db := setupDB(t)
		fleisch, gemuese := seedCategories(t, db)
		store := NewGroceryStore(db)

		_, err := store.Create(ctx, "u1", common.GroceryInput{Title: "Rindfleisch", CategoryIDs: []string{fleisch}})
		require.NoError(t, err)
		_, err = store.Create(ctx, "u1", common.GroceryInput{Title: "Karotten", Done: true, CategoryIDs: []string{gemuese}})
		require.NoError(t, err)
		_, err = store.Create(ctx, "u1", common.GroceryInput{Title: "Zwiebeln"})
		require.NoError(t, err)

		done := true
		items, err := store.List(ctx, "u1", &common.GroceryFilter{Done: &done})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Karotten", items[0].Title)

		items, err = store.List(ctx, "u1", &common.GroceryFilter{CategoryID: fleisch})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Rindfleisch", items[0].Title)

		items, err = store.List(ctx, "u1", &common.GroceryFilter{Search: "ZWIE"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Zwiebeln", items[0].Title)
	})

	t.Run("Update Keeps Categories", func(t *testing.T) {
		db := setupDB(t)
		fleisch, _ := seedCategories(t, db)
		store := NewGroceryStore(db)

		item, err := store.Create(ctx, "u1", common.GroceryInput{Title: "Hackfleisch", Menge: "300g", CategoryIDs: []string{fleisch}})
		require.NoError(t, err)

		updated, err := store.Update(ctx, item.ID, "u1", common.GroceryInput{Title: "Hackfleisch", Menge: "800g", Done: true})
		require.NoError(t, err)
		assert.Equal(t, "800g", updated.Menge)
		assert.True(t, updated.Done)
		assert.Equal(t, []string{fleisch}, updated.CategoryIDs)
	})

	t.Run("Update Replaces Categories", func(t *testing.T) {
		db := setupDB(t)
		fleisch, gemuese := seedCategories(t, db)
		store := NewGroceryStore(db)

		item, err := store.Create(ctx, "u1", common.GroceryInput{Title: "Paprika", CategoryIDs: []string{fleisch}})
		require.NoError(t, err)

		updated, err := store.Update(ctx, item.ID, "u1", common.GroceryInput{Title: "Paprika", CategoryIDs: []string{gemuese}})
		require.NoError(t, err)
		assert.Equal(t, []string{gemuese}, updated.CategoryIDs)
	})

	t.Run("Update Other Owner", func(t *testing.T) {
		db := setupDB(t)
		store := NewGroceryStore(db)

		item, err := store.Create(ctx, "u1", common.GroceryInput{Title: "Milch"})
		require.NoError(t, err)

		_, err = store.Update(ctx, item.ID, "u2", common.GroceryInput{Title: "Milch", Menge: "1l"})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("List Database Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `grocery_items`").WillReturnError(errors.New("connection reset"))

		_, err := NewGroceryStore(db).List(ctx, "u1", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list grocery items")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecipeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Get", func(t *testing.T) {
		db := setupDB(t)
		store := NewRecipeStore(db)

		created, err := store.Create(ctx, "u1", "Hähnchenpfanne", []common.RecipeEntry{
			{Type: common.EntryTypeIngredient, Text: "500 g Hähnchenbrust"},
			{Type: common.EntryTypeStep, Text: "Anbraten"},
			{Type: common.EntryTypeIngredient, Text: "2 Zwiebeln"},
		})
		require.NoError(t, err)

		got, err := store.Get(ctx, created.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Hähnchenpfanne", got.Title)
		require.Len(t, got.Entries, 3)
		assert.Equal(t, "Anbraten", got.Entries[1].Text)
		assert.Equal(t, []string{"500 g Hähnchenbrust", "2 Zwiebeln"}, got.Ingredients())
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db := setupDB(t)
		_, err := NewRecipeStore(db).Get(ctx, "missing", "u1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("Get Other Owner", func(t *testing.T) {
		db := setupDB(t)
		store := NewRecipeStore(db)

		created, err := store.Create(ctx, "u1", "Salat", nil)
		require.NoError(t, err)

		_, err = store.Get(ctx, created.ID, "u2")
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("Create Rejects Unknown Entry Type", func(t *testing.T) {
		db := setupDB(t)
		_, err := NewRecipeStore(db).Create(ctx, "u1", "Suppe", []common.RecipeEntry{{Type: "note", Text: "x"}})
		assert.True(t, common.IsValidationError(err))
	})

	t.Run("Get Database Error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `recipes`").WillReturnError(errors.New("connection reset"))

		_, err := NewRecipeStore(db).Get(ctx, "r1", "u1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
