package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-grocery/internal/pkg/common"

	"gorm.io/gorm"
)

// RecipeStore 以 gorm 儲存食譜
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore 創建食譜儲存
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// Create 新增食譜，條目依傳入順序編號
func (s *RecipeStore) Create(ctx context.Context, userID, title string, entries []common.RecipeEntry) (*common.Recipe, error) {
	title = strings.TrimSpace(title)
	if userID == "" || title == "" {
		return nil, common.NewValidationError("user id and title are required")
	}

	row := Recipe{
		ID:     common.GenerateUUID(),
		UserID: userID,
		Title:  title,
	}
	for i, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			return nil, common.NewValidationError(fmt.Sprintf("entry %d has no text", i))
		}
		switch e.Type {
		case common.EntryTypeIngredient, common.EntryTypeStep:
		default:
			return nil, common.NewValidationError(fmt.Sprintf("entry %d has unknown type %q", i, e.Type))
		}
		row.Entries = append(row.Entries, RecipeEntry{
			RecipeID: row.ID,
			Type:     string(e.Type),
			Text:     text,
			Position: i,
		})
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return row.toDomain(), nil
}

// Get 讀取食譜，不存在返回 ErrNotFound，非擁有者返回 ErrForbidden
func (s *RecipeStore) Get(ctx context.Context, recipeID, userID string) (*common.Recipe, error) {
	var row Recipe
	err := s.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", recipeID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if row.UserID != userID {
		return nil, common.ErrForbidden
	}

	return row.toDomain(), nil
}
