package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-grocery/internal/pkg/common"

	"gorm.io/gorm"
)

// DefaultCategories 初次遷移時建立的分類
var DefaultCategories = []common.GroceryCategory{
	{Value: "Obst / Gemüse", Order: 1},
	{Value: "Fleisch", Order: 2},
	{Value: "Milchprodukte / Käse", Order: 3},
	{Value: "Brot / Backwaren", Order: 4},
	{Value: "Öl / Essig", Order: 5},
	{Value: "Zucker / Süßwaren", Order: 6},
	{Value: "Konserven", Order: 7},
	{Value: "Tiefkühl", Order: 8},
	{Value: "Sonstiges", Order: 9},
}

// CategoryStore 以 gorm 儲存購物分類
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore 創建分類儲存
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List 依顯示順序列出分類
func (s *CategoryStore) List(ctx context.Context) ([]common.GroceryCategory, error) {
	var rows []Category
	if err := s.db.WithContext(ctx).Order("display_order ASC, value ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	cats := make([]common.GroceryCategory, 0, len(rows))
	for i := range rows {
		cats = append(cats, rows[i].toDomain())
	}
	return cats, nil
}

// Create 新增分類，名稱重複返回 ErrConflict
func (s *CategoryStore) Create(ctx context.Context, in common.GroceryCategory) (*common.GroceryCategory, error) {
	value := strings.TrimSpace(in.Value)
	if value == "" {
		return nil, common.NewValidationError("category value is required")
	}

	row := Category{
		ID:           strings.TrimSpace(in.ID),
		Value:        value,
		DisplayOrder: in.Order,
	}
	if row.ID == "" {
		row.ID = common.GenerateUUID()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Category{}).
			Where("id = ? OR LOWER(value) = ?", row.ID, strings.ToLower(value)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return common.ErrConflict.Wrap(fmt.Errorf("category %q already exists", value))
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, wrapStoreError("failed to create category", err)
	}

	cat := row.toDomain()
	return &cat, nil
}

// EnsureDefaults 分類表為空時建立預設分類，返回新增數量
func (s *CategoryStore) EnsureDefaults(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, c := range DefaultCategories {
		if _, err := s.Create(ctx, c); err != nil {
			if errors.Is(err, common.ErrConflict) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
