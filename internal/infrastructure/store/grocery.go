package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-grocery/internal/pkg/common"

	"gorm.io/gorm"
)

// GroceryStore 以 gorm 儲存購物清單，所有操作都限定擁有者
type GroceryStore struct {
	db *gorm.DB
}

// NewGroceryStore 創建購物清單儲存
func NewGroceryStore(db *gorm.DB) *GroceryStore {
	return &GroceryStore{db: db}
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, value ASC")
}

// List 列出使用者的購物項目，依建立時間排序
func (s *GroceryStore) List(ctx context.Context, userID string, filter *common.GroceryFilter) ([]common.GroceryItem, error) {
	q := s.db.WithContext(ctx).
		Preload("Categories", preloadCategories).
		Where("user_id = ?", userID)

	if filter != nil {
		if filter.Done != nil {
			q = q.Where("done = ?", *filter.Done)
		}
		if filter.CategoryID != "" {
			sub := s.db.Table("grocery_item_categories").
				Select("grocery_item_id").
				Where("category_id = ?", filter.CategoryID)
			q = q.Where("id IN (?)", sub)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
	}

	var rows []GroceryItem
	if err := q.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list grocery items: %w", err)
	}

	items := make([]common.GroceryItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, nil
}

// Create 新增購物項目，未知的分類 ID 返回 ErrInvalidCategory
func (s *GroceryStore) Create(ctx context.Context, userID string, in common.GroceryInput) (*common.GroceryItem, error) {
	title := strings.TrimSpace(in.Title)
	if userID == "" || title == "" {
		return nil, common.NewValidationError("user id and title are required")
	}

	row := GroceryItem{
		ID:     common.GenerateUUID(),
		UserID: userID,
		Title:  title,
		Menge:  strings.TrimSpace(in.Menge),
		Done:   in.Done,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cats, err := findCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		row.Categories = cats
		return tx.Omit("Categories.*").Create(&row).Error
	})
	if err != nil {
		return nil, wrapStoreError("failed to create grocery item", err)
	}

	item := row.toDomain()
	return &item, nil
}

// Update 更新購物項目；CategoryIDs 為 nil 時保留原分類
func (s *GroceryStore) Update(ctx context.Context, itemID, userID string, in common.GroceryInput) (*common.GroceryItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.NewValidationError("title is required")
	}

	var row, updated GroceryItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&row).Updates(map[string]interface{}{
			"title": title,
			"menge": strings.TrimSpace(in.Menge),
			"done":  in.Done,
		}).Error; err != nil {
			return err
		}

		if in.CategoryIDs != nil {
			cats, err := findCategories(tx, in.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&row).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}

		return tx.Preload("Categories", preloadCategories).First(&updated, "id = ?", itemID).Error
	})
	if err != nil {
		return nil, wrapStoreError("failed to update grocery item", err)
	}

	item := updated.toDomain()
	return &item, nil
}

// findCategories 載入指定的分類，任一不存在即返回 ErrInvalidCategory
func findCategories(tx *gorm.DB, ids []string) ([]Category, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	var cats []Category
	if err := tx.Where("id IN ?", unique).Find(&cats).Error; err != nil {
		return nil, err
	}
	if len(cats) != len(unique) {
		return nil, common.ErrInvalidCategory.Wrap(fmt.Errorf("unknown category ids in %v", unique))
	}
	return cats, nil
}

// wrapStoreError 保留業務錯誤，其餘錯誤加上說明
func wrapStoreError(msg string, err error) error {
	var ce *common.CustomError
	if errors.As(err, &ce) || common.IsValidationError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
