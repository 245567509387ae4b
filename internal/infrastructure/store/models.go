package store

import (
	"time"

	"recipe-grocery/internal/pkg/common"
)

// Category 購物分類資料表
type Category struct {
	ID           string `gorm:"primaryKey;size:36"`
	Value        string `gorm:"size:100;not null;uniqueIndex"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0"`
}

// TableName 資料表名稱
func (Category) TableName() string { return "grocery_categories" }

// GroceryItem 購物清單項目資料表
type GroceryItem struct {
	ID         string     `gorm:"primaryKey;size:36"`
	UserID     string     `gorm:"size:64;not null;index"`
	Title      string     `gorm:"size:255;not null"`
	Menge      string     `gorm:"size:100"`
	Done       bool       `gorm:"not null;default:false"`
	Categories []Category `gorm:"many2many:grocery_item_categories"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 資料表名稱
func (GroceryItem) TableName() string { return "grocery_items" }

// Recipe 食譜資料表
type Recipe struct {
	ID        string        `gorm:"primaryKey;size:36"`
	UserID    string        `gorm:"size:64;not null;index"`
	Title     string        `gorm:"size:255;not null"`
	Entries   []RecipeEntry `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName 資料表名稱
func (Recipe) TableName() string { return "recipes" }

// RecipeEntry 食譜條目資料表
type RecipeEntry struct {
	ID       uint   `gorm:"primaryKey"`
	RecipeID string `gorm:"size:36;not null;index"`
	Type     string `gorm:"size:20;not null"`
	Text     string `gorm:"size:500;not null"`
	Position int    `gorm:"not null"`
}

// TableName 資料表名稱
func (RecipeEntry) TableName() string { return "recipe_entries" }

// Models 需要遷移的資料表
func Models() []interface{} {
	return []interface{}{&Category{}, &GroceryItem{}, &Recipe{}, &RecipeEntry{}}
}

func (c *Category) toDomain() common.GroceryCategory {
	return common.GroceryCategory{ID: c.ID, Value: c.Value, Order: c.DisplayOrder}
}

func (g *GroceryItem) toDomain() common.GroceryItem {
	ids := make([]string, 0, len(g.Categories))
	for _, c := range g.Categories {
		ids = append(ids, c.ID)
	}
	return common.GroceryItem{
		ID:          g.ID,
		UserID:      g.UserID,
		Title:       g.Title,
		Menge:       g.Menge,
		Done:        g.Done,
		CategoryIDs: ids,
		CreatedAt:   g.CreatedAt,
	}
}

func (r *Recipe) toDomain() *common.Recipe {
	entries := make([]common.RecipeEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, common.RecipeEntry{
			Type:     common.EntryType(e.Type),
			Text:     e.Text,
			Position: e.Position,
		})
	}
	return &common.Recipe{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Entries:   entries,
		CreatedAt: r.CreatedAt,
	}
}
