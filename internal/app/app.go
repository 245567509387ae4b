package app

import (
	"context"
	"fmt"

	"recipe-grocery/internal/core/ai/cache"
	aiservice "recipe-grocery/internal/core/ai/service"
	"recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/infrastructure/database"
	"recipe-grocery/internal/infrastructure/store"
	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 組裝完成的服務與儲存
type App struct {
	DB         *gorm.DB
	Cache      cache.Cache
	Groceries  *store.GroceryStore
	Categories *store.CategoryStore
	Recipes    *store.RecipeStore
	Service    *grocery.Service
	AIEnabled  bool
}

// New 依設定連線資料庫、建立快取與 AI 建議並組裝服務
func New(cfg *config.Config) (*App, error) {
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(context.Background(), db); err != nil {
			_ = database.Close(db)
			return nil, err
		}
	}

	rules, err := grocery.LoadRules(cfg.Reconcile.RulesFile)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to load reconcile rules: %w", err)
	}

	c, err := cache.New(cfg)
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// nil 指標不可直接放進介面，否則對帳器會誤判為已啟用
	var suggester grocery.Suggester
	if s := aiservice.NewSuggester(cfg, c); s != nil {
		suggester = s
	}

	a := &App{
		DB:         db,
		Cache:      c,
		Groceries:  store.NewGroceryStore(db),
		Categories: store.NewCategoryStore(db),
		Recipes:    store.NewRecipeStore(db),
		AIEnabled:  suggester != nil,
	}
	a.Service = grocery.NewService(a.Recipes, a.Groceries, a.Categories, suggester, rules)

	common.LogInfo("Application initialized",
		zap.String("database", cfg.Database.Driver),
		zap.Bool("cache_enabled", c != nil),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("ai_enabled", a.AIEnabled),
	)

	return a, nil
}

// Migrate 建立資料表並補上預設分類
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := database.Migrate(db, store.Models()...); err != nil {
		return err
	}

	n, err := store.NewCategoryStore(db).EnsureDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if n > 0 {
		common.LogInfo("Seeded default categories", zap.Int("count", n))
	}
	return nil
}

// Ping 檢查資料庫連線
func (a *App) Ping(ctx context.Context) error {
	return database.Ping(ctx, a.DB)
}

// Close 釋放快取與資料庫連線
func (a *App) Close() error {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			common.LogWarn("Failed to close cache", zap.Error(err))
		}
	}
	return database.Close(a.DB)
}
