package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-grocery/internal/infrastructure/config"
)

// Cache AI 回應快取，未命中時返回 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定建立快取，停用時返回 nil
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisCache(&cfg.Redis, cfg.Cache.TTL)
	case "memory", "":
		return NewManager(&cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
	}
}

// Key 以模型與提示詞生成快取鍵
func Key(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\n" + prompt))
	return "suggest:" + hex.EncodeToString(hash[:])
}
