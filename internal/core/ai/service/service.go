package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"recipe-grocery/internal/core/ai/cache"
	"recipe-grocery/internal/core/ai/openrouter"
	"recipe-grocery/internal/core/ai/provider"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
)

const systemPrompt = "You sort grocery ingredients into shopping list categories. " +
	"Answer with a JSON array only, no prose and no markdown."

// Service 以語言模型建議食材分類
type Service struct {
	provider    provider.Provider
	cache       cache.Cache
	minInterval time.Duration
	maxTokens   int

	mu          sync.Mutex
	lastRequest time.Time
}

// NewService 創建分類建議服務，c 可為 nil
func NewService(p provider.Provider, c cache.Cache, cfg *config.Config) *Service {
	return &Service{
		provider:    p,
		cache:       c,
		minInterval: cfg.AI.MinInterval,
		maxTokens:   cfg.OpenRouter.MaxTokens,
	}
}

// NewSuggester 依設定建立 OpenRouter 分類建議服務，未啟用或缺少 API Key 時返回 nil
func NewSuggester(cfg *config.Config, c cache.Cache) *Service {
	if !cfg.OpenRouter.Enabled {
		common.LogInfo("AI category suggestions disabled")
		return nil
	}
	if cfg.OpenRouter.APIKey == "" {
		common.LogWarn("OpenRouter API key missing, AI category suggestions disabled")
		return nil
	}

	common.LogInfo("AI category suggestions enabled",
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
	)
	return NewService(openrouter.NewClient(&cfg.OpenRouter), c, cfg)
}

type rawSuggestion struct {
	IngredientName      string  `json:"ingredientName"`
	SuggestedCategoryID *string `json:"suggestedCategoryId"`
	CategoryName        *string `json:"categoryName"`
	Confidence          string  `json:"confidence"`
}

type promptCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Suggest 對整批食材只發出一次模型請求
func (s *Service) Suggest(ctx context.Context, ingredients []string, categories []common.GroceryCategory) ([]common.CategorySuggestion, error) {
	if len(ingredients) == 0 {
		return nil, nil
	}

	prompt, err := buildPrompt(ingredients, categories)
	if err != nil {
		return nil, err
	}

	key := cache.Key(s.provider.GetModel(), prompt)
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, key); err == nil {
			if out, err := parseSuggestions(val, ingredients, categories); err == nil {
				return out, nil
			}
		} else if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("Cache lookup failed", zap.Error(err))
		}
	}

	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, &provider.Request{
		Messages: []provider.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	out, err := parseSuggestions(resp.Content, ingredients, categories)
	if err != nil {
		return nil, common.ErrAIServiceError.Wrap(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp.Content); err != nil {
			common.LogWarn("Failed to cache suggestions", zap.Error(err))
		}
	}

	return out, nil
}

// checkRequestRate 限制兩次模型請求的最小間隔
func (s *Service) checkRequestRate() error {
	if s.minInterval <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.lastRequest.IsZero() && now.Sub(s.lastRequest) < s.minInterval {
		return common.ErrAIRateLimited
	}

	s.lastRequest = now
	return nil
}

func buildPrompt(ingredients []string, categories []common.GroceryCategory) (string, error) {
	cats := make([]promptCategory, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, promptCategory{ID: c.ID, Name: c.Value})
	}

	ingJSON, err := common.ToJSON(ingredients)
	if err != nil {
		return "", fmt.Errorf("failed to encode ingredients: %w", err)
	}
	catJSON, err := common.ToJSON(cats)
	if err != nil {
		return "", fmt.Errorf("failed to encode categories: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Available categories:\n")
	sb.WriteString(catJSON)
	sb.WriteString("\n\nIngredients:\n")
	sb.WriteString(ingJSON)
	sb.WriteString("\n\nReturn one object per ingredient, in the same order, with the fields ")
	sb.WriteString(`"ingredientName" (copied exactly), "suggestedCategoryId" (an id from the list or null), `)
	sb.WriteString(`"categoryName" (the category name or null) and "confidence" ("high", "medium" or "low").`)
	return sb.String(), nil
}

// parseSuggestions 解析模型回應，丟棄未知食材與不存在的分類 ID
func parseSuggestions(content string, ingredients []string, categories []common.GroceryCategory) ([]common.CategorySuggestion, error) {
	raw := common.ExtractJSONArray(content)

	var items []rawSuggestion
	if err := common.ParseJSON(raw, &items); err != nil {
		if err := common.ParseJSON(common.QuoteJSONKeys(raw), &items); err != nil {
			return nil, fmt.Errorf("failed to parse suggestions: %w", err)
		}
	}

	known := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing] = true
	}
	ids := make(map[string]bool, len(categories))
	for _, c := range categories {
		ids[c.ID] = true
	}

	out := make([]common.CategorySuggestion, 0, len(items))
	for _, it := range items {
		if !known[it.IngredientName] {
			continue
		}
		s := common.CategorySuggestion{
			IngredientName: it.IngredientName,
			Confidence:     common.Confidence(strings.ToLower(strings.TrimSpace(it.Confidence))),
		}
		if it.SuggestedCategoryID != nil && ids[strings.TrimSpace(*it.SuggestedCategoryID)] {
			id := strings.TrimSpace(*it.SuggestedCategoryID)
			s.SuggestedCategoryID = &id
		}
		s.CategoryName = common.StringPtr(derefString(it.CategoryName))
		if !s.Confidence.Valid() {
			s.Confidence = common.ConfidenceLow
		}
		out = append(out, s)
	}

	return out, nil
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
