package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"recipe-grocery/internal/core/ai/provider"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client OpenRouter chat/completions 客戶端
type Client struct {
	config *config.OpenRouterConfig
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.OpenRouterConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "Recipe Grocery")

	return &Client{
		config: cfg,
		client: client,
	}
}

type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []provider.Message `json:"messages"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
	Temperature float64            `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
}

// Generate 發送對話請求並返回第一個選項的內容
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.config.Model,
			Messages:    req.Messages,
			MaxTokens:   maxTokens,
			Temperature: req.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		err = common.ErrAIServiceError.Wrap(fmt.Errorf("failed to send request to OpenRouter: %w", err))
		common.LogAICall(c.config.Model, time.Since(start), err)
		return nil, err
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		err = common.ErrAIRateLimited.Wrap(fmt.Errorf("OpenRouter API returned %d", resp.StatusCode()))
	case resp.StatusCode() != http.StatusOK:
		err = common.ErrAIServiceError.Wrap(fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), resp.String()))
	}
	if err != nil {
		common.LogAICall(c.config.Model, time.Since(start), err)
		return nil, err
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("failed to parse OpenRouter response: %w", err))
	}
	if len(result.Choices) == 0 {
		return nil, common.ErrAIServiceError.Wrap(fmt.Errorf("no choices in OpenRouter response"))
	}

	common.LogAICall(c.config.Model, time.Since(start), nil)

	return &provider.Response{
		Content: result.Choices[0].Message.Content,
		Usage:   result.Usage,
	}, nil
}

// GetModel 返回模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 返回請求逾時
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}
