package recipe

import (
	"context"
	"net/http"

	"recipe-grocery/internal/api/handlers"
	"recipe-grocery/internal/api/middleware"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store 食譜儲存
type Store interface {
	Create(ctx context.Context, userID, title string, entries []common.RecipeEntry) (*common.Recipe, error)
	Get(ctx context.Context, recipeID, userID string) (*common.Recipe, error)
}

// Handler 食譜處理器
type Handler struct {
	store Store
}

// NewHandler 創建食譜處理器
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// EntryRequest 食譜條目
type EntryRequest struct {
	Type string `json:"type" binding:"required,oneof=ingredient step"`
	Text string `json:"text" binding:"required"`
}

// CreateRequest 新增食譜
type CreateRequest struct {
	Title   string         `json:"title" binding:"required"`
	Entries []EntryRequest `json:"entries" binding:"dive"`
}

// HandleCreate 新增食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	entries := make([]common.RecipeEntry, 0, len(req.Entries))
	for i, e := range req.Entries {
		entries = append(entries, common.RecipeEntry{
			Type:     common.EntryType(e.Type),
			Text:     e.Text,
			Position: i,
		})
	}

	userID := middleware.UserID(c)
	recipe, err := h.store.Create(c.Request.Context(), userID, req.Title, entries)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("Recipe created",
		zap.String("recipe_id", recipe.ID),
		zap.String("user_id", userID),
		zap.Int("entries", len(recipe.Entries)),
	)
	c.JSON(http.StatusCreated, recipe)
}

// HandleGet 讀取食譜
func (h *Handler) HandleGet(c *gin.Context) {
	recipe, err := h.store.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}
