package grocery

import (
	"context"
	"net/http"
	"strconv"

	"recipe-grocery/internal/api/handlers"
	"recipe-grocery/internal/api/middleware"
	core "recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemStore 購物清單儲存
type ItemStore interface {
	List(ctx context.Context, userID string, filter *common.GroceryFilter) ([]common.GroceryItem, error)
	Create(ctx context.Context, userID string, in common.GroceryInput) (*common.GroceryItem, error)
	Update(ctx context.Context, itemID, userID string, in common.GroceryInput) (*common.GroceryItem, error)
}

// CategoryStore 分類儲存
type CategoryStore interface {
	List(ctx context.Context) ([]common.GroceryCategory, error)
	Create(ctx context.Context, in common.GroceryCategory) (*common.GroceryCategory, error)
}

// Reconciler 食譜轉購物清單
type Reconciler interface {
	ReconcileRecipe(ctx context.Context, recipeID, userID string) (*core.Result, error)
}

// Handler 購物清單處理器
type Handler struct {
	items      ItemStore
	categories CategoryStore
	reconciler Reconciler
}

// NewHandler 創建購物清單處理器
func NewHandler(items ItemStore, categories CategoryStore, reconciler Reconciler) *Handler {
	return &Handler{
		items:      items,
		categories: categories,
		reconciler: reconciler,
	}
}

// ItemRequest 新增或更新購物項目
type ItemRequest struct {
	Title       string   `json:"title" binding:"required"`
	Menge       string   `json:"menge"`
	Done        bool     `json:"done"`
	CategoryIDs []string `json:"category_ids"`
}

// CategoryRequest 新增分類
type CategoryRequest struct {
	ID    string `json:"id"`
	Value string `json:"value" binding:"required"`
	Order int    `json:"order"`
}

// HandleReconcile 將食譜食材加入購物清單
func (h *Handler) HandleReconcile(c *gin.Context) {
	userID := middleware.UserID(c)
	recipeID := c.Param("id")

	result, err := h.reconciler.ReconcileRecipe(c.Request.Context(), recipeID, userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogDebug("Recipe reconciled",
		zap.String("recipe_id", recipeID),
		zap.String("user_id", userID),
		zap.String("message", result.Message),
	)
	c.JSON(http.StatusOK, result)
}

// HandleList 列出購物清單，支援 done、category_id、q 篩選
func (h *Handler) HandleList(c *gin.Context) {
	filter := &common.GroceryFilter{
		CategoryID: c.Query("category_id"),
		Search:     c.Query("q"),
	}
	if raw := c.Query("done"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondError(c, common.NewValidationError("done must be true or false"))
			return
		}
		filter.Done = &done
	}

	items, err := h.items.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// HandleCreate 新增購物項目
func (h *Handler) HandleCreate(c *gin.Context) {
	var req ItemRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	item, err := h.items.Create(c.Request.Context(), middleware.UserID(c), common.GroceryInput(req))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// HandleUpdate 更新購物項目
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req ItemRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	item, err := h.items.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), common.GroceryInput(req))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// HandleListCategories 列出分類
func (h *Handler) HandleListCategories(c *gin.Context) {
	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// HandleCreateCategory 新增分類
func (h *Handler) HandleCreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !handlers.BindJSON(c, &req) {
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), common.GroceryCategory(req))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cat)
}
