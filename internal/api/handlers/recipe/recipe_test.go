package recipe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-grocery/internal/api/middleware"
	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Create(ctx context.Context, userID, title string, entries []common.RecipeEntry) (*common.Recipe, error) {
	args := m.Called(ctx, userID, title, entries)
	r, _ := args.Get(0).(*common.Recipe)
	return r, args.Error(1)
}

func (m *mockStore) Get(ctx context.Context, recipeID, userID string) (*common.Recipe, error) {
	args := m.Called(ctx, recipeID, userID)
	r, _ := args.Get(0).(*common.Recipe)
	return r, args.Error(1)
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequireUser())
	r.POST("/recipes", h.HandleCreate)
	r.GET("/recipes/:id", h.HandleGet)
	return r
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		entries := []common.RecipeEntry{
			{Type: common.EntryTypeIngredient, Text: "2 Zwiebeln", Position: 0},
			{Type: common.EntryTypeStep, Text: "Schneiden", Position: 1},
		}
		store := new(mockStore)
		store.On("Create", mock.Anything, "u1", "Zwiebelsuppe", entries).
			Return(&common.Recipe{ID: "r1", UserID: "u1", Title: "Zwiebelsuppe", Entries: entries}, nil)

		w := request(setupRouter(NewHandler(store)), http.MethodPost, "/recipes",
			`{"title":"Zwiebelsuppe","entries":[{"type":"ingredient","text":"2 Zwiebeln"},{"type":"step","text":"Schneiden"}]}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"r1"`)
		store.AssertExpectations(t)
	})

	t.Run("Unknown Entry Type", func(t *testing.T) {
		store := new(mockStore)
		w := request(setupRouter(NewHandler(store)), http.MethodPost, "/recipes",
			`{"title":"Suppe","entries":[{"type":"note","text":"x"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleGet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(mockStore)
		store.On("Get", mock.Anything, "r1", "u1").Return(&common.Recipe{ID: "r1", Title: "Salat"}, nil)

		w := request(setupRouter(NewHandler(store)), http.MethodGet, "/recipes/r1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Salat"`)
	})

	t.Run("Not Found", func(t *testing.T) {
		store := new(mockStore)
		store.On("Get", mock.Anything, "r9", "u1").Return(nil, common.ErrNotFound)

		w := request(setupRouter(NewHandler(store)), http.MethodGet, "/recipes/r9", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
