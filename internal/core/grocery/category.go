package grocery

import (
	"strings"

	"recipe-grocery/internal/pkg/common"
)

// CategoryResolver 依序以 AI 分類 ID、AI 分類名稱、關鍵字表、標籤包含關係決定分類
type CategoryResolver struct {
	groups []KeywordGroup
}

// NewCategoryResolver 創建分類解析器
func NewCategoryResolver(groups []KeywordGroup) *CategoryResolver {
	return &CategoryResolver{groups: groups}
}

// Resolve 返回分類 ID，找不到時返回 nil
func (r *CategoryResolver) Resolve(ingredient string, s common.CategorySuggestion, categories []common.GroceryCategory) *string {
	if s.SuggestedCategoryID != nil && *s.SuggestedCategoryID != "" {
		id := *s.SuggestedCategoryID
		return &id
	}

	if s.CategoryName != nil {
		if id := matchCategoryName(*s.CategoryName, categories); id != nil {
			return id
		}
	}

	name := strings.ToLower(strings.TrimSpace(ingredient))

	if id := r.matchKeywords(name, categories); id != nil {
		return id
	}

	for _, c := range categories {
		label := strings.ToLower(strings.TrimSpace(c.Value))
		if label != "" && strings.Contains(name, label) {
			id := c.ID
			return &id
		}
	}

	return nil
}

// matchCategoryName 先比對完全相同的標籤，再比對寬鬆包含（支援「Obst / Gemüse」這類組合標籤）
func matchCategoryName(categoryName string, categories []common.GroceryCategory) *string {
	want := strings.ToLower(strings.TrimSpace(categoryName))
	if want == "" {
		return nil
	}

	for _, c := range categories {
		if strings.ToLower(strings.TrimSpace(c.Value)) == want {
			id := c.ID
			return &id
		}
	}

	for _, c := range categories {
		label := strings.ToLower(strings.TrimSpace(c.Value))
		if label == "" {
			continue
		}
		if strings.Contains(label, want) || strings.Contains(want, label) || anyTokenIn(label, want) {
			id := c.ID
			return &id
		}
	}

	return nil
}

func anyTokenIn(label, text string) bool {
	tokens := strings.FieldsFunc(label, func(r rune) bool {
		return r == '/' || r == ' '
	})
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func (r *CategoryResolver) matchKeywords(name string, categories []common.GroceryCategory) *string {
	for i := range r.groups {
		g := &r.groups[i]
		if !containsAny(name, g.Keywords) {
			continue
		}
		for _, c := range categories {
			if g.MatchesLabel(strings.TrimSpace(c.Value)) {
				id := c.ID
				return &id
			}
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
