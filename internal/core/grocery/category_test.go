package grocery

import (
	"testing"

	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *CategoryResolver {
	t.Helper()
	rules, err := DefaultRules()
	require.NoError(t, err)
	return NewCategoryResolver(rules.KeywordGroups)
}

func suggestion(id, name string) common.CategorySuggestion {
	return common.CategorySuggestion{
		SuggestedCategoryID: common.StringPtr(id),
		CategoryName:        common.StringPtr(name),
		Confidence:          common.ConfidenceHigh,
	}
}

func TestCategoryResolver(t *testing.T) {
	r := newTestResolver(t)
	cats := []common.GroceryCategory{
		{ID: "c1", Value: "Fleisch"},
		{ID: "c2", Value: "Obst / Gemüse"},
		{ID: "c3", Value: "Milchprodukte"},
		{ID: "c4", Value: "Reis"},
	}

	tests := []struct {
		name       string
		ingredient string
		suggestion common.CategorySuggestion
		want       *string
	}{
		{"Direct ID Wins", "Hähnchenbrust", suggestion("c3", "Obst / Gemüse"), common.StringPtr("c3")},
		{"Direct ID Not Validated", "Hähnchenbrust", suggestion("unknown", ""), common.StringPtr("unknown")},
		{"Exact Category Name", "Paprika", suggestion("", "obst / gemüse"), common.StringPtr("c2")},
		{"Loose Category Name", "Äpfel", suggestion("", "Gemüse"), common.StringPtr("c2")},
		{"Name Token Match", "Joghurt", suggestion("", "Milch"), common.StringPtr("c3")},
		{"Keyword Table", "Hähnchenbrust", common.NullSuggestion("Hähnchenbrust"), common.StringPtr("c1")},
		{"Keyword Produce", "Zwiebeln", common.NullSuggestion("Zwiebeln"), common.StringPtr("c2")},
		{"Unmatched Name Falls Back To Keywords", "Rinderhack", suggestion("", "Getränke"), common.StringPtr("c1")},
		{"Label Containment", "Basmati Reis", common.NullSuggestion("Basmati Reis"), common.StringPtr("c4")},
		{"Nothing Matches", "Wasser", common.NullSuggestion("Wasser"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.ingredient, tt.suggestion, cats))
		})
	}
}

func TestCategoryResolverKeywordGroupWithoutCategory(t *testing.T) {
	r := newTestResolver(t)
	cats := []common.GroceryCategory{
		{ID: "c1", Value: "Fleisch"},
		{ID: "c9", Value: "Getränke"},
	}

	assert.Nil(t, r.Resolve("Zwiebeln", common.NullSuggestion("Zwiebeln"), cats))
	assert.Nil(t, r.Resolve("Zwiebeln", common.NullSuggestion("Zwiebeln"), nil))
}
