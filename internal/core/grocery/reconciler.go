package grocery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-grocery/internal/pkg/common"

	"go.uber.org/zap"
)

// Reconciler 將食譜食材合併進使用者的購物清單
type Reconciler struct {
	store     GroceryStore
	suggester Suggester
	staples   *StaplesFilter
	resolver  *CategoryResolver
}

// NewReconciler 創建對帳器，suggester 可為 nil（只使用靜態規則）
func NewReconciler(store GroceryStore, suggester Suggester, rules *Rules) *Reconciler {
	return &Reconciler{
		store:     store,
		suggester: suggester,
		staples:   NewStaplesFilter(rules.Staples),
		resolver:  NewCategoryResolver(rules.KeywordGroups),
	}
}

// Reconcile 依序處理每個食材：常備品跳過，同名項目合併數量，其餘新增。
// 單一食材失敗只會計入 Failed，不會中斷其他食材。
// existing 是開始時的快照，本次新增的項目不會被後續食材合併。
func (r *Reconciler) Reconcile(ctx context.Context, userID string, ingredients []string, existing []common.GroceryItem, categories []common.GroceryCategory) *Result {
	result := &Result{}
	if len(ingredients) == 0 {
		result.Message = "Recipe has no ingredients to add"
		return result
	}

	start := time.Now()
	suggestions := r.suggest(ctx, ingredients, categories)

	for i, raw := range ingredients {
		if r.staples.ShouldSkip(raw) {
			result.Skipped++
			common.LogDebug("Skipped pantry staple", zap.String("ingredient", raw))
			continue
		}

		updated, err := r.apply(ctx, userID, raw, suggestions[i], existing, categories)
		switch {
		case err != nil:
			result.Failed++
			common.LogWarn("Failed to reconcile ingredient",
				zap.String("user_id", userID),
				zap.String("ingredient", raw),
				zap.Error(err),
			)
		case updated:
			result.Updated++
		default:
			result.Added++
		}
	}

	result.Message = buildMessage(result)

	common.LogInfo("Reconciliation completed",
		zap.String("user_id", userID),
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("耗時", time.Since(start)),
	)

	return result
}

// suggest 只呼叫一次 AI，失敗時整批退回空建議
func (r *Reconciler) suggest(ctx context.Context, ingredients []string, categories []common.GroceryCategory) []common.CategorySuggestion {
	out := make([]common.CategorySuggestion, len(ingredients))
	for i, ing := range ingredients {
		out[i] = common.NullSuggestion(ing)
	}
	if r.suggester == nil {
		return out
	}

	got, err := r.suggester.Suggest(ctx, ingredients, categories)
	if err != nil {
		common.LogWarn("Category suggestions unavailable, using heuristics",
			zap.Int("ingredients", len(ingredients)),
			zap.Error(err),
		)
		return out
	}

	return alignSuggestions(ingredients, got, out)
}

// alignSuggestions 依位置對應建議；位置不符時改以完全相同的食材名稱對應
func alignSuggestions(ingredients []string, got, out []common.CategorySuggestion) []common.CategorySuggestion {
	byName := make(map[string]common.CategorySuggestion, len(got))
	for _, s := range got {
		if _, ok := byName[s.IngredientName]; !ok {
			byName[s.IngredientName] = s
		}
	}
	for i, ing := range ingredients {
		if i < len(got) && got[i].IngredientName == ing {
			out[i] = got[i]
			continue
		}
		if s, ok := byName[ing]; ok {
			out[i] = s
		}
	}
	return out
}

// apply 處理單一食材，返回是否為更新既有項目
func (r *Reconciler) apply(ctx context.Context, userID, raw string, suggestion common.CategorySuggestion, existing []common.GroceryItem, categories []common.GroceryCategory) (updated bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while reconciling %q: %v", raw, p)
		}
	}()

	parsed := ParseIngredient(raw)

	if match := findByTitle(existing, parsed.Name); match != nil {
		_, err := r.store.Update(ctx, match.ID, userID, common.GroceryInput{
			Title: match.Title,
			Menge: MergeQuantities(match.Menge, parsed.Quantity),
			Done:  match.Done,
		})
		if err != nil {
			return false, fmt.Errorf("failed to update grocery %s: %w", match.ID, err)
		}
		return true, nil
	}

	in := common.GroceryInput{
		Title: parsed.Name,
		Menge: parsed.Quantity,
		Done:  false,
	}
	if id := r.resolver.Resolve(parsed.Name, suggestion, categories); id != nil {
		in.CategoryIDs = []string{*id}
	}
	if _, err := r.store.Create(ctx, userID, in); err != nil {
		return false, fmt.Errorf("failed to create grocery %q: %w", parsed.Name, err)
	}
	return false, nil
}

func findByTitle(items []common.GroceryItem, name string) *common.GroceryItem {
	want := common.NormalizeTitle(name)
	for i := range items {
		if common.NormalizeTitle(items[i].Title) == want {
			return &items[i]
		}
	}
	return nil
}

func buildMessage(r *Result) string {
	var parts []string
	if r.Added > 0 {
		parts = append(parts, fmt.Sprintf("added %d new items", r.Added))
	}
	if r.Updated > 0 {
		parts = append(parts, fmt.Sprintf("updated %d existing items", r.Updated))
	}

	var sb strings.Builder
	if len(parts) > 0 {
		sb.WriteString("Successfully " + strings.Join(parts, " and "))
	} else {
		sb.WriteString("No grocery items were added or updated")
	}
	if r.Skipped > 0 {
		sb.WriteString(fmt.Sprintf(" (skipped %d pantry staples)", r.Skipped))
	}
	if r.Failed > 0 {
		sb.WriteString(fmt.Sprintf(" (%d failed)", r.Failed))
	}
	return sb.String()
}
