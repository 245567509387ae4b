package grocery

import (
	"regexp"
	"strings"
)

var (
	// 前綴：「300g Hähnchenbrust」「2 Zwiebeln」「1,5 EL Honig」
	prefixPattern = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)?\s*(Messerspitze|Stück|Prise|Zehe|kg|mg|ml|cl|EL|TL|g|l)?\s+(.+)$`)

	// 後綴：「beef 300g」「eggs 2 pcs」
	suffixPattern = regexp.MustCompile(`(?i)^(.+?)\s+(\d+(?:[.,]\d+)?)\s*(pieces|pinch|cups|tbsp|tsp|pcs|kg|mg|ml|oz|lb|g|l)?$`)
)

// ParsedIngredient 解析後的食材
type ParsedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// ParseIngredient 將食材字串拆成名稱與數量，無法辨識時整串視為名稱
func ParseIngredient(raw string) ParsedIngredient {
	s := strings.TrimSpace(raw)

	if m := prefixPattern.FindStringSubmatch(s); m != nil {
		name := strings.TrimSpace(m[3])
		if name != "" {
			return ParsedIngredient{Name: name, Quantity: m[1] + m[2]}
		}
	}

	if m := suffixPattern.FindStringSubmatch(s); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" {
			return ParsedIngredient{Name: name, Quantity: m[2] + m[3]}
		}
	}

	return ParsedIngredient{Name: s}
}
