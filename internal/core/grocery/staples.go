package grocery

import "strings"

// StaplesFilter 判斷食材是否為常備品（油、麵、調味料），常備品不加入購物清單
type StaplesFilter struct {
	terms []string
}

// NewStaplesFilter 以規則中的三組字詞表建立過濾器
func NewStaplesFilter(lists StapleLists) *StaplesFilter {
	terms := make([]string, 0, len(lists.Oils)+len(lists.Pasta)+len(lists.Seasonings))
	terms = append(terms, lists.Oils...)
	terms = append(terms, lists.Pasta...)
	terms = append(terms, lists.Seasonings...)
	return &StaplesFilter{terms: terms}
}

// ShouldSkip 名稱與字詞完全相同，或以整個單字出現在開頭、結尾、中間時返回 true
func (f *StaplesFilter) ShouldSkip(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, term := range f.terms {
		if n == term ||
			strings.HasPrefix(n, term+" ") ||
			strings.HasSuffix(n, " "+term) ||
			strings.Contains(n, " "+term+" ") {
			return true
		}
	}
	return false
}
