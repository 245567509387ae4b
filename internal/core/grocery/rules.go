package grocery

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// StapleLists 常備品字詞表
type StapleLists struct {
	Oils       []string `yaml:"oils"`
	Pasta      []string `yaml:"pasta"`
	Seasonings []string `yaml:"seasonings"`
}

// KeywordGroup 關鍵字與目標分類標籤的對應
type KeywordGroup struct {
	Name         string   `yaml:"name"`
	Keywords     []string `yaml:"keywords"`
	LabelPattern string   `yaml:"label_pattern"`

	label *regexp.Regexp
}

// MatchesLabel 分類標籤是否符合此群組
func (g *KeywordGroup) MatchesLabel(label string) bool {
	return g.label != nil && g.label.MatchString(label)
}

// Rules 對帳引擎使用的靜態資料
type Rules struct {
	Staples       StapleLists    `yaml:"staples"`
	KeywordGroups []KeywordGroup `yaml:"keyword_groups"`
}

// DefaultRules 載入內建規則
func DefaultRules() (*Rules, error) {
	return ParseRules(defaultRulesYAML)
}

// LoadRules 從檔案載入規則，path 為空時使用內建規則
func LoadRules(path string) (*Rules, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules 解析 YAML 規則並編譯標籤樣式
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	r.Staples.Oils = lowerAll(r.Staples.Oils)
	r.Staples.Pasta = lowerAll(r.Staples.Pasta)
	r.Staples.Seasonings = lowerAll(r.Staples.Seasonings)

	for i := range r.KeywordGroups {
		g := &r.KeywordGroups[i]
		g.Keywords = lowerAll(g.Keywords)
		if g.LabelPattern == "" {
			return nil, fmt.Errorf("keyword group %q has no label_pattern", g.Name)
		}
		re, err := regexp.Compile("(?i)" + g.LabelPattern)
		if err != nil {
			return nil, fmt.Errorf("keyword group %q: invalid label_pattern: %w", g.Name, err)
		}
		g.label = re
	}

	return &r, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
