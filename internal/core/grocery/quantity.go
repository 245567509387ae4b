package grocery

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var quantityPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*(\p{L}*)$`)

var thousand = decimal.NewFromInt(1000)

// 大單位 -> 小單位
var smallerUnit = map[string]string{
	"kg": "g",
	"l":  "ml",
}

type quantity struct {
	value decimal.Decimal
	unit  string
}

func parseQuantity(s string) (quantity, bool) {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return quantity{}, false
	}
	v, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
	if err != nil {
		return quantity{}, false
	}
	return quantity{value: v, unit: strings.ToLower(m[2])}, true
}

// normalize 將 kg/g、l/ml 對齊到較小的單位
func normalize(a, b quantity) (quantity, quantity) {
	if small, ok := smallerUnit[a.unit]; ok && b.unit == small {
		a = quantity{value: a.value.Mul(thousand), unit: small}
	}
	if small, ok := smallerUnit[b.unit]; ok && a.unit == small {
		b = quantity{value: b.value.Mul(thousand), unit: small}
	}
	return a, b
}

// MergeQuantities 合併兩個數量字串。單位相同（含 kg/g、l/ml 換算）時相加，
// 否則保留原文以 " + " 連接，交由使用者處理。
func MergeQuantities(existing, incoming string) string {
	if strings.TrimSpace(existing) == "" {
		return incoming
	}
	if strings.TrimSpace(incoming) == "" {
		return existing
	}

	a, okA := parseQuantity(existing)
	b, okB := parseQuantity(incoming)
	if okA && okB {
		a, b = normalize(a, b)
		if a.unit == b.unit {
			return a.value.Add(b.value).String() + a.unit
		}
	}

	return existing + " + " + incoming
}
