package match

import (
	"fmt"
	"sort"
	"strings"
)

// Selection 使用者所選的產品集合
type Selection map[string]struct{}

// NewSelection 建立選取集合，修剪空白並略過空字串
func NewSelection(products ...string) Selection {
	sel := make(Selection, len(products))
	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sel[p] = struct{}{}
	}
	return sel
}

// Contains 是否包含指定產品
func (s Selection) Contains(product string) bool {
	_, ok := s[product]
	return ok
}

// Sorted 依字母排序的產品名稱
func (s Selection) Sorted() []string {
	return sortedKeys(s)
}

// Matcher 依比對策略過濾食譜
type Matcher struct {
	normalizer *Normalizer
}

// NewMatcher 建立 Matcher
func NewMatcher(n *Normalizer) *Matcher {
	return &Matcher{normalizer: n}
}

// Normalizer 回傳使用中的 Normalizer
func (m *Matcher) Normalizer() *Normalizer {
	return m.normalizer
}

// Prepare 預先計算每道食譜的需求集合，結果與輸入順序一致
func (m *Matcher) Prepare(recipes []Recipe) []RequiredSet {
	out := make([]RequiredSet, len(recipes))
	for i, r := range recipes {
		out[i] = m.normalizer.Required(r)
	}
	return out
}

// Filter 回傳符合策略的食譜，保留原始順序
func (m *Matcher) Filter(recipes []Recipe, sel Selection, policy Policy) ([]Recipe, error) {
	idx, err := MatchIndexes(m.Prepare(recipes), sel, policy)
	if err != nil {
		return nil, err
	}
	out := make([]Recipe, 0, len(idx))
	for _, i := range idx {
		out = append(out, recipes[i])
	}
	return out, nil
}

// Matches 單一食譜是否符合
func (m *Matcher) Matches(r Recipe, sel Selection, policy Policy) (bool, error) {
	return Evaluate(m.normalizer.Required(r), sel, policy)
}

// MatchIndexes 回傳符合策略的需求集合索引（遞增）
func MatchIndexes(required []RequiredSet, sel Selection, policy Policy) ([]int, error) {
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, string(policy))
	}
	out := make([]int, 0)
	for i, req := range required {
		ok, _ := Evaluate(req, sel, policy)
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// Evaluate 判斷需求集合在指定策略下是否被選取集合滿足
//
// 空選取永遠不符合。ANY：有交集，或食譜接受任一基酒。
// ALL（無萬用）：選取集合必須是需求集合的子集。
// ALL（有萬用）：有交集，或除萬用外沒有其他需求。
func Evaluate(req RequiredSet, sel Selection, policy Policy) (bool, error) {
	if !policy.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidPolicy, string(policy))
	}
	if len(sel) == 0 {
		return false, nil
	}

	switch policy {
	case PolicyAny:
		return req.Wildcard || overlaps(req.Specific, sel), nil
	default:
		if !req.Wildcard {
			return isSubset(sel, req.Specific), nil
		}
		return overlaps(req.Specific, sel) || len(req.Specific) == 0, nil
	}
}

func overlaps(specific map[string]struct{}, sel Selection) bool {
	for p := range sel {
		if _, ok := specific[p]; ok {
			return true
		}
	}
	return false
}

func isSubset(sel Selection, specific map[string]struct{}) bool {
	for p := range sel {
		if _, ok := specific[p]; !ok {
			return false
		}
	}
	return true
}

func sortedKeys[M ~map[string]struct{}](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
