package match

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ingredient 食譜中的單一材料，Item 為自由文字描述
type Ingredient struct {
	Item   string `json:"item" yaml:"item"`
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// UnmarshalYAML 文字欄位必須是字串；yaml.v3 預設會把 123、true 轉成字串
func (i *Ingredient) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: ingredient must be a mapping", node.Line)
	}
	for k := 0; k+1 < len(node.Content); k += 2 {
		key, val := node.Content[k], node.Content[k+1]
		if key.Value != "item" && key.Value != "amount" {
			continue
		}
		if val.Kind != yaml.ScalarNode || (val.ShortTag() != "!!str" && val.ShortTag() != "!!null") {
			return fmt.Errorf("line %d: ingredient %s must be a string, got %s", val.Line, key.Value, val.ShortTag())
		}
	}

	type plain Ingredient
	return node.Decode((*plain)(i))
}

// Recipe 雞尾酒食譜
type Recipe struct {
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Category     string       `json:"category,omitempty" yaml:"category,omitempty"`
	Glassware    string       `json:"glassware,omitempty" yaml:"glassware,omitempty"`
	Garnish      string       `json:"garnish,omitempty" yaml:"garnish,omitempty"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions string       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// RequiredSet 食譜需要的產品集合
//
// Specific 不含萬用產品；Wildcard 表示食譜接受任一基酒
type RequiredSet struct {
	Specific map[string]struct{}
	Wildcard bool
}

// Empty 是否沒有任何需求（含萬用）
func (r RequiredSet) Empty() bool {
	return len(r.Specific) == 0 && !r.Wildcard
}

// Products 依字母排序回傳需求產品，萬用產品排在最後
func (r RequiredSet) Products() []string {
	out := sortedKeys(r.Specific)
	if r.Wildcard {
		out = append(out, AnySpirit)
	}
	return out
}
