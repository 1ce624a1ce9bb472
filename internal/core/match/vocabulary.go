package match

import (
	"errors"
	"fmt"
	"strings"
)

// AnySpirit 萬用產品：代表產品線中任一基酒皆可
const AnySpirit = "ANY_SPIRIT"

// ErrInvalidVocabulary 詞彙表格式錯誤
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Alias 別名對應：小寫文字片段 -> 標準產品名稱
type Alias struct {
	Text    string `json:"alias" yaml:"alias"`
	Product string `json:"product" yaml:"product"`
}

// Vocabulary 有序的別名表，順序只在別名長度相同時有影響
type Vocabulary []Alias

// DefaultVocabulary 內建的 KOVAL 產品詞彙表
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		// whiskey
		{Text: "bourbon", Product: "KOVAL Bourbon"},
		{Text: "four grain", Product: "KOVAL Four Grain Whiskey"},
		{Text: "oat", Product: "KOVAL Oat Whiskey"},
		{Text: "rye", Product: "KOVAL Rye Whiskey"},
		{Text: "white rye", Product: "KOVAL White Rye Whiskey"},
		{Text: "amburana rye", Product: "KOVAL Amburana Rye Whiskey"},
		{Text: "maple rye", Product: "KOVAL Maple Rye Whiskey"},
		// mules and call drinks take whatever base spirit the guest picks
		{Text: "base spirit", Product: AnySpirit},

		// gin
		{Text: "dry gin", Product: "KOVAL Dry Gin"},
		{Text: "barrel aged gin", Product: "KOVAL Barreled Gin"},
		{Text: "cranberry gin", Product: "KOVAL Cranberry Gin Liqueur"},

		// liqueur
		{Text: "coffee liqueur", Product: "KOVAL Coffee Liqueur"},
		{Text: "rosehip liqueur", Product: "KOVAL Rose Hip Liqueur"},
		{Text: "honey & chrysanthemum liqueur", Product: "KOVAL Chrysanthemum & Honey Liqueur"},
		{Text: "ginger liqueur", Product: "KOVAL Ginger Liqueur"},
		{Text: "caraway liqueur", Product: "KOVAL Caraway Liqueur"},

		// vodka
		{Text: "chili infused vodka", Product: "KOVAL Infused Vodka"},
		{Text: "vodka", Product: "KOVAL Vodka"},
	}
}

// Validate 檢查詞彙表：別名需為非空、已修剪的小寫字串且不可重複，產品名稱不可為空
func (v Vocabulary) Validate() error {
	if len(v) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvalidVocabulary)
	}
	seen := make(map[string]struct{}, len(v))
	for i, a := range v {
		if a.Text == "" {
			return fmt.Errorf("%w: entry %d has empty alias", ErrInvalidVocabulary, i)
		}
		if a.Text != strings.ToLower(strings.TrimSpace(a.Text)) {
			return fmt.Errorf("%w: alias %q must be trimmed lowercase", ErrInvalidVocabulary, a.Text)
		}
		if strings.TrimSpace(a.Product) == "" {
			return fmt.Errorf("%w: alias %q has empty product", ErrInvalidVocabulary, a.Text)
		}
		if _, dup := seen[a.Text]; dup {
			return fmt.Errorf("%w: duplicate alias %q", ErrInvalidVocabulary, a.Text)
		}
		seen[a.Text] = struct{}{}
	}
	return nil
}

// Products 詞彙表中出現的具體產品（不含萬用產品），依首次出現順序
func (v Vocabulary) Products() []string {
	seen := make(map[string]struct{}, len(v))
	out := make([]string, 0, len(v))
	for _, a := range v {
		if a.Product == AnySpirit {
			continue
		}
		if _, ok := seen[a.Product]; ok {
			continue
		}
		seen[a.Product] = struct{}{}
		out = append(out, a.Product)
	}
	return out
}
