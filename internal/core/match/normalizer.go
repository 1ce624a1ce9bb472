package match

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalizer 將材料文字對應到標準產品名稱
//
// 別名依字元長度由長到短排序，第一個出現在文字中的別名勝出，
// 因此 "white rye" 會優先於同樣包含在文字中的 "rye"。
// 長度相同時保留詞彙表原順序。建立後唯讀，可同時被多個 goroutine 使用。
type Normalizer struct {
	aliases     []Alias
	fingerprint string
}

// NewNormalizer 建立 Normalizer
func NewNormalizer(vocab Vocabulary) *Normalizer {
	aliases := make([]Alias, len(vocab))
	copy(aliases, vocab)
	sort.SliceStable(aliases, func(i, j int) bool {
		return utf8.RuneCountInString(aliases[i].Text) > utf8.RuneCountInString(aliases[j].Text)
	})
	return &Normalizer{aliases: aliases, fingerprint: fingerprint(aliases)}
}

// Fingerprint 排序後別名表的 SHA-256；別名或順序改變時跟著改變
func (n *Normalizer) Fingerprint() string {
	return n.fingerprint
}

func fingerprint(aliases []Alias) string {
	h := sha256.New()
	for _, a := range aliases {
		h.Write([]byte(a.Text))
		h.Write([]byte{0})
		h.Write([]byte(a.Product))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Normalize 回傳材料文字對應的產品；沒有任何別名出現時 ok 為 false
func (n *Normalizer) Normalize(text string) (product string, ok bool) {
	folded := foldText(text)
	if folded == "" {
		return "", false
	}
	for _, a := range n.aliases {
		if strings.Contains(folded, a.Text) {
			return a.Product, true
		}
	}
	return "", false
}

// Required 計算食譜的需求產品集合，無法對應的材料直接略過
func (n *Normalizer) Required(r Recipe) RequiredSet {
	req := RequiredSet{Specific: make(map[string]struct{}, len(r.Ingredients))}
	for _, ing := range r.Ingredients {
		product, ok := n.Normalize(ing.Item)
		if !ok {
			continue
		}
		if product == AnySpirit {
			req.Wildcard = true
			continue
		}
		req.Specific[product] = struct{}{}
	}
	return req
}

// Aliases 排序後的別名（副本）
func (n *Normalizer) Aliases() []Alias {
	out := make([]Alias, len(n.aliases))
	copy(out, n.aliases)
	return out
}

// foldText NFKC 正規化後修剪並轉小寫
func foldText(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
