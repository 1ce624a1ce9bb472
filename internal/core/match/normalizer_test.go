package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	tests := []struct {
		name    string
		text    string
		want    string
		wantHit bool
	}{
		{name: "plain alias", text: "Bourbon", want: "KOVAL Bourbon", wantHit: true},
		{name: "longest alias wins over rye", text: "2 oz KOVAL White Rye", want: "KOVAL White Rye Whiskey", wantHit: true},
		{name: "maple rye", text: "maple rye whiskey", want: "KOVAL Maple Rye Whiskey", wantHit: true},
		{name: "plain rye", text: "Rye", want: "KOVAL Rye Whiskey", wantHit: true},
		{name: "infused vodka beats vodka", text: "Chili Infused Vodka", want: "KOVAL Infused Vodka", wantHit: true},
		{name: "wildcard", text: "Base Spirit of choice", want: AnySpirit, wantHit: true},
		{name: "trimmed and lowercased", text: "   COFFEE LIQUEUR  ", want: "KOVAL Coffee Liqueur", wantHit: true},
		{name: "substring is not word aware", text: "oat milk", want: "KOVAL Oat Whiskey", wantHit: true},
		{name: "full width text is folded", text: "ｖｏｄｋａ", want: "KOVAL Vodka", wantHit: true},
		{name: "no match", text: "Fresh lime juice", wantHit: false},
		{name: "empty", text: "   ", wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalize(tt.text)
			assert.Equal(t, tt.wantHit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_AliasOrder(t *testing.T) {
	n := NewNormalizer(Vocabulary{
		{Text: "ab", Product: "first"},
		{Text: "abc", Product: "longest"},
		{Text: "cd", Product: "second"},
	})

	aliases := n.Aliases()
	require.Len(t, aliases, 3)
	assert.Equal(t, "abc", aliases[0].Text)
	// equal length keeps table order
	assert.Equal(t, "ab", aliases[1].Text)
	assert.Equal(t, "cd", aliases[2].Text)

	got, ok := n.Normalize("xx cd ab yy")
	require.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestNormalizer_Fingerprint(t *testing.T) {
	a := NewNormalizer(DefaultVocabulary())
	b := NewNormalizer(DefaultVocabulary())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	changed := append(DefaultVocabulary(), Alias{Text: "koval cranberry gin liqueur", Product: "KOVAL Cranberry Gin Liqueur"})
	assert.NotEqual(t, a.Fingerprint(), NewNormalizer(changed).Fingerprint())

	retargeted := DefaultVocabulary()
	retargeted[0].Product = "Other"
	assert.NotEqual(t, a.Fingerprint(), NewNormalizer(retargeted).Fingerprint())
}

func TestNormalizer_DoesNotAliasInput(t *testing.T) {
	vocab := Vocabulary{{Text: "a", Product: "A"}, {Text: "bb", Product: "B"}}
	_ = NewNormalizer(vocab)
	assert.Equal(t, "a", vocab[0].Text)
}

func TestRequired(t *testing.T) {
	n := NewNormalizer(DefaultVocabulary())

	r := Recipe{
		Name: "Espresso Mule",
		Ingredients: []Ingredient{
			{Item: "Base Spirit"},
			{Item: "KOVAL Coffee Liqueur"},
			{Item: "Ginger beer"},
			{Item: "Lime wedge"},
		},
	}

	req := n.Required(r)
	assert.True(t, req.Wildcard)
	assert.Equal(t, []string{"KOVAL Coffee Liqueur", AnySpirit}, req.Products())
	assert.False(t, req.Empty())

	none := n.Required(Recipe{Name: "Lemonade", Ingredients: []Ingredient{{Item: "lemon"}, {Item: "sugar"}}})
	assert.True(t, none.Empty())
}
