package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const yamlRecipes = `cocktail_recipes:
  - name: Vodka Soda
    ingredients:
      - item: KOVAL Vodka
        amount: 2 oz
      - item: Soda water
  - name: Mule
    ingredients:
      - item: Base Spirit
`

const yamlProducts = `- name: KOVAL Vodka
  category: Vodka
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Embedded(t *testing.T) {
	cat, err := Load(context.Background(), NewSource("", SourceOptions{}), DefaultFiles())
	require.NoError(t, err)

	assert.Equal(t, SourceEmbedded, cat.Source)
	assert.NotEmpty(t, cat.Recipes)
	assert.NotEmpty(t, cat.Products)
	assert.Len(t, cat.Version, 64)
	assert.Len(t, cat.ShortVersion(), 12)

	r, ok := cat.FindRecipe("espresso mule")
	require.True(t, ok)
	assert.Equal(t, "Espresso Mule", r.Name)
}

func TestEmbeddedProductsMatchVocabulary(t *testing.T) {
	cat, err := Load(context.Background(), EmbeddedSource{}, DefaultFiles())
	require.NoError(t, err)
	assert.ElementsMatch(t, match.DefaultVocabulary().Products(), cat.ProductNames())
}

func TestLoad_DirYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.yaml", yamlRecipes)
	writeFile(t, dir, "products.yml", yamlProducts)

	cat, err := Load(context.Background(), NewSource(dir, SourceOptions{}), Files{Recipes: "recipes.yaml", Products: "products.yml"})
	require.NoError(t, err)

	require.Len(t, cat.Recipes, 2)
	assert.Equal(t, "Vodka Soda", cat.Recipes[0].Name)
	assert.Equal(t, "2 oz", cat.Recipes[0].Ingredients[0].Amount)
	assert.Equal(t, []string{"KOVAL Vodka"}, cat.ProductNames())
	assert.Equal(t, "dir:"+dir, cat.Source)
}

func TestLoad_DirJSONArrays(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.json", `[{"name":"A","ingredients":[{"item":"vodka"}]}]`)
	writeFile(t, dir, "products.json", `[{"name":"KOVAL Vodka"}]`)

	cat, err := Load(context.Background(), DirSource{Dir: dir}, DefaultFiles())
	require.NoError(t, err)
	assert.Len(t, cat.Recipes, 1)
	assert.Len(t, cat.Products, 1)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		recipes  string
		products string
	}{
		{name: "missing recipes key", recipes: `{"recipes": []}`, products: `[]`},
		{name: "no recipes", recipes: `{"cocktail_recipes": []}`, products: `[]`},
		{name: "recipe without name", recipes: `{"cocktail_recipes": [{"ingredients": []}]}`, products: `[]`},
		{name: "ingredient without item", recipes: `{"cocktail_recipes": [{"name": "A", "ingredients": [{"amount": "1 oz"}]}]}`, products: `[]`},
		{name: "duplicate recipe", recipes: `[{"name":"A","ingredients":[]},{"name":"A","ingredients":[]}]`, products: `[]`},
		{name: "product without name", recipes: `[{"name":"A","ingredients":[]}]`, products: `[{"category":"Gin"}]`},
		{name: "malformed json", recipes: `{"cocktail_recipes": [`, products: `[]`},
		{name: "trailing data", recipes: `[{"name":"A","ingredients":[]}] []`, products: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "recipes.json", tt.recipes)
			writeFile(t, dir, "products.json", tt.products)

			_, err := Load(context.Background(), DirSource{Dir: dir}, DefaultFiles())
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tests := []struct {
		name    string
		recipes string
	}{
		{name: "numeric item", recipes: "cocktail_recipes:\n  - name: A\n    ingredients:\n      - item: 123\n"},
		{name: "boolean item", recipes: "cocktail_recipes:\n  - name: A\n    ingredients:\n      - item: true\n"},
		{name: "list item", recipes: "cocktail_recipes:\n  - name: A\n    ingredients:\n      - item: [rye]\n"},
		{name: "numeric amount", recipes: "- name: A\n  ingredients:\n    - item: KOVAL Rye\n      amount: 2\n"},
		{name: "null item", recipes: "- name: A\n  ingredients:\n    - item: ~\n"},
		{name: "ingredient not a mapping", recipes: "- name: A\n  ingredients:\n    - KOVAL Rye\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "recipes.yaml", tt.recipes)
			writeFile(t, dir, "products.yaml", "products:\n  - name: KOVAL Rye Whiskey\n")

			_, err := Load(context.Background(), DirSource{Dir: dir}, Files{Recipes: "recipes.yaml", Products: "products.yaml"})
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_YAMLQuotedNumberIsText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.yaml", "- name: A\n  ingredients:\n    - item: \"151 rum\"\n      amount: \"2 oz\"\n")
	writeFile(t, dir, "products.yaml", "[]\n")

	cat, err := Load(context.Background(), DirSource{Dir: dir}, Files{Recipes: "recipes.yaml", Products: "products.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "151 rum", cat.Recipes[0].Ingredients[0].Item)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.json", `[{"name":"A","ingredients":[]}]`)

	_, err := Load(context.Background(), DirSource{Dir: dir}, DefaultFiles())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products.json")
}

func TestDirSource_RejectsTraversal(t *testing.T) {
	_, err := DirSource{Dir: t.TempDir()}.ReadFile(context.Background(), "../secret.json")
	assert.Error(t, err)
}

func TestLoad_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog/recipes.json":
			w.Write([]byte(`{"cocktail_recipes":[{"name":"Remote Sour","ingredients":[{"item":"rye"}]}]}`))
		case "/catalog/products.json":
			w.Write([]byte(`{"products":[{"name":"KOVAL Rye Whiskey"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewSource(srv.URL+"/catalog/", SourceOptions{Timeout: time.Second})
	assert.Equal(t, "remote:"+srv.URL+"/catalog", src.Describe())

	cat, err := Load(context.Background(), src, DefaultFiles())
	require.NoError(t, err)
	assert.Equal(t, "Remote Sour", cat.Recipes[0].Name)
}

func TestRemoteSource_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewRemoteSource(srv.URL, SourceOptions{Timeout: time.Second}).ReadFile(context.Background(), "recipes.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestAudit(t *testing.T) {
	cat := &Catalog{Recipes: []match.Recipe{
		{Name: "Vodka Soda", Ingredients: []match.Ingredient{{Item: "vodka"}, {Item: "soda"}}},
		{Name: "Shirley Temple", Ingredients: []match.Ingredient{{Item: "ginger ale"}}},
	}}
	n := match.NewNormalizer(match.DefaultVocabulary())

	assert.Equal(t, []Unmapped{
		{Recipe: "Vodka Soda", Item: "soda"},
		{Recipe: "Shirley Temple", Item: "ginger ale"},
	}, cat.UnmappedIngredients(n))
	assert.Equal(t, []string{"Shirley Temple"}, cat.UnmatchableRecipes(n))

	core, logs := observer.New(zapcore.DebugLevel)
	prev := common.Logger
	common.Logger = zap.New(core)
	t.Cleanup(func() { common.Logger = prev })

	cat.LogAudit(n)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 2)
	assert.Equal(t, "Ingredients without a matching product", warns[0].Message)
	assert.Equal(t, int64(2), warns[0].ContextMap()["count"])
	assert.Equal(t, 2, logs.FilterMessage("Ingredient has no product").Len())
}
