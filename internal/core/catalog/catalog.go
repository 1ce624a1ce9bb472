package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCatalog 食譜或產品資料格式錯誤
var ErrInvalidCatalog = errors.New("invalid catalog")

// Product 產品線中的一項產品
type Product struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Catalog 啟動時載入一次的唯讀資料
type Catalog struct {
	Recipes  []match.Recipe
	Products []Product
	// Version 原始資料的 SHA-256，作為快取鍵的一部分
	Version string
	Source  string
}

// Files 資料檔名
type Files struct {
	Recipes  string
	Products string
}

// DefaultFiles 預設檔名
func DefaultFiles() Files {
	return Files{Recipes: "recipes.json", Products: "products.json"}
}

// Load 從來源同時讀取食譜與產品並驗證
func Load(ctx context.Context, src Source, files Files) (*Catalog, error) {
	var recipesRaw, productsRaw []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := src.ReadFile(gctx, files.Recipes)
		if err != nil {
			return fmt.Errorf("failed to read recipes %q from %s: %w", files.Recipes, src.Describe(), err)
		}
		recipesRaw = data
		return nil
	})
	g.Go(func() error {
		data, err := src.ReadFile(gctx, files.Products)
		if err != nil {
			return fmt.Errorf("failed to read products %q from %s: %w", files.Products, src.Describe(), err)
		}
		productsRaw = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes, err := decodeRecipes(files.Recipes, recipesRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: recipes: %v", ErrInvalidCatalog, err)
	}
	products, err := decodeProducts(files.Products, productsRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: products: %v", ErrInvalidCatalog, err)
	}

	cat := &Catalog{
		Recipes:  recipes,
		Products: products,
		Version:  version(recipesRaw, productsRaw),
		Source:   src.Describe(),
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	common.LogInfo("Catalog loaded",
		zap.String("source", cat.Source),
		zap.Int("recipes", len(cat.Recipes)),
		zap.Int("products", len(cat.Products)),
		zap.String("version", cat.ShortVersion()),
	)
	return cat, nil
}

// Validate 檢查必要欄位
func (c *Catalog) Validate() error {
	if len(c.Recipes) == 0 {
		return fmt.Errorf("%w: no recipes", ErrInvalidCatalog)
	}
	names := make(map[string]struct{}, len(c.Recipes))
	for i, r := range c.Recipes {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: recipe %d has no name", ErrInvalidCatalog, i)
		}
		if _, dup := names[r.Name]; dup {
			return fmt.Errorf("%w: duplicate recipe %q", ErrInvalidCatalog, r.Name)
		}
		names[r.Name] = struct{}{}
		for j, ing := range r.Ingredients {
			if strings.TrimSpace(ing.Item) == "" {
				return fmt.Errorf("%w: recipe %q ingredient %d has no item", ErrInvalidCatalog, r.Name, j)
			}
		}
	}
	for i, p := range c.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: product %d has no name", ErrInvalidCatalog, i)
		}
	}
	return nil
}

// ShortVersion 前 12 碼版本
func (c *Catalog) ShortVersion() string {
	if len(c.Version) <= 12 {
		return c.Version
	}
	return c.Version[:12]
}

// FindRecipe 依名稱查詢食譜
func (c *Catalog) FindRecipe(name string) (match.Recipe, bool) {
	for _, r := range c.Recipes {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return match.Recipe{}, false
}

// ProductNames 產品名稱列表
func (c *Catalog) ProductNames() []string {
	out := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		out = append(out, p.Name)
	}
	return out
}

func version(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
