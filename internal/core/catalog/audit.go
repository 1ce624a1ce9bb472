package catalog

import (
	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Unmapped 無法對應任何產品的材料
type Unmapped struct {
	Recipe string
	Item   string
}

// UnmappedIngredients 列出所有無法對應的材料
func (c *Catalog) UnmappedIngredients(n *match.Normalizer) []Unmapped {
	var out []Unmapped
	for _, r := range c.Recipes {
		for _, ing := range r.Ingredients {
			if _, ok := n.Normalize(ing.Item); !ok {
				out = append(out, Unmapped{Recipe: r.Name, Item: ing.Item})
			}
		}
	}
	return out
}

// UnmatchableRecipes 需求集合為空的食譜；這些食譜只會出現在「全部食譜」
func (c *Catalog) UnmatchableRecipes(n *match.Normalizer) []string {
	var out []string
	for _, r := range c.Recipes {
		if n.Required(r).Empty() {
			out = append(out, r.Name)
		}
	}
	return out
}

// LogAudit 啟動時記錄對應狀況
func (c *Catalog) LogAudit(n *match.Normalizer) {
	unmapped := c.UnmappedIngredients(n)
	if len(unmapped) > 0 {
		common.LogWarn("Ingredients without a matching product", zap.Int("count", len(unmapped)))
	}
	for _, u := range unmapped {
		common.LogDebug("Ingredient has no product",
			zap.String("recipe", u.Recipe),
			zap.String("item", u.Item),
		)
	}

	if names := c.UnmatchableRecipes(n); len(names) > 0 {
		common.LogWarn("Recipes without any product requirement are only shown in view-all",
			zap.Strings("recipes", names),
		)
	}
}
