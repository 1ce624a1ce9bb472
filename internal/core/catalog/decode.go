package catalog

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

type recipeFile struct {
	CocktailRecipes []match.Recipe `json:"cocktail_recipes" yaml:"cocktail_recipes"`
}

type productFile struct {
	Products []Product `json:"products" yaml:"products"`
}

func isYAML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(name string, data []byte, v interface{}) error {
	if isYAML(name) {
		return yaml.Unmarshal(data, v)
	}
	return common.ParseJSONBytes(data, v)
}

// isList 第一個非空白字元是否為陣列開頭（YAML 序列也以 "-" 開頭）
func isList(name string, data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	if isYAML(name) {
		return trimmed[0] == '-' || trimmed[0] == '['
	}
	return trimmed[0] == '['
}

func decodeRecipes(name string, data []byte) ([]match.Recipe, error) {
	if isList(name, data) {
		var recipes []match.Recipe
		if err := unmarshal(name, data, &recipes); err != nil {
			return nil, err
		}
		return recipes, nil
	}

	var f recipeFile
	if err := unmarshal(name, data, &f); err != nil {
		return nil, err
	}
	if f.CocktailRecipes == nil {
		return nil, fmt.Errorf("missing %q", "cocktail_recipes")
	}
	return f.CocktailRecipes, nil
}

func decodeProducts(name string, data []byte) ([]Product, error) {
	if isList(name, data) {
		var products []Product
		if err := unmarshal(name, data, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	var f productFile
	if err := unmarshal(name, data, &f); err != nil {
		return nil, err
	}
	if f.Products == nil {
		return nil, fmt.Errorf("missing %q", "products")
	}
	return f.Products, nil
}
