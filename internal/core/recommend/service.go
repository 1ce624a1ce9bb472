package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"cocktail-recommender/internal/core/cache"
	"cocktail-recommender/internal/core/catalog"
	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Result 推薦結果
type Result struct {
	Recipes  []match.Recipe
	ViewAll  bool
	CacheHit bool
}

// Service 推薦服務；catalog 與預先計算的需求集合在建立後唯讀
type Service struct {
	catalog  *catalog.Catalog
	matcher  *match.Matcher
	required []match.RequiredSet
	cache    cache.Store
}

// NewService 建立推薦服務；store 可為 nil
func NewService(cat *catalog.Catalog, matcher *match.Matcher, store cache.Store) (*Service, error) {
	if cat == nil || matcher == nil {
		return nil, fmt.Errorf("catalog and matcher are required")
	}
	return &Service{
		catalog:  cat,
		matcher:  matcher,
		required: matcher.Prepare(cat.Recipes),
		cache:    store,
	}, nil
}

// Recommend 依請求回傳食譜
func (s *Service) Recommend(ctx context.Context, pq ParsedQuery) (*Result, error) {
	if pq.ViewAll {
		recommendRequests.WithLabelValues("view_all", "ok").Inc()
		return &Result{Recipes: s.catalog.Recipes, ViewAll: true}, nil
	}

	policy := pq.Policy.String()
	key := s.cacheKey(pq)

	if idx, ok := s.lookup(ctx, key); ok {
		recommendRequests.WithLabelValues(policy, "ok").Inc()
		recommendResults.WithLabelValues(policy).Observe(float64(len(idx)))
		return &Result{Recipes: s.pick(idx), CacheHit: true}, nil
	}

	idx, err := match.MatchIndexes(s.required, pq.Selection, pq.Policy)
	if err != nil {
		recommendRequests.WithLabelValues(policy, "invalid").Inc()
		return nil, common.ErrInvalidLogic.Wrap(err)
	}
	s.store(ctx, key, idx)

	recommendRequests.WithLabelValues(policy, "ok").Inc()
	recommendResults.WithLabelValues(policy).Observe(float64(len(idx)))
	common.LogDebug("Recommendation computed",
		zap.String("policy", policy),
		zap.Strings("selected", pq.Selection.Sorted()),
		zap.Int("matches", len(idx)),
	)
	return &Result{Recipes: s.pick(idx)}, nil
}

// Requirements 查詢食譜的需求產品
func (s *Service) Requirements(name string) (match.RequiredSet, bool) {
	r, ok := s.catalog.FindRecipe(name)
	if !ok {
		return match.RequiredSet{}, false
	}
	return s.matcher.Normalizer().Required(r), true
}

// Recipes 全部食譜（唯讀）
func (s *Service) Recipes() []match.Recipe {
	return s.catalog.Recipes
}

// Products 全部產品（唯讀）
func (s *Service) Products() []catalog.Product {
	return s.catalog.Products
}

// Catalog 目前使用的資料
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// CacheStats 快取統計；未啟用時為 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

func (s *Service) pick(idx []int) []match.Recipe {
	out := make([]match.Recipe, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.catalog.Recipes[i])
	}
	return out
}

// cacheKey 資料版本與別名表都納入鍵，任一改變都不會讀到舊結果
func (s *Service) cacheKey(pq ParsedQuery) string {
	sum := sha256.Sum256([]byte(pq.String()))
	return fmt.Sprintf("recommend:%s:%s:%s", s.catalog.ShortVersion(), s.matcher.Normalizer().Fingerprint()[:12], hex.EncodeToString(sum[:]))
}

// lookup 快取錯誤只記錄，不影響結果
func (s *Service) lookup(ctx context.Context, key string) ([]int, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			recommendCacheMisses.Inc()
			common.LogCacheMiss("recommend", key)
		} else {
			recommendCacheErrors.Inc()
			common.LogWarn("Cache lookup failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}

	var idx []int
	if err := common.ParseJSON(raw, &idx); err != nil {
		recommendCacheErrors.Inc()
		common.LogWarn("Discarding malformed cache entry", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	for _, i := range idx {
		if i < 0 || i >= len(s.catalog.Recipes) {
			recommendCacheErrors.Inc()
			common.LogWarn("Discarding out of range cache entry", zap.String("key", key))
			return nil, false
		}
	}

	recommendCacheHits.Inc()
	common.LogCacheHit("recommend", key)
	return idx, true
}

func (s *Service) store(ctx context.Context, key string, idx []int) {
	if s.cache == nil {
		return
	}
	raw, err := common.ToJSON(idx)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		recommendCacheErrors.Inc()
		common.LogWarn("Cache store failed", zap.Error(err), zap.String("key", key))
	}
}
