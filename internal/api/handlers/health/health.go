package health

import (
	"net/http"
	"runtime"
	"time"

	"cocktail-recommender/internal/core/recommend"
	"cocktail-recommender/internal/infrastructure/config"
	"cocktail-recommender/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 資料狀態
type CatalogStatus struct {
	Source   string `json:"source"`
	Version  string `json:"version"`
	Recipes  int    `json:"recipes"`
	Products int    `json:"products"`
}

// 從 context 取出路由注入的服務
func fromContext(c *gin.Context) (*config.Config, *recommend.Service, bool) {
	cfg, ok := c.Get("config")
	if !ok {
		return nil, nil, false
	}
	conf, ok := cfg.(*config.Config)
	if !ok {
		return nil, nil, false
	}
	svc, ok := c.Get("recommend_service")
	if !ok {
		return conf, nil, false
	}
	service, ok := svc.(*recommend.Service)
	return conf, service, ok
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	conf, service, ok := fromContext(c)
	if !ok {
		common.LogError("Services not found in context",
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Services not found",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cat := service.Catalog()
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   conf.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: &CatalogStatus{
			Source:   cat.Source,
			Version:  cat.ShortVersion(),
			Recipes:  len(cat.Recipes),
			Products: len(cat.Products),
		},
		Cache: service.CacheStats(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：資料已載入才算就緒
func ReadinessCheck(c *gin.Context) {
	_, service, ok := fromContext(c)
	if !ok || len(service.Recipes()) == 0 {
		c.JSON(common.ErrCatalogUnavailable.Status, common.ErrCatalogUnavailable.Response(false))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
