package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cocktail-recommender/internal/api"
	"cocktail-recommender/internal/core/cache"
	"cocktail-recommender/internal/core/catalog"
	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/core/recommend"
	"cocktail-recommender/internal/infrastructure/config"
	"cocktail-recommender/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LoggerOptions{
		Level: cfg.LogLevel,
		Mode:  cfg.LogMode,
		Dir:   cfg.LogDir,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 別名表錯誤屬於設定錯誤，直接結束
	vocab := match.DefaultVocabulary()
	if err := vocab.Validate(); err != nil {
		common.LogFatal("Invalid vocabulary", zap.Error(err))
	}
	normalizer := match.NewNormalizer(vocab)

	// 載入食譜與產品
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Catalog.Timeout*time.Duration(cfg.Catalog.Retries+1)+5*time.Second)
	source := catalog.NewSource(cfg.Catalog.Source, catalog.SourceOptions{
		Timeout: cfg.Catalog.Timeout,
		Retries: cfg.Catalog.Retries,
	})
	cat, err := catalog.Load(loadCtx, source, catalog.Files{
		Recipes:  cfg.Catalog.RecipesFile,
		Products: cfg.Catalog.ProductsFile,
	})
	cancelLoad()
	if err != nil {
		common.LogFatal("Failed to load catalog",
			zap.String("source", source.Describe()),
			zap.Error(err),
		)
	}
	cat.LogAudit(normalizer)

	// 初始化快取
	store, err := cache.New(context.Background(), cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	service, err := recommend.NewService(cat, match.NewMatcher(normalizer), store)
	if err != nil {
		common.LogFatal("Failed to create recommend service", zap.Error(err))
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, service)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
			zap.String("catalog_version", cat.ShortVersion()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
