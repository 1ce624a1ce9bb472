package recommend

import (
	"errors"
	"net/http"

	"cocktail-recommender/internal/core/catalog"
	"cocktail-recommender/internal/core/match"
	recommendService "cocktail-recommender/internal/core/recommend"
	"cocktail-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecommendRequest 推薦請求；selected 必須是字串陣列
type RecommendRequest struct {
	Selected []string `json:"selected"`
	Logic    string   `json:"logic"`
}

// RecommendResponse 推薦結果
type RecommendResponse struct {
	Recommendations []match.Recipe `json:"recommendations"`
}

// ProductsResponse 產品列表
type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

// RecipesResponse 食譜列表
type RecipesResponse struct {
	Recipes []match.Recipe `json:"recipes"`
}

// RequirementsResponse 食譜的需求產品
type RequirementsResponse struct {
	Recipe    string   `json:"recipe"`
	Products  []string `json:"products"`
	Wildcard  bool     `json:"wildcard"`
	Matchable bool     `json:"matchable"`
}

// Handler 推薦處理程序
type Handler struct {
	service *recommendService.Service
	debug   bool
}

// NewHandler 創建新的推薦處理程序
func NewHandler(service *recommendService.Service, debug bool) *Handler {
	return &Handler{
		service: service,
		debug:   debug,
	}
}

// HandleRecommend 依選取產品與比對邏輯推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := requestid.Get(c)

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 未宣告長度的請求由 MaxBytesReader 截斷
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			common.LogWarn("Request body too large",
				zap.Int64("max_size", mbe.Limit),
				zap.String("request_id", requestID),
			)
			common.AbortWithError(c, common.ErrTooLarge.Wrap(err), h.debug)
			return
		}

		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInvalidSelection.Wrap(err), h.debug)
		return
	}
	if req.Selected == nil {
		common.AbortWithError(c, common.ErrInvalidSelection.Wrap(common.NewValidationError("selected is required")), h.debug)
		return
	}

	pq, err := recommendService.ParseQuery(recommendService.Query{
		Selected: req.Selected,
		Logic:    req.Logic,
	})
	if err != nil {
		common.LogWarn("比對邏輯無效",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("logic", req.Logic),
		)
		common.AbortWithError(c, err, h.debug)
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), pq)
	if err != nil {
		common.LogError("推薦失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, err, h.debug)
		return
	}

	common.LogInfo("推薦完成",
		zap.String("request_id", requestID),
		zap.Bool("view_all", result.ViewAll),
		zap.Bool("cache_hit", result.CacheHit),
		zap.Int("selected_count", len(pq.Selection)),
		zap.Int("recipe_count", len(result.Recipes)),
	)

	c.JSON(http.StatusOK, RecommendResponse{Recommendations: result.Recipes})
}

// HandleProducts 回傳產品列表
func (h *Handler) HandleProducts(c *gin.Context) {
	c.JSON(http.StatusOK, ProductsResponse{Products: h.service.Products()})
}

// HandleRecipes 回傳全部食譜
func (h *Handler) HandleRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, RecipesResponse{Recipes: h.service.Recipes()})
}

// HandleRequirements 回傳食譜對應到的產品，協助檢查別名表
func (h *Handler) HandleRequirements(c *gin.Context) {
	name := c.Param("name")
	req, ok := h.service.Requirements(name)
	if !ok {
		common.AbortWithError(c, common.ErrNotFound, h.debug)
		return
	}

	c.JSON(http.StatusOK, RequirementsResponse{
		Recipe:    name,
		Products:  req.Products(),
		Wildcard:  req.Wildcard,
		Matchable: !req.Empty(),
	})
}
