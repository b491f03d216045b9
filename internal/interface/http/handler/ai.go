package handler

import (
	"github.com/gin-gonic/gin"

	appai "github.com/xiebiao/library/internal/application/ai"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// AIHandler 智能功能HTTP处理器
// 检索/推荐/分类建议都是确定性启发式计算,响应快且可复现
type AIHandler struct {
	searchUseCase          *appai.SmartSearchUseCase
	recommendationsUseCase *appai.RecommendationsUseCase
	suggestCategoryUseCase *appai.SuggestCategoryUseCase
}

// NewAIHandler 创建智能功能处理器
func NewAIHandler(
	searchUseCase *appai.SmartSearchUseCase,
	recommendationsUseCase *appai.RecommendationsUseCase,
	suggestCategoryUseCase *appai.SuggestCategoryUseCase,
) *AIHandler {
	return &AIHandler{
		searchUseCase:          searchUseCase,
		recommendationsUseCase: recommendationsUseCase,
		suggestCategoryUseCase: suggestCategoryUseCase,
	}
}

// Search 智能检索
// @Summary      智能检索
// @Description  按相关度检索图书:书名+10/作者+8/简介标签+3,有可借副本+2,降序取前20
// @Tags         智能
// @Produce      json
// @Param        q query string true "检索词"
// @Success      200 {object} response.Response "检索成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/ai/search [get]
func (h *AIHandler) Search(c *gin.Context) {
	var req dto.SmartSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchUseCase.Execute(c.Request.Context(), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Recommendations 个性化推荐
// @Summary      个性化推荐
// @Description  依据高分评价提取口味画像推荐可借图书,不足5条时按人气补齐到10条
// @Tags         智能
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "推荐成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/ai/recommendations [get]
func (h *AIHandler) Recommendations(c *gin.Context) {
	result, err := h.recommendationsUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SuggestCategory 分类建议
// @Summary      分类建议
// @Description  依据书名与简介的关键词命中给出最多3个分类建议(编目辅助)
// @Tags         智能
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SuggestCategoryRequest true "书名、作者与简介"
// @Success      200 {object} response.Response "建议成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/ai/suggest-category [post]
func (h *AIHandler) SuggestCategory(c *gin.Context) {
	var req dto.SuggestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	response.Success(c, h.suggestCategoryUseCase.Execute(req.Title, req.Author, req.Description))
}
