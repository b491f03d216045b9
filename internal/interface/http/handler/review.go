package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/library/internal/application/review"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// ReviewHandler 评价HTTP处理器
type ReviewHandler struct {
	submitUseCase *appreview.SubmitReviewUseCase
	listUseCase   *appreview.ListReviewsUseCase
	deleteUseCase *appreview.DeleteReviewUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(
	submitUseCase *appreview.SubmitReviewUseCase,
	listUseCase *appreview.ListReviewsUseCase,
	deleteUseCase *appreview.DeleteReviewUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		submitUseCase: submitUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Submit 提交评价
// @Summary      提交评价
// @Description  对一本书打分(1-5)并留言,重复提交覆盖原评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.SubmitReviewRequest true "评价内容"
// @Success      200 {object} response.Response "提交成功"
// @Failure      400 {object} response.Response "评分超出范围"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	bookID, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.submitUseCase.Execute(c.Request.Context(), appreview.SubmitReviewRequest{
		BookID:  bookID,
		UserID:  middleware.MustGetUserID(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 图书评价列表
// @Summary      图书评价列表
// @Description  查询某本书的全部评价(带评价人姓名)
// @Tags         评价
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	bookID, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 删除评价
// @Summary      删除评价
// @Description  删除一条评价(作者本人或admin)
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      403 {object} response.Response "无权限删除"
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的评价ID")
		return
	}

	err = h.deleteUseCase.Execute(c.Request.Context(), id,
		middleware.MustGetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
