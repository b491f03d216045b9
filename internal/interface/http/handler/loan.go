package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	borrowUseCase *apploan.BorrowBookUseCase
	returnUseCase *apploan.ReturnLoanUseCase
	listUseCase   *apploan.ListLoansUseCase
	getUseCase    *apploan.GetLoanUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	borrowUseCase *apploan.BorrowBookUseCase,
	returnUseCase *apploan.ReturnLoanUseCase,
	listUseCase *apploan.ListLoansUseCase,
	getUseCase *apploan.GetLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		borrowUseCase: borrowUseCase,
		returnUseCase: returnUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
	}
}

// Borrow 借书
// @Summary      借书
// @Description  借出一本可借图书,到期日=借出时刻+14天
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BorrowBookRequest true "借书信息"
// @Success      200 {object} response.Response "借书成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "无可借副本或已借过这本书"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.borrowUseCase.Execute(c.Request.Context(), apploan.BorrowBookRequest{
		BookID: req.BookID,
		UserID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Return 还书
// @Summary      还书
// @Description  归还借阅(本人或馆方人员),已归还的记录拒绝重复归还
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response "还书成功"
// @Failure      403 {object} response.Response "无权限归还"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Failure      409 {object} response.Response "已归还"
// @Router       /api/v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅记录ID")
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), apploan.ReturnLoanRequest{
		LoanID:        id,
		RequesterID:   middleware.MustGetUserID(c),
		RequesterRole: middleware.GetRole(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 借阅列表
// @Summary      借阅列表
// @Description  读者查看自己的借阅;馆方人员可查看全部并按读者过滤。读取时惰性提升逾期状态
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态过滤(active/returned/overdue)"
// @Param        user_id query int false "读者ID(仅馆方人员)"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	var req dto.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 权限规则:member只能看自己的借阅,馆方人员可看全部
	userID := middleware.MustGetUserID(c)
	filterUserID := userID
	if middleware.GetRole(c).IsStaff() {
		filterUserID = req.UserID // 0表示全部
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), apploan.ListLoansRequest{
		UserID: filterUserID,
		Status: req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 借阅详情
// @Summary      借阅详情
// @Description  查询单条借阅记录,读取时惰性提升逾期状态
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅记录ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅记录ID")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// member只能查看自己的借阅
	if !middleware.GetRole(c).IsStaff() && result.UserID != middleware.MustGetUserID(c) {
		response.ErrorWithCode(c, 40300, "无权限执行此操作")
		return
	}

	response.Success(c, result)
}
