package handler

import (
	"github.com/gin-gonic/gin"

	appanalytics "github.com/xiebiao/library/internal/application/analytics"
	"github.com/xiebiao/library/pkg/response"
)

// AnalyticsHandler 运营统计HTTP处理器
type AnalyticsHandler struct {
	dashboardUseCase *appanalytics.DashboardUseCase
}

// NewAnalyticsHandler 创建运营统计处理器
func NewAnalyticsHandler(dashboardUseCase *appanalytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboardUseCase: dashboardUseCase}
}

// Dashboard 运营仪表盘
// @Summary      运营仪表盘
// @Description  馆藏/读者/借阅三个维度的统计汇总(馆方人员)
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
