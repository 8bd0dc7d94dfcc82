package handler

import (
	"net/http"

	"brewhouse/internal/middleware"
	"brewhouse/internal/model"
	"brewhouse/internal/service"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/brewer", middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO), h.Brewer)
		dashboard.GET("/ops", middleware.RequireRole(model.RoleManager, model.RoleCEO), h.Ops)
		dashboard.GET("/finance", middleware.RequireRole(model.RoleCFO, model.RoleCEO), h.Finance)
	}
}

// Brewer returns the production-floor view for the caller
// @Summary      Brewer dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BrewerDashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/brewer [get]
func (h *DashboardHandler) Brewer(c *gin.Context) {
	dashboard, err := h.dashboardService.Brewer(c.Request.Context(), actor(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// Ops returns order, staff, and product aggregates
// @Summary      Operations dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.OpsDashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/ops [get]
func (h *DashboardHandler) Ops(c *gin.Context) {
	dashboard, err := h.dashboardService.Ops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// Finance returns treasury, approval-queue, and loan aggregates
// @Summary      Finance dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.FinanceDashboard}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/finance [get]
func (h *DashboardHandler) Finance(c *gin.Context) {
	dashboard, err := h.dashboardService.Finance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
