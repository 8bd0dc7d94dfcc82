package handler

import (
	"net/http"

	"brewhouse/internal/middleware"
	"brewhouse/internal/model"
	"brewhouse/internal/service"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService   service.ReportService
	forecastService service.ForecastService
}

func NewReportHandler(reportService service.ReportService, forecastService service.ForecastService) *ReportHandler {
	return &ReportHandler{reportService: reportService, forecastService: forecastService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	finance := middleware.RequireRole(model.RoleCFO, model.RoleCEO)

	reports := router.Group("/api/reports")
	{
		reports.GET("/income", finance, h.IncomeStatement)
		reports.GET("/balance-sheet", finance, h.BalanceSheet)
		reports.GET("/equity", finance, h.EquityStatement)
		reports.GET("/mda", finance, h.MDA)
		reports.GET("/forecast", finance, h.Forecast)
	}
}

// IncomeStatement returns the single-period P&L
// @Summary      Income statement
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.IncomeStatement}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/income [get]
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	statement, err := h.reportService.IncomeStatement(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, statement))
}

// BalanceSheet returns assets, liabilities, and equity with an integrity flag
// @Summary      Balance sheet
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.BalanceSheet}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/balance-sheet [get]
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	sheet, err := h.reportService.BalanceSheet(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sheet))
}

// EquityStatement returns the ownership side of the balance sheet
// @Summary      Equity statement
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.EquityStatement}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/equity [get]
func (h *ReportHandler) EquityStatement(c *gin.Context) {
	statement, err := h.reportService.EquityStatement(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, statement))
}

// MDA returns the management discussion and analysis narrative
// @Summary      MD&A report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.MDAReport}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/mda [get]
func (h *ReportHandler) MDA(c *gin.Context) {
	report, err := h.reportService.MDA(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// Forecast returns the trailing cash-flow history with a flat projection
// @Summary      Cash-flow forecast
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.Forecast}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/forecast [get]
func (h *ReportHandler) Forecast(c *gin.Context) {
	forecast, err := h.forecastService.CashFlow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, forecast))
}
