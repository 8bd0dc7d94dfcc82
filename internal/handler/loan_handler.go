package handler

import (
	"net/http"

	"brewhouse/internal/middleware"
	"brewhouse/internal/model"
	"brewhouse/internal/service"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	loanService service.LoanService
}

func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func (h *LoanHandler) RegisterRoutes(router *gin.RouterGroup) {
	finance := middleware.RequireRole(model.RoleCFO, model.RoleCEO)
	cfoOnly := middleware.RequireRole(model.RoleCFO)

	loans := router.Group("/api/loans")
	{
		loans.POST("", cfoOnly, h.CreateLoan)
		loans.GET("", finance, h.ListLoans)
		loans.GET("/:id", finance, h.GetLoan)
		loans.PUT("/:id", cfoOnly, h.UpdateLoan)
		loans.DELETE("/:id", cfoOnly, h.DeleteLoan)
	}
}

// CreateLoan records a loan with flat interest
// @Summary      Create loan
// @Tags         loans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLoanRequest  true  "Create Loan Payload"
// @Success      201      {object}  response.Response{data=model.Loan}
// @Failure      400      {object}  response.Response
// @Router       /api/loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req service.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	loan, err := h.loanService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, loan))
}

// ListLoans returns every loan with its derived repayment position
// @Summary      List loans
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Failure      500  {object}  response.Response
// @Router       /api/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	positions, total, err := h.loanService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"loans":             positions,
		"total_outstanding": total,
	}))
}

// GetLoan returns one loan with its position and repayment schedule
// @Summary      Get loan
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Loan ID"
// @Success      200  {object}  response.Response{data=service.LoanDetail}
// @Failure      404  {object}  response.Response
// @Router       /api/loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	detail, err := h.loanService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// UpdateLoan updates descriptive loan fields
// @Summary      Update loan
// @Description  Updates name, lender, or notes; principal and rate are immutable
// @Tags         loans
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Loan ID"
// @Param        payload  body      service.UpdateLoanRequest  true  "Update Loan Payload"
// @Success      200      {object}  response.Response{data=model.Loan}
// @Failure      400      {object}  response.Response
// @Router       /api/loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	var req service.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	loan, err := h.loanService.Update(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loan))
}

// DeleteLoan removes a loan record
// @Summary      Delete loan
// @Tags         loans
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Loan ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	if err := h.loanService.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
