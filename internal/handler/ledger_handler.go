package handler

import (
	"net/http"

	"brewhouse/internal/middleware"
	"brewhouse/internal/model"
	"brewhouse/internal/service"
	"brewhouse/pkg/pagination"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerService service.LedgerService
}

func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	allStaff := middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO, model.RoleCFO)
	finance := middleware.RequireRole(model.RoleCFO, model.RoleCEO)
	cfoOnly := middleware.RequireRole(model.RoleCFO)

	transactions := router.Group("/api/transactions")
	{
		transactions.POST("", allStaff, h.CreateTransaction)
		transactions.GET("", finance, h.ListTransactions)
		transactions.GET("/pending", cfoOnly, h.PendingQueue)
		transactions.PUT("/:id/approve", cfoOnly, h.ApproveTransaction)
		transactions.PUT("/:id/reject", cfoOnly, h.RejectTransaction)
	}

	ledger := router.Group("/api/ledger")
	{
		ledger.GET("/overview", finance, h.Overview)
	}

	categories := router.Group("/api/categories")
	{
		categories.GET("", allStaff, h.ListCategories)
		categories.POST("", cfoOnly, h.CreateCategory)
		categories.DELETE("/:name", cfoOnly, h.DeleteCategory)
	}
}

// CreateTransaction submits a ledger entry into the audit queue
// @Summary      Create transaction
// @Description  Submits a Credit or Debit entry; CFO submissions are approved immediately
// @Tags         ledger
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateTransactionRequest  true  "Create Transaction Payload"
// @Success      201      {object}  response.Response{data=model.Transaction}
// @Failure      400      {object}  response.Response
// @Router       /api/transactions [post]
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, _ := c.Get("employeeRole")
	roleStr, _ := role.(string)

	tx, err := h.ledgerService.CreateTransaction(c.Request.Context(), actor(c), roleStr, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tx))
}

// ListTransactions returns a paginated ledger, optionally filtered by status
// @Summary      List transactions
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (Pending, Approved, Rejected)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/transactions [get]
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	params := pagination.Parse(c)

	txs, total, err := h.ledgerService.List(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"total":        total,
		"page":         params.Page,
		"limit":        params.Limit,
	}))
}

// PendingQueue returns transactions awaiting CFO review
// @Summary      Pending transactions
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/transactions/pending [get]
func (h *LedgerHandler) PendingQueue(c *gin.Context) {
	params := pagination.Parse(c)

	txs, total, err := h.ledgerService.PendingQueue(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"total":        total,
		"page":         params.Page,
		"limit":        params.Limit,
	}))
}

// ApproveTransaction approves a pending ledger entry
// @Summary      Approve transaction
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=model.Transaction}
// @Failure      400  {object}  response.Response
// @Router       /api/transactions/{id}/approve [put]
func (h *LedgerHandler) ApproveTransaction(c *gin.Context) {
	tx, err := h.ledgerService.Approve(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tx))
}

// RejectTransaction rejects a pending ledger entry
// @Summary      Reject transaction
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=model.Transaction}
// @Failure      400  {object}  response.Response
// @Router       /api/transactions/{id}/reject [put]
func (h *LedgerHandler) RejectTransaction(c *gin.Context) {
	tx, err := h.ledgerService.Reject(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tx))
}

// Overview returns treasury aggregates and the running balance series
// @Summary      Ledger overview
// @Tags         ledger
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.LedgerOverview}
// @Failure      500  {object}  response.Response
// @Router       /api/ledger/overview [get]
func (h *LedgerHandler) Overview(c *gin.Context) {
	overview, err := h.ledgerService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}

// ListCategories returns the category classification table
// @Summary      List categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Category}
// @Failure      500  {object}  response.Response
// @Router       /api/categories [get]
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	categories, err := h.ledgerService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, categories))
}

// CreateCategory adds a ledger category
// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=model.Category}
// @Failure      400      {object}  response.Response
// @Router       /api/categories [post]
func (h *LedgerHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.ledgerService.CreateCategory(c.Request.Context(), actor(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// DeleteCategory removes a ledger category
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Category name"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /api/categories/{name} [delete]
func (h *LedgerHandler) DeleteCategory(c *gin.Context) {
	if err := h.ledgerService.DeleteCategory(c.Request.Context(), actor(c), c.Param("name")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
