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

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	allStaff := middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO, model.RoleCFO)
	managers := middleware.RequireRole(model.RoleManager, model.RoleCEO)

	orders := router.Group("/api/orders")
	{
		orders.POST("", managers, h.CreateOrder)
		orders.GET("", allStaff, h.ListOrders)
		orders.GET("/queue", allStaff, h.ProductionQueue)
		orders.GET("/mine", middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO), h.MyOrders)
		orders.GET("/:id", allStaff, h.GetOrder)
		orders.PUT("/:id/advance", middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO), h.AdvanceOrder)
		orders.PUT("/:id/cancel", managers, h.CancelOrder)
		orders.PUT("/:id/claim", middleware.RequireRole(model.RoleBrewer), h.ClaimOrder)
		orders.PUT("/:id/release", middleware.RequireRole(model.RoleBrewer), h.ReleaseOrder)
		orders.PUT("/:id/assign", managers, h.AssignOrder)
	}
}

func actor(c *gin.Context) string {
	employeeID, _ := c.Get("employeeID")
	idStr, _ := employeeID.(string)
	return idStr
}

// CreateOrder records a customer order on behalf of staff
// @Summary      Create order
// @Description  Creates an order with line items priced from the product catalog
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders returns a paginated order list, optionally filtered by status
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.List(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// ProductionQueue returns Confirmed and In Production orders, oldest first
// @Summary      Production queue
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Order}
// @Failure      500  {object}  response.Response
// @Router       /api/orders/queue [get]
func (h *OrderHandler) ProductionQueue(c *gin.Context) {
	orders, err := h.orderService.ProductionQueue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// MyOrders returns orders assigned to the authenticated employee
// @Summary      My orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Order}
// @Failure      500  {object}  response.Response
// @Router       /api/orders/mine [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orderService.ListMine(c.Request.Context(), actor(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, orders))
}

// GetOrder returns one order with its items
// @Summary      Get order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      404  {object}  response.Response
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// AdvanceOrder moves an order to its single legal next status
// @Summary      Advance order
// @Description  Moves the order one step forward in the fulfillment flow
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id}/advance [put]
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	order, err := h.orderService.Advance(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelOrder cancels an order with a mandatory reason
// @Summary      Cancel order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Order ID"
// @Param        payload  body      cancelOrderRequest  true  "Cancellation reason"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), actor(c), c.Param("id"), req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ClaimOrder assigns an unclaimed Confirmed order to the caller and starts production
// @Summary      Claim order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id}/claim [put]
func (h *OrderHandler) ClaimOrder(c *gin.Context) {
	order, err := h.orderService.Claim(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ReleaseOrder returns a claimed order to the Confirmed queue
// @Summary      Release order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=model.Order}
// @Failure      400  {object}  response.Response
// @Router       /api/orders/{id}/release [put]
func (h *OrderHandler) ReleaseOrder(c *gin.Context) {
	order, err := h.orderService.Release(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

type assignOrderRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// AssignOrder assigns an order to a named employee
// @Summary      Assign order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Order ID"
// @Param        payload  body      assignOrderRequest  true  "Assignee"
// @Success      200      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /api/orders/{id}/assign [put]
func (h *OrderHandler) AssignOrder(c *gin.Context) {
	var req assignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Assign(c.Request.Context(), actor(c), c.Param("id"), req.EmployeeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}
