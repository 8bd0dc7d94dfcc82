package handler

import (
	"net/http"

	"brewhouse/internal/service"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

// BusinessInfo is the static storefront blurb served to unauthenticated
// customers.
type BusinessInfo struct {
	Name            string   `json:"name"`
	Tagline         string   `json:"tagline"`
	Contact         string   `json:"contact"`
	DeliveryMethods []string `json:"delivery_methods"`
}

// PublicHandler serves the unauthenticated ordering surface.
type PublicHandler struct {
	orderService   service.OrderService
	catalogService service.CatalogService
	info           BusinessInfo
}

func NewPublicHandler(orderService service.OrderService, catalogService service.CatalogService, info BusinessInfo) *PublicHandler {
	return &PublicHandler{
		orderService:   orderService,
		catalogService: catalogService,
		info:           info,
	}
}

func (h *PublicHandler) RegisterRoutes(router *gin.RouterGroup) {
	public := router.Group("/public")
	{
		public.GET("/info", h.Info)
		public.GET("/products", h.ListProducts)
		public.POST("/orders", h.CreateOrder)
	}
}

// Info returns the storefront blurb
// @Summary      Business info
// @Tags         public
// @Produce      json
// @Success      200  {object}  response.Response{data=handler.BusinessInfo}
// @Router       /public/info [get]
func (h *PublicHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.info))
}

// ListProducts returns active products only
// @Summary      Public product list
// @Tags         public
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Product}
// @Failure      500  {object}  response.Response
// @Router       /public/products [get]
func (h *PublicHandler) ListProducts(c *gin.Context) {
	products, _, err := h.catalogService.ListProducts(c.Request.Context(), true, 1, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, products))
}

// CreateOrder submits a customer order without authentication
// @Summary      Public order submission
// @Description  Accepts a customer order; it enters the queue as Submitted
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrderRequest  true  "Order Payload"
// @Success      201      {object}  response.Response{data=model.Order}
// @Failure      400      {object}  response.Response
// @Router       /public/orders [post]
func (h *PublicHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreatePublic(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}
