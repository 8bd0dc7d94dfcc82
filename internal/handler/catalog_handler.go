package handler

import (
	"net/http"
	"strconv"

	"brewhouse/internal/middleware"
	"brewhouse/internal/model"
	"brewhouse/internal/service"
	"brewhouse/pkg/pagination"
	"brewhouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	allStaff := middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO, model.RoleCFO)
	managers := middleware.RequireRole(model.RoleManager, model.RoleCEO)
	brewers := middleware.RequireRole(model.RoleBrewer, model.RoleManager, model.RoleCEO)

	products := router.Group("/api/products")
	{
		products.POST("", managers, h.CreateProduct)
		products.GET("", allStaff, h.ListProducts)
		products.PUT("/:id", managers, h.UpdateProduct)
		products.DELETE("/:id", managers, h.DeleteProduct)
	}

	recipes := router.Group("/api/recipes")
	{
		recipes.POST("", brewers, h.CreateRecipe)
		recipes.GET("", allStaff, h.ListRecipes)
		recipes.GET("/:id/scale", brewers, h.ScaleRecipe)
		recipes.PUT("/:id", brewers, h.UpdateRecipe)
		recipes.DELETE("/:id", brewers, h.DeleteRecipe)
	}
}

// CreateProduct adds a sellable product
// @Summary      Create product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), actor(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}

// ListProducts returns the product catalog
// @Summary      List products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool  false  "Only active products"
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)
	activeOnly := c.Query("active") == "true"

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), activeOnly, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// UpdateProduct updates price, name, or availability
// @Summary      Update product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.CreateProductRequest  true  "Update Product Payload"
// @Success      200      {object}  response.Response{data=model.Product}
// @Failure      400      {object}  response.Response
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, product))
}

// DeleteProduct removes a product from the catalog
// @Summary      Delete product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// CreateRecipe records a production recipe with its ingredient list
// @Summary      Create recipe
// @Tags         recipes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateRecipeRequest  true  "Create Recipe Payload"
// @Success      201      {object}  response.Response{data=model.Recipe}
// @Failure      400      {object}  response.Response
// @Router       /api/recipes [post]
func (h *CatalogHandler) CreateRecipe(c *gin.Context) {
	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	recipe, err := h.catalogService.CreateRecipe(c.Request.Context(), actor(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, recipe))
}

// ListRecipes returns every recipe with ingredients
// @Summary      List recipes
// @Tags         recipes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.Recipe}
// @Failure      500  {object}  response.Response
// @Router       /api/recipes [get]
func (h *CatalogHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.catalogService.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, recipes))
}

// ScaleRecipe multiplies a recipe's ingredients for a batch count
// @Summary      Scale recipe
// @Tags         recipes
// @Security     BearerAuth
// @Produce      json
// @Param        id       path      string  true   "Recipe ID"
// @Param        batches  query     int     false  "Batch count (default 1)"
// @Success      200      {object}  response.Response{data=[]service.ScaledIngredient}
// @Failure      400      {object}  response.Response
// @Router       /api/recipes/{id}/scale [get]
func (h *CatalogHandler) ScaleRecipe(c *gin.Context) {
	batches, _ := strconv.Atoi(c.DefaultQuery("batches", "1"))

	scaled, err := h.catalogService.ScaleRecipe(c.Request.Context(), c.Param("id"), batches)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, scaled))
}

// UpdateRecipe replaces a recipe's fields and ingredient list
// @Summary      Update recipe
// @Tags         recipes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Recipe ID"
// @Param        payload  body      service.CreateRecipeRequest  true  "Update Recipe Payload"
// @Success      200      {object}  response.Response{data=model.Recipe}
// @Failure      400      {object}  response.Response
// @Router       /api/recipes/{id} [put]
func (h *CatalogHandler) UpdateRecipe(c *gin.Context) {
	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	recipe, err := h.catalogService.UpdateRecipe(c.Request.Context(), actor(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, recipe))
}

// DeleteRecipe removes a recipe and its ingredients
// @Summary      Delete recipe
// @Tags         recipes
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/recipes/{id} [delete]
func (h *CatalogHandler) DeleteRecipe(c *gin.Context) {
	if err := h.catalogService.DeleteRecipe(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
