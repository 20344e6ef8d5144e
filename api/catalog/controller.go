/*
Package catalog - catalog and taxonomy API controllers.

Responsibilities:
1. Parse HTTP parameters and bind request bodies
2. Call the catalog application service
3. Answer through the response package

Public routes only ever see active entities; the admin routes list and mutate
everything.
*/
package catalog

import (
	"net/http"
	"strconv"

	"storefront/api/ctxutil"
	"storefront/api/response"
	catalogapp "storefront/application/catalog"
	"storefront/domain/catalog"

	"github.com/gin-gonic/gin"
)

// Controller handles catalog requests
type Controller struct {
	catalogService *catalogapp.ApplicationService
}

// NewController Create catalog controller
func NewController(catalogService *catalogapp.ApplicationService) *Controller {
	return &Controller{catalogService: catalogService}
}

// RegisterRoutes registers the public read-only catalog routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", c.ListProducts)
		products.GET("/:id", c.GetProduct)
		products.GET("/slug/:slug", c.GetProductBySlug)
	}
	router.GET("/categories", c.ListCategories)
	router.GET("/categories/:id", c.GetCategory)
	router.GET("/brands", c.ListBrands)
	router.GET("/brands/:id", c.GetBrand)
	router.GET("/types", c.ListTypes)
	router.GET("/countries", c.ListCountries)
}

// RegisterAdminRoutes registers the catalog management routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", c.AdminListProducts)
		products.POST("", c.CreateProduct)
		products.PUT("/:id", c.UpdateProduct)
		products.DELETE("/:id", c.DeleteProduct)
	}
	categories := router.Group("/categories")
	{
		categories.POST("", c.CreateCategory)
		categories.PUT("/:id", c.UpdateCategory)
		categories.DELETE("/:id", c.DeleteCategory)
	}
	brands := router.Group("/brands")
	{
		brands.POST("", c.CreateBrand)
		brands.PUT("/:id", c.UpdateBrand)
		brands.DELETE("/:id", c.DeleteBrand)
	}
	types := router.Group("/types")
	{
		types.POST("", c.CreateType)
		types.PUT("/:id", c.UpdateType)
		types.DELETE("/:id", c.DeleteType)
	}
	countries := router.Group("/countries")
	{
		countries.POST("", c.CreateCountry)
		countries.PUT("/:id", c.UpdateCountry)
		countries.DELETE("/:id", c.DeleteCountry)
	}
}

// ============================================================================
// Products
// ============================================================================

func parseProductFilter(ctx *gin.Context) catalog.ProductFilter {
	filter := catalog.ProductFilter{
		CategoryID: ctx.Query("category_id"),
		BrandID:    ctx.Query("brand_id"),
		TypeID:     ctx.Query("type_id"),
		CountryID:  ctx.Query("country_id"),
		Keyword:    ctx.Query("keyword"),
		Sort:       ctx.Query("sort"),
	}
	filter.MinPrice, _ = strconv.ParseFloat(ctx.Query("min_price"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(ctx.Query("max_price"), 64)
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	if v, err := strconv.ParseBool(ctx.Query("featured")); err == nil {
		filter.Featured = &v
	}
	if v, err := strconv.ParseBool(ctx.Query("hot")); err == nil {
		filter.Hot = &v
	}
	return filter
}

// ListProducts lists active products
// GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	filter := parseProductFilter(ctx)
	filter.OnlyActive = true

	page, err := c.catalogService.ListProducts(ctxutil.WithRequestID(ctx), filter)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Products,
		response.NewPagination(page.Page, page.PageSize, page.Total), "products retrieved")
}

// AdminListProducts lists all products including inactive ones
// GET /api/v1/admin/products
func (c *Controller) AdminListProducts(ctx *gin.Context) {
	page, err := c.catalogService.ListProducts(ctxutil.WithRequestID(ctx), parseProductFilter(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Products,
		response.NewPagination(page.Page, page.PageSize, page.Total), "products retrieved")
}

// GetProduct gets a product by ID
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.catalogService.GetProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product retrieved")
}

// GetProductBySlug gets a product by slug
// GET /api/v1/products/slug/:slug
func (c *Controller) GetProductBySlug(ctx *gin.Context) {
	product, err := c.catalogService.GetProductBySlug(ctxutil.WithRequestID(ctx), ctx.Param("slug"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product retrieved")
}

// CreateProduct creates a product
// POST /api/v1/admin/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, product, "product created")
}

// UpdateProduct updates a product
// PUT /api/v1/admin/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req catalogapp.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.UpdateProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product updated")
}

// DeleteProduct deletes a product
// DELETE /api/v1/admin/products/:id
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.catalogService.DeleteProduct(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ============================================================================
// Taxonomy
// ============================================================================

func parseTaxonomyFilter(ctx *gin.Context, publicRoute bool) catalog.TaxonomyFilter {
	filter := catalog.TaxonomyFilter{OnlyActive: publicRoute}
	if v, err := strconv.ParseBool(ctx.Query("featured")); err == nil {
		filter.Featured = &v
	}
	if parent, ok := ctx.GetQuery("parent_id"); ok {
		filter.ParentID = &parent
	}
	return filter
}

// ListCategories lists categories
// GET /api/v1/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	categories, err := c.catalogService.ListCategories(ctxutil.WithRequestID(ctx), parseTaxonomyFilter(ctx, true))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, categories, "categories retrieved")
}

// GetCategory gets a category by ID
// GET /api/v1/categories/:id
func (c *Controller) GetCategory(ctx *gin.Context) {
	category, err := c.catalogService.GetCategory(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, category, "category retrieved")
}

// CreateCategory creates a category
// POST /api/v1/admin/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req catalogapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.catalogService.CreateCategory(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, category, "category created")
}

// UpdateCategory updates a category
// PUT /api/v1/admin/categories/:id
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var req catalogapp.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.catalogService.UpdateCategory(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, category, "category updated")
}

// DeleteCategory deletes a category
// DELETE /api/v1/admin/categories/:id
func (c *Controller) DeleteCategory(ctx *gin.Context) {
	if err := c.catalogService.DeleteCategory(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListBrands lists brands
// GET /api/v1/brands
func (c *Controller) ListBrands(ctx *gin.Context) {
	brands, err := c.catalogService.ListBrands(ctxutil.WithRequestID(ctx), parseTaxonomyFilter(ctx, true))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, brands, "brands retrieved")
}

// GetBrand gets a brand by ID
// GET /api/v1/brands/:id
func (c *Controller) GetBrand(ctx *gin.Context) {
	brand, err := c.catalogService.GetBrand(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, brand, "brand retrieved")
}

// CreateBrand creates a brand
// POST /api/v1/admin/brands
func (c *Controller) CreateBrand(ctx *gin.Context) {
	var req catalogapp.BrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	brand, err := c.catalogService.CreateBrand(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, brand, "brand created")
}

// UpdateBrand updates a brand
// PUT /api/v1/admin/brands/:id
func (c *Controller) UpdateBrand(ctx *gin.Context) {
	var req catalogapp.BrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	brand, err := c.catalogService.UpdateBrand(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, brand, "brand updated")
}

// DeleteBrand deletes a brand
// DELETE /api/v1/admin/brands/:id
func (c *Controller) DeleteBrand(ctx *gin.Context) {
	if err := c.catalogService.DeleteBrand(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListTypes lists product types
// GET /api/v1/types
func (c *Controller) ListTypes(ctx *gin.Context) {
	types, err := c.catalogService.ListTypes(ctxutil.WithRequestID(ctx), parseTaxonomyFilter(ctx, true))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, types, "types retrieved")
}

// CreateType creates a product type
// POST /api/v1/admin/types
func (c *Controller) CreateType(ctx *gin.Context) {
	var req catalogapp.TypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	productType, err := c.catalogService.CreateType(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, productType, "type created")
}

// UpdateType updates a product type
// PUT /api/v1/admin/types/:id
func (c *Controller) UpdateType(ctx *gin.Context) {
	var req catalogapp.TypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	productType, err := c.catalogService.UpdateType(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, productType, "type updated")
}

// DeleteType deletes a product type
// DELETE /api/v1/admin/types/:id
func (c *Controller) DeleteType(ctx *gin.Context) {
	if err := c.catalogService.DeleteType(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListCountries lists countries
// GET /api/v1/countries
func (c *Controller) ListCountries(ctx *gin.Context) {
	countries, err := c.catalogService.ListCountries(ctxutil.WithRequestID(ctx), parseTaxonomyFilter(ctx, true))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, countries, "countries retrieved")
}

// CreateCountry creates a country
// POST /api/v1/admin/countries
func (c *Controller) CreateCountry(ctx *gin.Context) {
	var req catalogapp.CountryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	country, err := c.catalogService.CreateCountry(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, country, "country created")
}

// UpdateCountry updates a country
// PUT /api/v1/admin/countries/:id
func (c *Controller) UpdateCountry(ctx *gin.Context) {
	var req catalogapp.CountryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	country, err := c.catalogService.UpdateCountry(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, country, "country updated")
}

// DeleteCountry deletes a country
// DELETE /api/v1/admin/countries/:id
func (c *Controller) DeleteCountry(ctx *gin.Context) {
	if err := c.catalogService.DeleteCountry(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
