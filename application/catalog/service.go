/*
Package catalog Application Layer - catalog and taxonomy orchestration.

Deletion of taxonomy entities is guarded: an entity still referenced by
products (or, for categories, by child categories or product types) is
rejected instead of cascading.
*/
package catalog

import (
	"context"
	"time"

	"storefront/domain/catalog"
)

// ApplicationService coordinates catalog business processes
type ApplicationService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	typeRepo     catalog.TypeRepository
	countryRepo  catalog.CountryRepository
}

// NewApplicationService Create catalog application service
func NewApplicationService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	typeRepo catalog.TypeRepository,
	countryRepo catalog.CountryRepository,
) *ApplicationService {
	return &ApplicationService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		typeRepo:     typeRepo,
		countryRepo:  countryRepo,
	}
}

// ============================================================================
// Products
// ============================================================================

// ProductRequest Create/update product request DTO
type ProductRequest struct {
	Slug             string            `json:"slug" binding:"required"`
	SKU              string            `json:"sku" binding:"required"`
	Name             string            `json:"name" binding:"required"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Image            string            `json:"image"`
	Price            float64           `json:"price" binding:"min=0"`
	SalePrice        float64           `json:"sale_price" binding:"min=0"`
	OnSale           bool              `json:"on_sale"`
	Stock            int               `json:"stock" binding:"min=0"`
	IsActive         bool              `json:"is_active"`
	IsHot            bool              `json:"is_hot"`
	IsFeatured       bool              `json:"is_featured"`
	Attributes       map[string]string `json:"attributes"`
	BrandID          string            `json:"brand_id"`
	CategoryIDs      []string          `json:"category_ids" binding:"required,min=1"`
	TypeIDs          []string          `json:"type_ids"`
	CountryID        string            `json:"country_id" binding:"required"`
}

// checkReferences verifies every taxonomy entity the product points at exists
func (s *ApplicationService) checkReferences(ctx context.Context, req ProductRequest) error {
	for _, id := range req.CategoryIDs {
		if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range req.TypeIDs {
		if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
			return err
		}
	}
	if req.BrandID != "" {
		if _, err := s.brandRepo.FindByID(ctx, req.BrandID); err != nil {
			return err
		}
	}
	if _, err := s.countryRepo.FindByID(ctx, req.CountryID); err != nil {
		return err
	}
	return nil
}

func applyProductRequest(p *catalog.Product, req ProductRequest) {
	p.Slug = req.Slug
	p.SKU = req.SKU
	p.Name = req.Name
	p.Description = req.Description
	p.ShortDescription = req.ShortDescription
	p.Image = req.Image
	p.Price = req.Price
	p.SalePrice = req.SalePrice
	p.OnSale = req.OnSale
	p.Stock = req.Stock
	p.IsActive = req.IsActive
	p.IsHot = req.IsHot
	p.IsFeatured = req.IsFeatured
	p.Attributes = req.Attributes
	p.BrandID = req.BrandID
	p.CategoryIDs = req.CategoryIDs
	p.TypeIDs = req.TypeIDs
	p.CountryID = req.CountryID
	p.UpdatedAt = time.Now()
}

// CreateProduct Create product
func (s *ApplicationService) CreateProduct(ctx context.Context, req ProductRequest) (*catalog.Product, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &catalog.Product{ID: s.productRepo.NextIdentity(), CreatedAt: now}
	applyProductRequest(p, req)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct Update product
// Rating fields and timestamps are owned elsewhere and never touched here
func (s *ApplicationService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*catalog.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	applyProductRequest(p, req)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct Get product by ID
func (s *ApplicationService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// GetProductBySlug Get product by slug
func (s *ApplicationService) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return s.productRepo.FindBySlug(ctx, slug)
}

// ProductPage Paginated product listing
type ProductPage struct {
	Products []*catalog.Product `json:"products"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ListProducts List products matching the filter
func (s *ApplicationService) ListProducts(ctx context.Context, filter catalog.ProductFilter) (*ProductPage, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DeleteProduct Delete product
func (s *ApplicationService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// ============================================================================
// Categories
// ============================================================================

// CategoryRequest Create/update category request DTO
type CategoryRequest struct {
	Slug          string `json:"slug" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	ParentID      string `json:"parent_id"`
	DisplayOrder  int    `json:"display_order"`
	IsActive      bool   `json:"is_active"`
	ShowInNav     bool   `json:"show_in_nav"`
	ShowInFilters bool   `json:"show_in_filters"`
}

// checkCategoryParent verifies the parent exists and that the parent chain
// does not loop back to the category being saved
func (s *ApplicationService) checkCategoryParent(ctx context.Context, categoryID, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == categoryID {
		return catalog.NewCategoryCycleError(categoryID, parentID)
	}

	current := parentID
	for current != "" {
		parent, err := s.categoryRepo.FindByID(ctx, current)
		if err != nil {
			return err
		}
		if parent.ParentID == categoryID {
			return catalog.NewCategoryCycleError(categoryID, parentID)
		}
		current = parent.ParentID
	}
	return nil
}

// CreateCategory Create category
func (s *ApplicationService) CreateCategory(ctx context.Context, req CategoryRequest) (*catalog.Category, error) {
	id := s.categoryRepo.NextIdentity()
	if err := s.checkCategoryParent(ctx, id, req.ParentID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &catalog.Category{
		ID:            id,
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		ParentID:      req.ParentID,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      req.IsActive,
		ShowInNav:     req.ShowInNav,
		ShowInFilters: req.ShowInFilters,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory Update category, rejecting reparenting that creates a cycle
func (s *ApplicationService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*catalog.Category, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryParent(ctx, id, req.ParentID); err != nil {
		return nil, err
	}

	c.Slug = req.Slug
	c.Name = req.Name
	c.Description = req.Description
	c.ParentID = req.ParentID
	c.DisplayOrder = req.DisplayOrder
	c.IsActive = req.IsActive
	c.ShowInNav = req.ShowInNav
	c.ShowInFilters = req.ShowInFilters
	c.UpdatedAt = time.Now()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory Get category by ID
func (s *ApplicationService) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// ListCategories List categories matching the filter
func (s *ApplicationService) ListCategories(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Category, error) {
	return s.categoryRepo.List(ctx, filter)
}

// DeleteCategory Delete category
// Rejected while child categories, products or product types still reference it
func (s *ApplicationService) DeleteCategory(ctx context.Context, id string) error {
	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return catalog.NewEntityInUseError("category", id, "it has child categories")
	}

	products, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return catalog.NewEntityInUseError("category", id, "products still reference it")
	}

	types, err := s.typeRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if types > 0 {
		return catalog.NewEntityInUseError("category", id, "product types still reference it")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ============================================================================
// Brands
// ============================================================================

// BrandRequest Create/update brand request DTO
type BrandRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	IsActive    bool   `json:"is_active"`
	IsFeatured  bool   `json:"is_featured"`
}

// CreateBrand Create brand
func (s *ApplicationService) CreateBrand(ctx context.Context, req BrandRequest) (*catalog.Brand, error) {
	now := time.Now()
	b := &catalog.Brand{
		ID:          s.brandRepo.NextIdentity(),
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		IsActive:    req.IsActive,
		IsFeatured:  req.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBrand Update brand
func (s *ApplicationService) UpdateBrand(ctx context.Context, id string, req BrandRequest) (*catalog.Brand, error) {
	b, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Slug = req.Slug
	b.Name = req.Name
	b.Description = req.Description
	b.Logo = req.Logo
	b.IsActive = req.IsActive
	b.IsFeatured = req.IsFeatured
	b.UpdatedAt = time.Now()

	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBrand Get brand by ID
func (s *ApplicationService) GetBrand(ctx context.Context, id string) (*catalog.Brand, error) {
	return s.brandRepo.FindByID(ctx, id)
}

// ListBrands List brands matching the filter
func (s *ApplicationService) ListBrands(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Brand, error) {
	return s.brandRepo.List(ctx, filter)
}

// DeleteBrand Delete brand, rejected while products still reference it
func (s *ApplicationService) DeleteBrand(ctx context.Context, id string) error {
	products, err := s.productRepo.CountByBrand(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return catalog.NewEntityInUseError("brand", id, "products still reference it")
	}
	return s.brandRepo.Delete(ctx, id)
}

// ============================================================================
// Product types
// ============================================================================

// TypeRequest Create/update product type request DTO
type TypeRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	CategoryIDs []string `json:"category_ids" binding:"required,min=1"`
	IsActive    bool     `json:"is_active"`
}

// CreateType Create product type
func (s *ApplicationService) CreateType(ctx context.Context, req TypeRequest) (*catalog.ProductType, error) {
	for _, categoryID := range req.CategoryIDs {
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	t := &catalog.ProductType{
		ID:          s.typeRepo.NextIdentity(),
		Slug:        req.Slug,
		Name:        req.Name,
		CategoryIDs: req.CategoryIDs,
		IsActive:    req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateType Update product type
func (s *ApplicationService) UpdateType(ctx context.Context, id string, req TypeRequest) (*catalog.ProductType, error) {
	t, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, categoryID := range req.CategoryIDs {
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			return nil, err
		}
	}

	t.Slug = req.Slug
	t.Name = req.Name
	t.CategoryIDs = req.CategoryIDs
	t.IsActive = req.IsActive
	t.UpdatedAt = time.Now()

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetType Get product type by ID
func (s *ApplicationService) GetType(ctx context.Context, id string) (*catalog.ProductType, error) {
	return s.typeRepo.FindByID(ctx, id)
}

// ListTypes List product types matching the filter
func (s *ApplicationService) ListTypes(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.ProductType, error) {
	return s.typeRepo.List(ctx, filter)
}

// DeleteType Delete product type, rejected while products still reference it
func (s *ApplicationService) DeleteType(ctx context.Context, id string) error {
	products, err := s.productRepo.CountByType(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return catalog.NewEntityInUseError("type", id, "products still reference it")
	}
	return s.typeRepo.Delete(ctx, id)
}

// ============================================================================
// Countries
// ============================================================================

// CountryRequest Create/update country request DTO
type CountryRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"is_active"`
}

// CreateCountry Create country
func (s *ApplicationService) CreateCountry(ctx context.Context, req CountryRequest) (*catalog.Country, error) {
	now := time.Now()
	c := &catalog.Country{
		ID:        s.countryRepo.NextIdentity(),
		Slug:      req.Slug,
		Code:      req.Code,
		Name:      req.Name,
		IsActive:  req.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.countryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCountry Update country
func (s *ApplicationService) UpdateCountry(ctx context.Context, id string, req CountryRequest) (*catalog.Country, error) {
	c, err := s.countryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Slug = req.Slug
	c.Code = req.Code
	c.Name = req.Name
	c.IsActive = req.IsActive
	c.UpdatedAt = time.Now()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.countryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCountry Get country by ID
func (s *ApplicationService) GetCountry(ctx context.Context, id string) (*catalog.Country, error) {
	return s.countryRepo.FindByID(ctx, id)
}

// ListCountries List countries matching the filter
func (s *ApplicationService) ListCountries(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Country, error) {
	return s.countryRepo.List(ctx, filter)
}

// DeleteCountry Delete country, rejected while products still reference it
func (s *ApplicationService) DeleteCountry(ctx context.Context, id string) error {
	products, err := s.productRepo.CountByCountry(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return catalog.NewEntityInUseError("country", id, "products still reference it")
	}
	return s.countryRepo.Delete(ctx, id)
}
