package catalog

import (
	"context"
	"testing"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *ApplicationService
	products  *mocks.ProductRepository
	category  *catalog.Category
	brand     *catalog.Brand
	country   *catalog.Country
	prodType  *catalog.ProductType
	typeRepo  *mocks.TypeRepository
	catRepo   *mocks.CategoryRepository
	brandRepo *mocks.BrandRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		products:  mocks.NewProductRepository(),
		catRepo:   mocks.NewCategoryRepository(),
		brandRepo: mocks.NewBrandRepository(),
		typeRepo:  mocks.NewTypeRepository(),
	}
	countryRepo := mocks.NewCountryRepository()
	f.svc = NewApplicationService(f.products, f.catRepo, f.brandRepo, f.typeRepo, countryRepo)

	var err error
	f.category, err = f.svc.CreateCategory(ctx, CategoryRequest{
		Slug: "tools", Name: "Tools", IsActive: true,
	})
	require.NoError(t, err)

	f.brand, err = f.svc.CreateBrand(ctx, BrandRequest{
		Slug: "acme", Name: "Acme", IsActive: true,
	})
	require.NoError(t, err)

	f.country, err = f.svc.CreateCountry(ctx, CountryRequest{
		Slug: "germany", Code: "DE", Name: "Germany", IsActive: true,
	})
	require.NoError(t, err)

	f.prodType, err = f.svc.CreateType(ctx, TypeRequest{
		Slug: "hand-tools", Name: "Hand Tools",
		CategoryIDs: []string{f.category.ID}, IsActive: true,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) productRequest() ProductRequest {
	return ProductRequest{
		Slug: "hammer", SKU: "HAM-1", Name: "Hammer",
		Price: 25, Stock: 10, IsActive: true,
		BrandID:     f.brand.ID,
		CategoryIDs: []string{f.category.ID},
		TypeIDs:     []string{f.prodType.ID},
		CountryID:   f.country.ID,
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, f.productRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	got, err := f.svc.GetProductBySlug(ctx, "hammer")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreateProductRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.productRequest()
	req.CategoryIDs = []string{"ghost"}
	_, err := f.svc.CreateProduct(ctx, req)
	assert.Error(t, err)

	req = f.productRequest()
	req.BrandID = "ghost"
	_, err = f.svc.CreateProduct(ctx, req)
	assert.Error(t, err)

	req = f.productRequest()
	req.CountryID = "ghost"
	_, err = f.svc.CreateProduct(ctx, req)
	assert.Error(t, err)
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, f.productRequest())
	require.NoError(t, err)

	req := f.productRequest()
	req.SKU = "HAM-2"
	_, err = f.svc.CreateProduct(ctx, req)
	assert.ErrorIs(t, err, catalog.ErrDuplicateSlug)
}

func TestListProductsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, tc := range []struct{ slug, sku string }{
		{"hammer", "HAM-1"}, {"wrench", "WRE-1"}, {"pliers", "PLI-1"},
	} {
		req := f.productRequest()
		req.Slug = tc.slug
		req.SKU = tc.sku
		req.Name = tc.slug
		_, err := f.svc.CreateProduct(ctx, req)
		require.NoError(t, err)
	}

	page, err := f.svc.ListProducts(ctx, catalog.ProductFilter{Page: 1, PageSize: 2, OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, int64(3), page.Total)

	page, err = f.svc.ListProducts(ctx, catalog.ProductFilter{Page: 2, PageSize: 2, OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	child, err := f.svc.CreateCategory(ctx, CategoryRequest{
		Slug: "power-tools", Name: "Power Tools", ParentID: f.category.ID, IsActive: true,
	})
	require.NoError(t, err)

	// A category cannot be its own parent.
	_, err = f.svc.UpdateCategory(ctx, child.ID, CategoryRequest{
		Slug: "power-tools", Name: "Power Tools", ParentID: child.ID, IsActive: true,
	})
	assert.ErrorIs(t, err, catalog.ErrCategoryCycle)

	// Reparenting the root under its own child loops the chain.
	_, err = f.svc.UpdateCategory(ctx, f.category.ID, CategoryRequest{
		Slug: "tools", Name: "Tools", ParentID: child.ID, IsActive: true,
	})
	assert.ErrorIs(t, err, catalog.ErrCategoryCycle)
}

func TestDeleteCategoryGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Blocked by the product type created in the fixture.
	err := f.svc.DeleteCategory(ctx, f.category.ID)
	assert.ErrorIs(t, err, catalog.ErrEntityInUse)

	empty, err := f.svc.CreateCategory(ctx, CategoryRequest{
		Slug: "empty", Name: "Empty", IsActive: true,
	})
	require.NoError(t, err)
	assert.NoError(t, f.svc.DeleteCategory(ctx, empty.ID))

	// Blocked by a child category.
	parent, err := f.svc.CreateCategory(ctx, CategoryRequest{Slug: "parent", Name: "Parent", IsActive: true})
	require.NoError(t, err)
	_, err = f.svc.CreateCategory(ctx, CategoryRequest{
		Slug: "child", Name: "Child", ParentID: parent.ID, IsActive: true,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.DeleteCategory(ctx, parent.ID), catalog.ErrEntityInUse)
}

func TestDeleteBrandGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, f.productRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteBrand(ctx, f.brand.ID), catalog.ErrEntityInUse)

	unused, err := f.svc.CreateBrand(ctx, BrandRequest{Slug: "noname", Name: "NoName", IsActive: true})
	require.NoError(t, err)
	assert.NoError(t, f.svc.DeleteBrand(ctx, unused.ID))
}

func TestDeleteTypeAndCountryGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, f.productRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteType(ctx, f.prodType.ID), catalog.ErrEntityInUse)
	assert.ErrorIs(t, f.svc.DeleteCountry(ctx, f.country.ID), catalog.ErrEntityInUse)
}

func TestUpdateProductKeepsRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.CreateProduct(ctx, f.productRequest())
	require.NoError(t, err)

	p.ApplyRating(4.5, 3)
	require.NoError(t, f.products.Save(ctx, p))

	updated, err := f.svc.UpdateProduct(ctx, p.ID, f.productRequest())
	require.NoError(t, err)
	assert.InDelta(t, 4.5, updated.Rating, 0.001)
	assert.Equal(t, 3, updated.RatingCount)
}
