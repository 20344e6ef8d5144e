package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storefront/domain/catalog"

	"github.com/google/uuid"
)

// ProductRepository in-memory implementation of the product repository
// Backs the "memory" database mode and the application service tests
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*catalog.Product
}

// NewProductRepository creates an empty in-memory product repository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*catalog.Product)}
}

// NextIdentity generates a new product ID
func (r *ProductRepository) NextIdentity() string {
	return "prod-" + uuid.New().String()
}

// Save stores the product, enforcing slug and sku uniqueness
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.ID == p.ID {
			continue
		}
		if existing.Slug == p.Slug {
			return catalog.NewDuplicateSlugError("product", p.Slug)
		}
		if existing.SKU == p.SKU {
			return catalog.NewDuplicateSlugError("product", p.SKU)
		}
	}

	clone := *p
	r.products[p.ID] = &clone
	return nil
}

// FindByID returns the product or catalog.ErrProductNotFound
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, catalog.NewProductNotFoundError(id)
	}
	clone := *p
	return &clone, nil
}

// FindBySlug returns the product with the given slug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, catalog.NewProductNotFoundError(slug)
}

func matchesFilter(p *catalog.Product, f catalog.ProductFilter) bool {
	if f.OnlyActive && !p.IsActive {
		return false
	}
	if f.CategoryID != "" && !p.InCategory(f.CategoryID) {
		return false
	}
	if f.BrandID != "" && p.BrandID != f.BrandID {
		return false
	}
	if f.TypeID != "" {
		found := false
		for _, id := range p.TypeIDs {
			if id == f.TypeID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.CountryID != "" && p.CountryID != f.CountryID {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(p.Name), kw) &&
			!strings.Contains(strings.ToLower(p.Description), kw) {
			return false
		}
	}
	if f.Featured != nil && p.IsFeatured != *f.Featured {
		return false
	}
	if f.Hot != nil && p.IsHot != *f.Hot {
		return false
	}
	return true
}

// List returns products matching the filter with the pre-pagination total
func (r *ProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.Product
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			clone := *p
			matched = append(matched, &clone)
		}
	}

	switch filter.Sort {
	case "price_asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	case "rating":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	case "name":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*catalog.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Delete removes the product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return catalog.NewProductNotFoundError(id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock takes quantity units off stock with the same guard the MySQL
// implementation applies in SQL
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return catalog.NewProductNotFoundError(id)
	}
	return p.DecrementStock(quantity)
}

// RestoreStock puts quantity units back
func (r *ProductRepository) RestoreStock(ctx context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return catalog.NewProductNotFoundError(id)
	}
	p.RestoreStock(quantity)
	return nil
}

// CountByBrand counts products referencing a brand
func (r *ProductRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.BrandID == brandID {
			count++
		}
	}
	return count, nil
}

// CountByType counts products referencing a product type
func (r *ProductRepository) CountByType(ctx context.Context, typeID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		for _, id := range p.TypeIDs {
			if id == typeID {
				count++
				break
			}
		}
	}
	return count, nil
}

// CountByCategory counts products referencing a category
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.InCategory(categoryID) {
			count++
		}
	}
	return count, nil
}

// CountByCountry counts products referencing a country
func (r *ProductRepository) CountByCountry(ctx context.Context, countryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, p := range r.products {
		if p.CountryID == countryID {
			count++
		}
	}
	return count, nil
}

// Snapshot copies the repository state for unit of work rollback
func (r *ProductRepository) Snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneMap(r.products)
}

// Restore puts a snapshot back
func (r *ProductRepository) Restore(state any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = state.(map[string]*catalog.Product)
}

// Compile-time interface implementation check
var _ catalog.ProductRepository = (*ProductRepository)(nil)
