package mocks

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/catalog"

	"github.com/google/uuid"
)

// CategoryRepository in-memory implementation of the category repository
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*catalog.Category
}

// NewCategoryRepository creates an empty in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*catalog.Category)}
}

// NextIdentity generates a new category ID
func (r *CategoryRepository) NextIdentity() string {
	return "cat-" + uuid.New().String()
}

// Save stores the category, enforcing slug uniqueness
func (r *CategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.ID != c.ID && existing.Slug == c.Slug {
			return catalog.NewDuplicateSlugError("category", c.Slug)
		}
	}
	clone := *c
	r.categories[c.ID] = &clone
	return nil
}

// FindByID returns the category or a not-found error
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, catalog.NewTaxonomyNotFoundError("category", id)
	}
	clone := *c
	return &clone, nil
}

// FindBySlug returns the category with the given slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, catalog.NewTaxonomyNotFoundError("category", slug)
}

// List returns categories matching the filter in display order
func (r *CategoryRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.Category
	for _, c := range r.categories {
		if filter.OnlyActive && !c.IsActive {
			continue
		}
		if filter.ParentID != nil && c.ParentID != *filter.ParentID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].DisplayOrder != matched[j].DisplayOrder {
			return matched[i].DisplayOrder < matched[j].DisplayOrder
		}
		return matched[i].Name < matched[j].Name
	})
	return matched, nil
}

// CountChildren counts direct children of a category
func (r *CategoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, c := range r.categories {
		if c.ParentID == id {
			count++
		}
	}
	return count, nil
}

// Delete removes the category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return catalog.NewTaxonomyNotFoundError("category", id)
	}
	delete(r.categories, id)
	return nil
}

// BrandRepository in-memory implementation of the brand repository
type BrandRepository struct {
	mu     sync.RWMutex
	brands map[string]*catalog.Brand
}

// NewBrandRepository creates an empty in-memory brand repository
func NewBrandRepository() *BrandRepository {
	return &BrandRepository{brands: make(map[string]*catalog.Brand)}
}

// NextIdentity generates a new brand ID
func (r *BrandRepository) NextIdentity() string {
	return "brand-" + uuid.New().String()
}

// Save stores the brand, enforcing slug uniqueness
func (r *BrandRepository) Save(ctx context.Context, b *catalog.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.brands {
		if existing.ID != b.ID && existing.Slug == b.Slug {
			return catalog.NewDuplicateSlugError("brand", b.Slug)
		}
	}
	clone := *b
	r.brands[b.ID] = &clone
	return nil
}

// FindByID returns the brand or a not-found error
func (r *BrandRepository) FindByID(ctx context.Context, id string) (*catalog.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brands[id]
	if !ok {
		return nil, catalog.NewTaxonomyNotFoundError("brand", id)
	}
	clone := *b
	return &clone, nil
}

// FindBySlug returns the brand with the given slug
func (r *BrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.brands {
		if b.Slug == slug {
			clone := *b
			return &clone, nil
		}
	}
	return nil, catalog.NewTaxonomyNotFoundError("brand", slug)
}

// List returns brands matching the filter sorted by name
func (r *BrandRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.Brand
	for _, b := range r.brands {
		if filter.OnlyActive && !b.IsActive {
			continue
		}
		if filter.Featured != nil && b.IsFeatured != *filter.Featured {
			continue
		}
		clone := *b
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// Delete removes the brand
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[id]; !ok {
		return catalog.NewTaxonomyNotFoundError("brand", id)
	}
	delete(r.brands, id)
	return nil
}

// TypeRepository in-memory implementation of the product type repository
type TypeRepository struct {
	mu    sync.RWMutex
	types map[string]*catalog.ProductType
}

// NewTypeRepository creates an empty in-memory product type repository
func NewTypeRepository() *TypeRepository {
	return &TypeRepository{types: make(map[string]*catalog.ProductType)}
}

// NextIdentity generates a new product type ID
func (r *TypeRepository) NextIdentity() string {
	return "type-" + uuid.New().String()
}

// Save stores the product type, enforcing slug uniqueness
func (r *TypeRepository) Save(ctx context.Context, t *catalog.ProductType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.types {
		if existing.ID != t.ID && existing.Slug == t.Slug {
			return catalog.NewDuplicateSlugError("type", t.Slug)
		}
	}
	clone := *t
	r.types[t.ID] = &clone
	return nil
}

// FindByID returns the product type or a not-found error
func (r *TypeRepository) FindByID(ctx context.Context, id string) (*catalog.ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	if !ok {
		return nil, catalog.NewTaxonomyNotFoundError("type", id)
	}
	clone := *t
	return &clone, nil
}

// List returns product types matching the filter sorted by name
func (r *TypeRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.ProductType
	for _, t := range r.types {
		if filter.OnlyActive && !t.IsActive {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// CountByCategory counts product types referencing a category
func (r *TypeRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, t := range r.types {
		for _, id := range t.CategoryIDs {
			if id == categoryID {
				count++
				break
			}
		}
	}
	return count, nil
}

// Delete removes the product type
func (r *TypeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[id]; !ok {
		return catalog.NewTaxonomyNotFoundError("type", id)
	}
	delete(r.types, id)
	return nil
}

// CountryRepository in-memory implementation of the country repository
type CountryRepository struct {
	mu        sync.RWMutex
	countries map[string]*catalog.Country
}

// NewCountryRepository creates an empty in-memory country repository
func NewCountryRepository() *CountryRepository {
	return &CountryRepository{countries: make(map[string]*catalog.Country)}
}

// NextIdentity generates a new country ID
func (r *CountryRepository) NextIdentity() string {
	return "country-" + uuid.New().String()
}

// Save stores the country, enforcing slug uniqueness
func (r *CountryRepository) Save(ctx context.Context, c *catalog.Country) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.countries {
		if existing.ID != c.ID && existing.Slug == c.Slug {
			return catalog.NewDuplicateSlugError("country", c.Slug)
		}
	}
	clone := *c
	r.countries[c.ID] = &clone
	return nil
}

// FindByID returns the country or a not-found error
func (r *CountryRepository) FindByID(ctx context.Context, id string) (*catalog.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.countries[id]
	if !ok {
		return nil, catalog.NewTaxonomyNotFoundError("country", id)
	}
	clone := *c
	return &clone, nil
}

// List returns countries matching the filter sorted by name
func (r *CountryRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Country, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.Country
	for _, c := range r.countries {
		if filter.OnlyActive && !c.IsActive {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return matched, nil
}

// Delete removes the country
func (r *CountryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.countries[id]; !ok {
		return catalog.NewTaxonomyNotFoundError("country", id)
	}
	delete(r.countries, id)
	return nil
}

// Compile-time interface implementation checks
var (
	_ catalog.CategoryRepository = (*CategoryRepository)(nil)
	_ catalog.BrandRepository    = (*BrandRepository)(nil)
	_ catalog.TypeRepository     = (*TypeRepository)(nil)
	_ catalog.CountryRepository  = (*CountryRepository)(nil)
)
