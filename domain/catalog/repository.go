package catalog

import "context"

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID string
	BrandID    string
	TypeID     string
	CountryID  string
	MinPrice   float64
	MaxPrice   float64
	Keyword    string
	OnlyActive bool
	Featured   *bool
	Hot        *bool
	Sort       string // one of: price_asc, price_desc, rating, newest, name
	Page       int
	PageSize   int
}

// TaxonomyFilter narrows taxonomy listings.
type TaxonomyFilter struct {
	OnlyActive bool
	Featured   *bool
	ParentID   *string // categories only; nil = all, pointer to "" = roots
}

// ProductRepository persists products.
// Save handles both insert and update; implementations translate unique
// constraint violations on slug/sku into ErrDuplicateSlug.
type ProductRepository interface {
	NextIdentity() string
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically performs stock := stock - quantity guarded by
	// stock >= quantity, returning ErrOutOfStock when the guard fails.
	DecrementStock(ctx context.Context, id string, quantity int) error
	RestoreStock(ctx context.Context, id string, quantity int) error

	CountByBrand(ctx context.Context, brandID string) (int64, error)
	CountByType(ctx context.Context, typeID string) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountByCountry(ctx context.Context, countryID string) (int64, error)
}

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	NextIdentity() string
	Save(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*Category, error)
	CountChildren(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// BrandRepository persists brands.
type BrandRepository interface {
	NextIdentity() string
	Save(ctx context.Context, b *Brand) error
	FindByID(ctx context.Context, id string) (*Brand, error)
	FindBySlug(ctx context.Context, slug string) (*Brand, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*Brand, error)
	Delete(ctx context.Context, id string) error
}

// TypeRepository persists product types.
type TypeRepository interface {
	NextIdentity() string
	Save(ctx context.Context, t *ProductType) error
	FindByID(ctx context.Context, id string) (*ProductType, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*ProductType, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// CountryRepository persists countries.
type CountryRepository interface {
	NextIdentity() string
	Save(ctx context.Context, c *Country) error
	FindByID(ctx context.Context, id string) (*Country, error)
	List(ctx context.Context, filter TaxonomyFilter) ([]*Country, error)
	Delete(ctx context.Context, id string) error
}
