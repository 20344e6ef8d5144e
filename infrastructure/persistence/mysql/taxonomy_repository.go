package mysql

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository MySQL/GORM implementation of the category repository
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository Create category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new category ID
func (r *CategoryRepository) NextIdentity() string {
	return "cat-" + uuid.New().String()
}

// Save Save category (create or update)
func (r *CategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	if err := r.getDB(ctx).Save(po.FromCategoryDomain(c)).Error; err != nil {
		if isDuplicateEntry(err) {
			return catalog.NewDuplicateSlugError("category", c.Slug)
		}
		return err
	}
	return nil
}

// FindByID Find category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var categoryPO po.CategoryPO
	if err := r.getDB(ctx).First(&categoryPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("category", id)
		}
		return nil, err
	}
	return categoryPO.ToDomain(), nil
}

// FindBySlug Find category by slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var categoryPO po.CategoryPO
	if err := r.getDB(ctx).First(&categoryPO, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("category", slug)
		}
		return nil, err
	}
	return categoryPO.ToDomain(), nil
}

// List Find categories matching the filter, ordered for navigation rendering
func (r *CategoryRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Category, error) {
	db := r.getDB(ctx).Model(&po.CategoryPO{})
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if filter.ParentID != nil {
		db = db.Where("parent_id = ?", *filter.ParentID)
	}

	var categoryPOs []po.CategoryPO
	if err := db.Order("display_order ASC, name ASC").Find(&categoryPOs).Error; err != nil {
		return nil, err
	}

	categories := make([]*catalog.Category, len(categoryPOs))
	for i := range categoryPOs {
		categories[i] = categoryPOs[i].ToDomain()
	}
	return categories, nil
}

// CountChildren Count direct children of a category
func (r *CategoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CategoryPO{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

// Delete Delete category
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CategoryPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewTaxonomyNotFoundError("category", id)
	}
	return nil
}

// BrandRepository MySQL/GORM implementation of the brand repository
type BrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository Create brand repository
func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new brand ID
func (r *BrandRepository) NextIdentity() string {
	return "brand-" + uuid.New().String()
}

// Save Save brand (create or update)
func (r *BrandRepository) Save(ctx context.Context, b *catalog.Brand) error {
	if err := r.getDB(ctx).Save(po.FromBrandDomain(b)).Error; err != nil {
		if isDuplicateEntry(err) {
			return catalog.NewDuplicateSlugError("brand", b.Slug)
		}
		return err
	}
	return nil
}

// FindByID Find brand by ID
func (r *BrandRepository) FindByID(ctx context.Context, id string) (*catalog.Brand, error) {
	var brandPO po.BrandPO
	if err := r.getDB(ctx).First(&brandPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("brand", id)
		}
		return nil, err
	}
	return brandPO.ToDomain(), nil
}

// FindBySlug Find brand by slug
func (r *BrandRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Brand, error) {
	var brandPO po.BrandPO
	if err := r.getDB(ctx).First(&brandPO, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("brand", slug)
		}
		return nil, err
	}
	return brandPO.ToDomain(), nil
}

// List Find brands matching the filter
func (r *BrandRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Brand, error) {
	db := r.getDB(ctx).Model(&po.BrandPO{})
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if filter.Featured != nil {
		db = db.Where("is_featured = ?", *filter.Featured)
	}

	var brandPOs []po.BrandPO
	if err := db.Order("name ASC").Find(&brandPOs).Error; err != nil {
		return nil, err
	}

	brands := make([]*catalog.Brand, len(brandPOs))
	for i := range brandPOs {
		brands[i] = brandPOs[i].ToDomain()
	}
	return brands, nil
}

// Delete Delete brand
func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.BrandPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewTaxonomyNotFoundError("brand", id)
	}
	return nil
}

// TypeRepository MySQL/GORM implementation of the product type repository
type TypeRepository struct {
	db *gorm.DB
}

// NewTypeRepository Create product type repository
func NewTypeRepository(db *gorm.DB) *TypeRepository {
	return &TypeRepository{db: db}
}

func (r *TypeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new product type ID
func (r *TypeRepository) NextIdentity() string {
	return "type-" + uuid.New().String()
}

// Save Save product type (create or update)
func (r *TypeRepository) Save(ctx context.Context, t *catalog.ProductType) error {
	if err := r.getDB(ctx).Save(po.FromProductTypeDomain(t)).Error; err != nil {
		if isDuplicateEntry(err) {
			return catalog.NewDuplicateSlugError("type", t.Slug)
		}
		return err
	}
	return nil
}

// FindByID Find product type by ID
func (r *TypeRepository) FindByID(ctx context.Context, id string) (*catalog.ProductType, error) {
	var typePO po.ProductTypePO
	if err := r.getDB(ctx).First(&typePO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("type", id)
		}
		return nil, err
	}
	return typePO.ToDomain(), nil
}

// List Find product types matching the filter
func (r *TypeRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.ProductType, error) {
	db := r.getDB(ctx).Model(&po.ProductTypePO{})
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}

	var typePOs []po.ProductTypePO
	if err := db.Order("name ASC").Find(&typePOs).Error; err != nil {
		return nil, err
	}

	types := make([]*catalog.ProductType, len(typePOs))
	for i := range typePOs {
		types[i] = typePOs[i].ToDomain()
	}
	return types, nil
}

// CountByCategory Count product types referencing a category
func (r *TypeRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductTypePO{}).
		Where("JSON_CONTAINS(category_ids, JSON_QUOTE(?))", categoryID).
		Count(&count).Error
	return count, err
}

// Delete Delete product type
func (r *TypeRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductTypePO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewTaxonomyNotFoundError("type", id)
	}
	return nil
}

// CountryRepository MySQL/GORM implementation of the country repository
type CountryRepository struct {
	db *gorm.DB
}

// NewCountryRepository Create country repository
func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// NextIdentity Generate new country ID
func (r *CountryRepository) NextIdentity() string {
	return "country-" + uuid.New().String()
}

// Save Save country (create or update)
func (r *CountryRepository) Save(ctx context.Context, c *catalog.Country) error {
	if err := r.getDB(ctx).Save(po.FromCountryDomain(c)).Error; err != nil {
		if isDuplicateEntry(err) {
			return catalog.NewDuplicateSlugError("country", c.Slug)
		}
		return err
	}
	return nil
}

// FindByID Find country by ID
func (r *CountryRepository) FindByID(ctx context.Context, id string) (*catalog.Country, error) {
	var countryPO po.CountryPO
	if err := r.getDB(ctx).First(&countryPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewTaxonomyNotFoundError("country", id)
		}
		return nil, err
	}
	return countryPO.ToDomain(), nil
}

// List Find countries matching the filter
func (r *CountryRepository) List(ctx context.Context, filter catalog.TaxonomyFilter) ([]*catalog.Country, error) {
	db := r.getDB(ctx).Model(&po.CountryPO{})
	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}

	var countryPOs []po.CountryPO
	if err := db.Order("name ASC").Find(&countryPOs).Error; err != nil {
		return nil, err
	}

	countries := make([]*catalog.Country, len(countryPOs))
	for i := range countryPOs {
		countries[i] = countryPOs[i].ToDomain()
	}
	return countries, nil
}

// Delete Delete country
func (r *CountryRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CountryPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewTaxonomyNotFoundError("country", id)
	}
	return nil
}

// Compile-time interface implementation checks
var (
	_ catalog.CategoryRepository = (*CategoryRepository)(nil)
	_ catalog.BrandRepository    = (*BrandRepository)(nil)
	_ catalog.TypeRepository     = (*TypeRepository)(nil)
	_ catalog.CountryRepository  = (*CountryRepository)(nil)
)
