package mysql

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository MySQL/GORM implementation of the product repository
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository Create product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// isDuplicateEntry reports whether err is a MySQL unique constraint violation
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// NextIdentity Generate new product ID
func (r *ProductRepository) NextIdentity() string {
	return "prod-" + uuid.New().String()
}

// Save Save product (create or update)
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	productPO := po.FromProductDomain(p)
	if err := r.getDB(ctx).Save(productPO).Error; err != nil {
		if isDuplicateEntry(err) {
			return catalog.NewDuplicateSlugError("product", p.Slug)
		}
		return err
	}
	return nil
}

// FindByID Find product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}
	return productPO.ToDomain(), nil
}

// FindBySlug Find product by slug
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(slug)
		}
		return nil, result.Error
	}
	return productPO.ToDomain(), nil
}

// List Find products matching the filter, with total count for pagination
// Category and type membership filters match against the JSON columns
func (r *ProductRepository) List(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	db := r.getDB(ctx).Model(&po.ProductPO{})

	if filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if filter.CategoryID != "" {
		db = db.Where("JSON_CONTAINS(category_ids, JSON_QUOTE(?))", filter.CategoryID)
	}
	if filter.TypeID != "" {
		db = db.Where("JSON_CONTAINS(type_ids, JSON_QUOTE(?))", filter.TypeID)
	}
	if filter.BrandID != "" {
		db = db.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CountryID != "" {
		db = db.Where("country_id = ?", filter.CountryID)
	}
	if filter.MinPrice > 0 {
		db = db.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		db = db.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Featured != nil {
		db = db.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Hot != nil {
		db = db.Where("is_hot = ?", *filter.Hot)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "price_asc":
		db = db.Order("price ASC")
	case "price_desc":
		db = db.Order("price DESC")
	case "rating":
		db = db.Order("rating DESC")
	case "name":
		db = db.Order("name ASC")
	default:
		db = db.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	db = db.Offset((page - 1) * pageSize).Limit(pageSize)

	var productPOs []po.ProductPO
	if err := db.Find(&productPOs).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, total, nil
}

// Delete Delete product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(id)
	}
	return nil
}

// DecrementStock Atomically take quantity units off stock
// The WHERE guard makes concurrent checkouts safe: zero rows affected means
// either the product is gone or the remaining stock is insufficient
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	result := r.getDB(ctx).
		Model(&po.ProductPO{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var productPO po.ProductPO
		if err := r.getDB(ctx).First(&productPO, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.NewProductNotFoundError(id)
			}
			return err
		}
		return catalog.NewOutOfStockError(id, quantity, productPO.Stock)
	}
	return nil
}

// RestoreStock Put quantity units back on stock
func (r *ProductRepository) RestoreStock(ctx context.Context, id string, quantity int) error {
	result := r.getDB(ctx).
		Model(&po.ProductPO{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(id)
	}
	return nil
}

// CountByBrand Count products referencing a brand
func (r *ProductRepository) CountByBrand(ctx context.Context, brandID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

// CountByType Count products referencing a product type
func (r *ProductRepository) CountByType(ctx context.Context, typeID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("JSON_CONTAINS(type_ids, JSON_QUOTE(?))", typeID).
		Count(&count).Error
	return count, err
}

// CountByCategory Count products referencing a category
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("JSON_CONTAINS(category_ids, JSON_QUOTE(?))", categoryID).
		Count(&count).Error
	return count, err
}

// CountByCountry Count products referencing a country
func (r *ProductRepository) CountByCountry(ctx context.Context, countryID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("country_id = ?", countryID).Count(&count).Error
	return count, err
}

// Compile-time interface implementation check
var _ catalog.ProductRepository = (*ProductRepository)(nil)
