package po

import (
	"time"

	"storefront/domain/catalog"
)

// CategoryPO Category persistence object
type CategoryPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Slug          string    `gorm:"size:255;uniqueIndex;not null"`
	Name          string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	ParentID      string    `gorm:"size:64;index"`
	DisplayOrder  int       `gorm:"not null;default:0"`
	IsActive      bool      `gorm:"not null;default:true"`
	ShowInNav     bool      `gorm:"not null;default:true"`
	ShowInFilters bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CategoryPO) TableName() string {
	return "categories"
}

// FromCategoryDomain Convert domain model to persistence object
func FromCategoryDomain(c *catalog.Category) *CategoryPO {
	return &CategoryPO{
		ID:            c.ID,
		Slug:          c.Slug,
		Name:          c.Name,
		Description:   c.Description,
		ParentID:      c.ParentID,
		DisplayOrder:  c.DisplayOrder,
		IsActive:      c.IsActive,
		ShowInNav:     c.ShowInNav,
		ShowInFilters: c.ShowInFilters,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *CategoryPO) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID:            po.ID,
		Slug:          po.Slug,
		Name:          po.Name,
		Description:   po.Description,
		ParentID:      po.ParentID,
		DisplayOrder:  po.DisplayOrder,
		IsActive:      po.IsActive,
		ShowInNav:     po.ShowInNav,
		ShowInFilters: po.ShowInFilters,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}

// BrandPO Brand persistence object
type BrandPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Logo        string    `gorm:"size:500"`
	IsActive    bool      `gorm:"not null;default:true"`
	IsFeatured  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (BrandPO) TableName() string {
	return "brands"
}

// FromBrandDomain Convert domain model to persistence object
func FromBrandDomain(b *catalog.Brand) *BrandPO {
	return &BrandPO{
		ID:          b.ID,
		Slug:        b.Slug,
		Name:        b.Name,
		Description: b.Description,
		Logo:        b.Logo,
		IsActive:    b.IsActive,
		IsFeatured:  b.IsFeatured,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *BrandPO) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		ID:          po.ID,
		Slug:        po.Slug,
		Name:        po.Name,
		Description: po.Description,
		Logo:        po.Logo,
		IsActive:    po.IsActive,
		IsFeatured:  po.IsFeatured,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

// ProductTypePO Product type persistence object
type ProductTypePO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Name        string    `gorm:"size:255;not null"`
	CategoryIDs []string  `gorm:"serializer:json"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ProductTypePO) TableName() string {
	return "product_types"
}

// FromProductTypeDomain Convert domain model to persistence object
func FromProductTypeDomain(t *catalog.ProductType) *ProductTypePO {
	return &ProductTypePO{
		ID:          t.ID,
		Slug:        t.Slug,
		Name:        t.Name,
		CategoryIDs: t.CategoryIDs,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *ProductTypePO) ToDomain() *catalog.ProductType {
	return &catalog.ProductType{
		ID:          po.ID,
		Slug:        po.Slug,
		Name:        po.Name,
		CategoryIDs: po.CategoryIDs,
		IsActive:    po.IsActive,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

// CountryPO Country persistence object
type CountryPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null"`
	Code      string    `gorm:"size:8;uniqueIndex;not null"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CountryPO) TableName() string {
	return "countries"
}

// FromCountryDomain Convert domain model to persistence object
func FromCountryDomain(c *catalog.Country) *CountryPO {
	return &CountryPO{
		ID:        c.ID,
		Slug:      c.Slug,
		Code:      c.Code,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *CountryPO) ToDomain() *catalog.Country {
	return &catalog.Country{
		ID:        po.ID,
		Slug:      po.Slug,
		Code:      po.Code,
		Name:      po.Name,
		IsActive:  po.IsActive,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
