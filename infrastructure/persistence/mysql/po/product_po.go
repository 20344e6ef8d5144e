package po

import (
	"time"

	"storefront/domain/catalog"
)

// ProductPO Product persistence object
// Note: Only used for database mapping, does not contain any business logic
// Taxonomy references and attributes are stored as JSON columns; the
// referenced rows live in their own tables and are never joined here
type ProductPO struct {
	ID               string            `gorm:"primaryKey;size:64"`
	Slug             string            `gorm:"size:255;uniqueIndex;not null"`
	SKU              string            `gorm:"size:100;uniqueIndex;not null"`
	Name             string            `gorm:"size:255;not null"`
	Description      string            `gorm:"type:text"`
	ShortDescription string            `gorm:"size:500"`
	Image            string            `gorm:"size:500"`
	Price            float64           `gorm:"not null"`
	SalePrice        float64           `gorm:"not null;default:0"`
	OnSale           bool              `gorm:"not null;default:false"`
	Stock            int               `gorm:"not null;default:0"`
	IsActive         bool              `gorm:"not null;default:true;index"`
	IsHot            bool              `gorm:"not null;default:false"`
	IsFeatured       bool              `gorm:"not null;default:false"`
	Rating           float64           `gorm:"not null;default:0"`
	RatingCount      int               `gorm:"not null;default:0"`
	ReviewCount      int               `gorm:"not null;default:0"`
	Attributes       map[string]string `gorm:"serializer:json"`
	BrandID          string            `gorm:"size:64;index"`
	CategoryIDs      []string          `gorm:"serializer:json"`
	TypeIDs          []string          `gorm:"serializer:json"`
	CountryID        string            `gorm:"size:64;index"`
	CreatedAt        time.Time         `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain Convert domain model to persistence object
func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:               p.ID,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Image:            p.Image,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		OnSale:           p.OnSale,
		Stock:            p.Stock,
		IsActive:         p.IsActive,
		IsHot:            p.IsHot,
		IsFeatured:       p.IsFeatured,
		Rating:           p.Rating,
		RatingCount:      p.RatingCount,
		ReviewCount:      p.ReviewCount,
		Attributes:       p.Attributes,
		BrandID:          p.BrandID,
		CategoryIDs:      p.CategoryIDs,
		TypeIDs:          p.TypeIDs,
		CountryID:        p.CountryID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *ProductPO) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:               po.ID,
		Slug:             po.Slug,
		SKU:              po.SKU,
		Name:             po.Name,
		Description:      po.Description,
		ShortDescription: po.ShortDescription,
		Image:            po.Image,
		Price:            po.Price,
		SalePrice:        po.SalePrice,
		OnSale:           po.OnSale,
		Stock:            po.Stock,
		IsActive:         po.IsActive,
		IsHot:            po.IsHot,
		IsFeatured:       po.IsFeatured,
		Rating:           po.Rating,
		RatingCount:      po.RatingCount,
		ReviewCount:      po.ReviewCount,
		Attributes:       po.Attributes,
		BrandID:          po.BrandID,
		CategoryIDs:      po.CategoryIDs,
		TypeIDs:          po.TypeIDs,
		CountryID:        po.CountryID,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
	}
}
