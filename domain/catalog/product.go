/*
Package catalog holds the product catalog and its taxonomy: products plus the
categories, brands, product types and countries they reference.

Invariants owned here:
- effective price = sale price when the product is on sale, list price otherwise
- stock never goes negative; stock is only mutated by order placement/cancellation
- rating fields are only written by the review aggregation routine
*/
package catalog

import (
	"time"
)

// Product is a catalog item. Taxonomy references are stored by ID only; the
// referenced entities live in their own tables and are never embedded.
type Product struct {
	ID               string            `json:"id"`
	Slug             string            `json:"slug"`
	SKU              string            `json:"sku"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Image            string            `json:"image"`
	Price            float64           `json:"price"`
	SalePrice        float64           `json:"sale_price"`
	OnSale           bool              `json:"on_sale"`
	Stock            int               `json:"stock"`
	IsActive         bool              `json:"is_active"`
	IsHot            bool              `json:"is_hot"`
	IsFeatured       bool              `json:"is_featured"`
	Rating           float64           `json:"rating"`
	RatingCount      int               `json:"rating_count"`
	ReviewCount      int               `json:"review_count"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	BrandID          string            `json:"brand_id,omitempty"`
	CategoryIDs      []string          `json:"category_ids"`
	TypeIDs          []string          `json:"type_ids,omitempty"`
	CountryID        string            `json:"country_id"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Validate checks the field invariants that do not need a repository
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return NewProductValidationError("name", "name is required")
	case p.Slug == "":
		return NewProductValidationError("slug", "slug is required")
	case p.SKU == "":
		return NewProductValidationError("sku", "sku is required")
	case p.Price < 0:
		return NewProductValidationError("price", "price must not be negative")
	case p.SalePrice < 0:
		return NewProductValidationError("sale_price", "sale price must not be negative")
	case p.Stock < 0:
		return NewProductValidationError("stock", "stock must not be negative")
	case len(p.CategoryIDs) == 0:
		return NewProductValidationError("category_ids", "at least one category is required")
	case p.CountryID == "":
		return NewProductValidationError("country_id", "country is required")
	}
	return nil
}

// EffectivePrice returns the price a buyer pays right now
func (p *Product) EffectivePrice() float64 {
	if p.OnSale {
		return p.SalePrice
	}
	return p.Price
}

// HasStock reports whether quantity units can be taken from stock
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Stock
}

// DecrementStock takes quantity units off stock.
// Used by the in-memory repositories; the MySQL repository performs the same
// guard as a conditional UPDATE so concurrent checkouts cannot oversell.
func (p *Product) DecrementStock(quantity int) error {
	if !p.HasStock(quantity) {
		return NewOutOfStockError(p.ID, quantity, p.Stock)
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// RestoreStock puts quantity units back (order cancellation)
func (p *Product) RestoreStock(quantity int) {
	if quantity > 0 {
		p.Stock += quantity
		p.UpdatedAt = time.Now()
	}
}

// ApplyRating overwrites the aggregate rating fields.
// Only the review aggregation routine calls this.
func (p *Product) ApplyRating(rating float64, count int) {
	p.Rating = rating
	p.RatingCount = count
	p.ReviewCount = count
	p.UpdatedAt = time.Now()
}

// InCategory reports whether the product references the given category
func (p *Product) InCategory(categoryID string) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}
