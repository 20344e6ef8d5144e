package catalog

import "time"

// Category is a node in the category tree. ParentID is empty for roots.
type Category struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ParentID      string    `json:"parent_id,omitempty"`
	DisplayOrder  int       `json:"display_order"`
	IsActive      bool      `json:"is_active"`
	ShowInNav     bool      `json:"show_in_nav"`
	ShowInFilters bool      `json:"show_in_filters"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate checks required fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return NewTaxonomyValidationError("category", "name", "name is required")
	}
	if c.Slug == "" {
		return NewTaxonomyValidationError("category", "slug", "slug is required")
	}
	if c.ParentID == c.ID && c.ID != "" {
		return NewTaxonomyValidationError("category", "parent_id", "category cannot be its own parent")
	}
	return nil
}

// Brand is a product manufacturer or label.
type Brand struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required fields
func (b *Brand) Validate() error {
	if b.Name == "" {
		return NewTaxonomyValidationError("brand", "name", "name is required")
	}
	if b.Slug == "" {
		return NewTaxonomyValidationError("brand", "slug", "slug is required")
	}
	return nil
}

// ProductType is a finer-grained classification below categories.
// A type belongs to one or more categories.
type ProductType struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	CategoryIDs []string  `json:"category_ids"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required fields
func (t *ProductType) Validate() error {
	if t.Name == "" {
		return NewTaxonomyValidationError("type", "name", "name is required")
	}
	if t.Slug == "" {
		return NewTaxonomyValidationError("type", "slug", "slug is required")
	}
	if len(t.CategoryIDs) == 0 {
		return NewTaxonomyValidationError("type", "category_ids", "at least one category is required")
	}
	return nil
}

// Country is a product origin country.
type Country struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks required fields
func (c *Country) Validate() error {
	if c.Name == "" {
		return NewTaxonomyValidationError("country", "name", "name is required")
	}
	if c.Code == "" {
		return NewTaxonomyValidationError("country", "code", "code is required")
	}
	return nil
}
