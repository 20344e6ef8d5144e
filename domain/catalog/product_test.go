package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() *Product {
	return &Product{
		ID:          "p1",
		Slug:        "widget",
		SKU:         "WID-1",
		Name:        "Widget",
		Price:       20,
		Stock:       5,
		IsActive:    true,
		CategoryIDs: []string{"cat-1"},
		CountryID:   "country-1",
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	cases := []struct {
		name   string
		mutate func(*Product)
	}{
		{"missing name", func(p *Product) { p.Name = "" }},
		{"missing slug", func(p *Product) { p.Slug = "" }},
		{"missing sku", func(p *Product) { p.SKU = "" }},
		{"negative price", func(p *Product) { p.Price = -1 }},
		{"negative sale price", func(p *Product) { p.SalePrice = -1 }},
		{"negative stock", func(p *Product) { p.Stock = -1 }},
		{"no categories", func(p *Product) { p.CategoryIDs = nil }},
		{"missing country", func(p *Product) { p.CountryID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestEffectivePrice(t *testing.T) {
	p := validProduct()
	p.SalePrice = 15

	assert.InDelta(t, 20.0, p.EffectivePrice(), 0.001)

	p.OnSale = true
	assert.InDelta(t, 15.0, p.EffectivePrice(), 0.001)
}

func TestDecrementStock(t *testing.T) {
	p := validProduct()

	require.NoError(t, p.DecrementStock(3))
	assert.Equal(t, 2, p.Stock)

	err := p.DecrementStock(3)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 2, p.Stock)

	assert.Error(t, p.DecrementStock(0))
}

func TestRestoreStock(t *testing.T) {
	p := validProduct()
	p.RestoreStock(3)
	assert.Equal(t, 8, p.Stock)

	p.RestoreStock(-1)
	assert.Equal(t, 8, p.Stock)
}

func TestApplyRating(t *testing.T) {
	p := validProduct()
	p.ApplyRating(4.5, 12)

	assert.InDelta(t, 4.5, p.Rating, 0.001)
	assert.Equal(t, 12, p.RatingCount)
	assert.Equal(t, 12, p.ReviewCount)
}

func TestInCategory(t *testing.T) {
	p := validProduct()
	p.CategoryIDs = []string{"cat-1", "cat-2"}

	assert.True(t, p.InCategory("cat-2"))
	assert.False(t, p.InCategory("cat-9"))
}
