package cart

import (
	"testing"

	"storefront/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price float64, stock int) *catalog.Product {
	return &catalog.Product{
		ID:          id,
		Slug:        id,
		SKU:         "sku-" + id,
		Name:        "Product " + id,
		Price:       price,
		Stock:       stock,
		IsActive:    true,
		CategoryIDs: []string{"cat-1"},
		CountryID:   "country-1",
	}
}

func testRules() PricingRules {
	return PricingRules{TaxRate: 0.1, ShippingFlat: 5, FreeShippingOver: 100}
}

func TestAddItemMergesLines(t *testing.T) {
	c := New("cart-1", "user-1")
	p := testProduct("p1", 20, 10)

	require.NoError(t, c.AddItem(p, 2))
	require.NoError(t, c.AddItem(p, 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 20.0, c.Items[0].Price)
}

func TestAddItemChecksCombinedQuantityAgainstStock(t *testing.T) {
	c := New("cart-1", "user-1")
	p := testProduct("p1", 20, 5)

	require.NoError(t, c.AddItem(p, 3))

	// 3 already held, 3 more exceeds the 5 in stock.
	err := c.AddItem(p, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrOutOfStock)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c := New("cart-1", "user-1")
	p := testProduct("p1", 20, 5)

	assert.ErrorIs(t, c.AddItem(p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(p, -1), ErrInvalidQuantity)
}

func TestAddItemRepricesOnSale(t *testing.T) {
	c := New("cart-1", "user-1")
	p := testProduct("p1", 20, 10)
	require.NoError(t, c.AddItem(p, 1))

	p.OnSale = true
	p.SalePrice = 15
	require.NoError(t, c.AddItem(p, 1))

	assert.Equal(t, 15.0, c.Items[0].Price)
}

func TestUpdateItemQuantity(t *testing.T) {
	c := New("cart-1", "user-1")
	p := testProduct("p1", 20, 10)
	require.NoError(t, c.AddItem(p, 2))

	require.NoError(t, c.UpdateItemQuantity(p, 7))
	assert.Equal(t, 7, c.Items[0].Quantity)

	assert.ErrorIs(t, c.UpdateItemQuantity(p, 11), catalog.ErrOutOfStock)
	assert.ErrorIs(t, c.UpdateItemQuantity(testProduct("missing", 5, 5), 1), ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 20, 10), 1))
	require.NoError(t, c.AddItem(testProduct("p2", 30, 10), 1))

	require.NoError(t, c.RemoveItem("p1"))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	assert.ErrorIs(t, c.RemoveItem("p1"), ErrItemNotFound)
}

func TestRecalculateDerivedFields(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 20, 10), 2)) // 40
	require.NoError(t, c.AddItem(testProduct("p2", 10, 10), 3)) // 30

	c.Recalculate(testRules())

	assert.Equal(t, 2, c.TotalItems)
	assert.Equal(t, 5, c.TotalQuantity)
	assert.Equal(t, 70.0, c.Subtotal)
	assert.InDelta(t, 7.0, c.Tax, 0.001)
	assert.Equal(t, 5.0, c.ShippingCost)
	assert.InDelta(t, 82.0, c.Total, 0.001)
}

func TestRecalculateFreeShippingThreshold(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 50, 10), 2)) // 100

	c.Recalculate(testRules())

	assert.Equal(t, 0.0, c.ShippingCost)
}

func TestRecalculateEmptyCartHasNoShipping(t *testing.T) {
	c := New("cart-1", "user-1")
	c.Recalculate(testRules())

	assert.Equal(t, 0.0, c.ShippingCost)
	assert.Equal(t, 0.0, c.Total)
}

func TestRecalculateClampsDiscountToSubtotal(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 10, 10), 1))
	c.SetCoupon("BIG", 50)

	c.Recalculate(testRules())

	assert.Equal(t, 10.0, c.CouponDiscount)
	// Taxable amount is zero after the discount.
	assert.Equal(t, 0.0, c.Tax)
	assert.InDelta(t, 5.0, c.Total, 0.001) // shipping only
}

func TestRecalculateTaxAppliesToDiscountedSubtotal(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 50, 10), 2)) // 100
	c.SetCoupon("SAVE20", 20)

	c.Recalculate(testRules())

	assert.InDelta(t, 8.0, c.Tax, 0.001) // (100-20) * 0.1
	// Free shipping keys off the undiscounted subtotal.
	assert.Equal(t, 0.0, c.ShippingCost)
	assert.InDelta(t, 88.0, c.Total, 0.001)
}

func TestClearDetachesCoupon(t *testing.T) {
	c := New("cart-1", "user-1")
	require.NoError(t, c.AddItem(testProduct("p1", 20, 10), 1))
	c.SetCoupon("SAVE", 5)

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Empty(t, c.CouponCode)
	assert.Equal(t, 0.0, c.CouponDiscount)
}
