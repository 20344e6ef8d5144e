package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/order"
	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"product not found", catalog.NewProductNotFoundError("p1"), CodeProductNotFound, http.StatusNotFound},
		{"out of stock", catalog.NewOutOfStockError("p1", 3, 1), CodeOutOfStock, http.StatusBadRequest},
		{"duplicate slug", catalog.NewDuplicateSlugError("product", "hammer"), CodeDuplicateKey, http.StatusBadRequest},
		{"entity in use", catalog.NewEntityInUseError("brand", "b1", "products reference it"), CodeEntityInUse, http.StatusConflict},
		{"category cycle", catalog.NewCategoryCycleError("c1", "c2"), CodeValidation, http.StatusBadRequest},
		{"coupon not found", coupon.NewNotFoundError("SAVE10"), CodeCouponNotFound, http.StatusNotFound},
		{"invalid coupon", coupon.NewInvalidCouponError("expired"), CodeInvalidCoupon, http.StatusBadRequest},
		{"order not found", order.NewNotFoundError("o1"), CodeOrderNotFound, http.StatusNotFound},
		{"invalid transition", order.NewInvalidStateError(order.StatusDelivered, order.StatusCancelled), CodeInvalidOrderState, http.StatusBadRequest},
		{"price mismatch", order.NewPriceMismatchError("p1", 18, 20), CodePriceMismatch, http.StatusBadRequest},
		{"generic invalid input", shared.NewDomainError(shared.ErrInvalidInput, "order", "email", "bad email"), CodeValidation, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.status, appErr.HTTPStatusCode())
		})
	}
}

func TestFromDomainErrorMasksUnknown(t *testing.T) {
	appErr := FromDomainError(stderrors.New("dial tcp: connection refused"))

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatusCode())
}

func TestFromDomainErrorPassesAppErrorsThrough(t *testing.T) {
	original := Forbidden("admin only")

	appErr := FromDomainError(original)
	require.Same(t, original, appErr)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatusCode())
}

func TestUnwrapPreservesSentinel(t *testing.T) {
	appErr := FromDomainError(order.NewNotFoundError("o1"))
	assert.ErrorIs(t, appErr, order.ErrOrderNotFound)
}

func TestIs(t *testing.T) {
	err := FromDomainError(coupon.NewInvalidCouponError("expired"))
	assert.True(t, Is(err, CodeInvalidCoupon))
	assert.False(t, Is(err, CodeCouponNotFound))
	assert.False(t, Is(stderrors.New("plain"), CodeInternal))
}
