package errors

import (
	"errors"
	"net/http"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/coupon"
	"storefront/domain/notification"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
	"storefront/domain/user"
)

// ErrorCode is the application-level error classification.
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeDuplicateKey   ErrorCode = "DUPLICATE_KEY"

	// Business codes
	CodeProductNotFound      ErrorCode = "PRODUCT_NOT_FOUND"
	CodeOutOfStock           ErrorCode = "OUT_OF_STOCK"
	CodePriceMismatch        ErrorCode = "PRICE_MISMATCH"
	CodeCartItemNotFound     ErrorCode = "CART_ITEM_NOT_FOUND"
	CodeCouponNotFound       ErrorCode = "COUPON_NOT_FOUND"
	CodeInvalidCoupon        ErrorCode = "INVALID_COUPON"
	CodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState    ErrorCode = "INVALID_ORDER_STATE"
	CodeDuplicateReview      ErrorCode = "DUPLICATE_REVIEW"
	CodeReviewNotFound       ErrorCode = "REVIEW_NOT_FOUND"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeEntityInUse          ErrorCode = "ENTITY_IN_USE"
)

// AppError is the application error carried up to the API layer.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to an HTTP status
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeDuplicateKey, CodeDuplicateReview:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeProductNotFound, CodeOrderNotFound,
		CodeCouponNotFound, CodeCartItemNotFound, CodeReviewNotFound,
		CodeNotificationNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEntityInUse:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeOutOfStock, CodePriceMismatch, CodeInvalidCoupon, CodeInvalidOrderState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an underlying error
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Common constructors

func BadRequest(message string) *AppError      { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError        { return New(CodeNotFound, message) }
func Internal(message string) *AppError        { return New(CodeInternal, message) }
func Unauthorized(message string) *AppError    { return New(CodeUnauthorized, message) }
func Forbidden(message string) *AppError       { return New(CodeForbidden, message) }
func Conflict(message string) *AppError        { return New(CodeConflict, message) }
func TooManyRequests(message string) *AppError { return New(CodeTooManyRequest, message) }
func Validation(message string) *AppError      { return New(CodeValidation, message) }

// Is checks whether err carries the given code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// sentinelCodes maps domain sentinels to application codes. Checked in order;
// specific sentinels come before the generic shared ones.
var sentinelCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{catalog.ErrProductNotFound, CodeProductNotFound},
	{catalog.ErrOutOfStock, CodeOutOfStock},
	{catalog.ErrEntityInUse, CodeEntityInUse},
	{catalog.ErrDuplicateSlug, CodeDuplicateKey},
	{catalog.ErrCategoryCycle, CodeValidation},
	{cart.ErrItemNotFound, CodeCartItemNotFound},
	{cart.ErrInvalidQuantity, CodeValidation},
	{coupon.ErrCouponNotFound, CodeCouponNotFound},
	{coupon.ErrInvalidCoupon, CodeInvalidCoupon},
	{coupon.ErrDuplicateCode, CodeDuplicateKey},
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{order.ErrInvalidState, CodeInvalidOrderState},
	{order.ErrPriceMismatch, CodePriceMismatch},
	{order.ErrEmptyOrder, CodeValidation},
	{review.ErrReviewNotFound, CodeReviewNotFound},
	{review.ErrDuplicateReview, CodeDuplicateReview},
	{notification.ErrNotificationNotFound, CodeNotificationNotFound},
	{user.ErrUserNotFound, CodeUserNotFound},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrConflict, CodeConflict},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrBusinessRule, CodeBadRequest},
}

// FromDomainError translates a domain error into an AppError.
// AppErrors pass through unchanged; unknown errors become CodeInternal with a
// generic message so internals never leak to clients.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, entry := range sentinelCodes {
		if errors.Is(err, entry.sentinel) {
			return Wrap(err, entry.code, err.Error())
		}
	}

	return Wrap(err, CodeInternal, "internal server error")
}
