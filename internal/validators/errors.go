package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidPhone     = errors.New("invalid phone")

	ErrInvalidSlug          = errors.New("invalid slug")
	ErrInvalidProductType   = errors.New("invalid product type")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInvalidStock         = errors.New("stock cannot be negative")
	ErrInvalidScale         = errors.New("invalid scale")
	ErrInvalidYear          = errors.New("invalid year")
	ErrInvalidCategoryID    = errors.New("invalid category id")
	ErrInvalidProductFilter = errors.New("invalid product filter")
	ErrDescriptionTooLong   = errors.New("description is too long")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")

	ErrInvalidProductID      = errors.New("invalid product id")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidAddress        = errors.New("invalid shipping address")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
	ErrInvalidCartMergeItems = errors.New("invalid cart merge items")
)
