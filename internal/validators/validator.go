package validators

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/models"
)

// StoreValidator implements [Validator] for every storefront request model.
// Values and pointers are accepted alike.
type StoreValidator struct{}

func NewStoreValidator() Validator {
	return &StoreValidator{}
}

func (v *StoreValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	case models.UserUpdate:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(ctx, *value, fields...)

	case models.RoleUpdate:
		return v.validateRoleUpdate(ctx, value)
	case *models.RoleUpdate:
		return v.validateRoleUpdate(ctx, *value)

	case models.Product:
		return v.validateProduct(ctx, value, fields...)
	case *models.Product:
		return v.validateProduct(ctx, *value, fields...)

	case models.ProductUpdate:
		return v.validateProductUpdate(ctx, value)
	case *models.ProductUpdate:
		return v.validateProductUpdate(ctx, *value)

	case models.ProductFilter:
		return v.validateProductFilter(ctx, value)
	case *models.ProductFilter:
		return v.validateProductFilter(ctx, *value)

	case models.Category:
		return v.validateCategory(ctx, value, fields...)
	case *models.Category:
		return v.validateCategory(ctx, *value, fields...)

	case models.CategoryUpdate:
		return v.validateCategoryUpdate(ctx, value)
	case *models.CategoryUpdate:
		return v.validateCategoryUpdate(ctx, *value)

	case models.CartItem:
		return v.validateCartItem(ctx, value, fields...)
	case *models.CartItem:
		return v.validateCartItem(ctx, *value, fields...)

	case models.MergeCartRequest:
		return v.validateMergeCartRequest(ctx, value)
	case *models.MergeCartRequest:
		return v.validateMergeCartRequest(ctx, *value)

	case models.CheckoutRequest:
		return v.validateCheckoutRequest(ctx, value, fields...)
	case *models.CheckoutRequest:
		return v.validateCheckoutRequest(ctx, *value, fields...)

	case models.StatusUpdateRequest:
		return v.validateStatusUpdate(ctx, value)
	case *models.StatusUpdateRequest:
		return v.validateStatusUpdate(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}
