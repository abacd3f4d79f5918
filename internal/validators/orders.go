package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-ferrari-store/models"
)

const (
	FieldProductID     = "product_id"
	FieldQuantity      = "quantity"
	FieldPaymentMethod = "payment_method"
)

const (
	MinAddressLength = 5
	// MaxMergeItems bounds the local cart a client may push at once.
	MaxMergeItems = 200
)

func (v *StoreValidator) validateCartItem(ctx context.Context, item models.CartItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProductID, FieldQuantity}
	}

	for _, f := range fields {
		switch f {
		case FieldProductID:
			if item.ProductID <= 0 {
				return ErrInvalidProductID
			}
		case FieldQuantity:
			if item.Quantity < 1 || item.Quantity > models.MaxCartLineQuantity {
				return ErrInvalidQuantity
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateMergeCartRequest accepts non-positive quantities: those lines are
// dropped by the merge planner rather than rejected.
func (v *StoreValidator) validateMergeCartRequest(ctx context.Context, req models.MergeCartRequest) error {
	if len(req.Items) > MaxMergeItems {
		return fmt.Errorf("%w: at most %d lines", ErrInvalidCartMergeItems, MaxMergeItems)
	}
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCartMergeItems, i, ErrInvalidProductID)
		}
		if item.Quantity > models.MaxCartLineQuantity {
			return fmt.Errorf("%w at index %d: %w", ErrInvalidCartMergeItems, i, ErrInvalidQuantity)
		}
	}
	return nil
}

func (v *StoreValidator) validateCheckoutRequest(ctx context.Context, req models.CheckoutRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAddress, FieldPaymentMethod}
	}

	for _, f := range fields {
		switch f {
		case FieldAddress:
			n := utf8.RuneCountInString(strings.TrimSpace(req.ShippingAddress))
			if n < MinAddressLength || n > MaxAddressLength {
				return ErrInvalidAddress
			}
		case FieldPaymentMethod:
			if !req.PaymentMethod.Valid() {
				return ErrInvalidPaymentMethod
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StoreValidator) validateStatusUpdate(ctx context.Context, req models.StatusUpdateRequest) error {
	if !req.Status.Valid() {
		return ErrInvalidOrderStatus
	}
	return nil
}
