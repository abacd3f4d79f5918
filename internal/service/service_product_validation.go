package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// ProductValidationService rejects malformed product input before it
// reaches the wrapped ProductService.
type ProductValidationService struct {
	inner     ProductService
	validator validators.Validator
}

func NewProductValidationService(validator validators.Validator) ProductServiceWrapper {
	return &ProductValidationService{validator: validator}
}

func (v *ProductValidationService) Wrap(inner ProductService) ProductService {
	v.inner = inner
	return v
}

func (v *ProductValidationService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	fields := []string{
		validators.FieldName,
		validators.FieldProductType,
		validators.FieldPrice,
		validators.FieldStock,
		validators.FieldScale,
		validators.FieldYear,
		validators.FieldCategoryID,
		validators.FieldDescription,
	}
	// an empty slug is derived from the name later
	if product.Slug != "" {
		fields = append(fields, validators.FieldSlug)
	}

	if err := v.validator.Validate(ctx, product, fields...); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateProduct(ctx, product)
}

func (v *ProductValidationService) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	if productID <= 0 {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidProductID)
	}
	return v.inner.GetProduct(ctx, productID)
}

func (v *ProductValidationService) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	if !validators.IsValidSlug(slug) {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidSlug)
	}
	return v.inner.GetProductBySlug(ctx, slug)
}

func (v *ProductValidationService) ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error) {
	if err := v.validator.Validate(ctx, filter); err != nil {
		return models.ProductPage{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.ListProducts(ctx, filter)
}

func (v *ProductValidationService) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	if update.ProductID <= 0 {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidProductID)
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdateProduct(ctx, update)
}

func (v *ProductValidationService) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidProductID)
	}
	return v.inner.DeleteProduct(ctx, productID)
}

func (v *ProductValidationService) UploadImage(ctx context.Context, productID int64, fileName string, r io.Reader) (models.Product, error) {
	if productID <= 0 || r == nil {
		return models.Product{}, ErrInvalidDataProvided
	}
	return v.inner.UploadImage(ctx, productID, fileName, r)
}
