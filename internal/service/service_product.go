package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type productService struct {
	productStorage store.ProductStorage
	logger         *logger.Logger
}

func NewProductService(productStorage store.ProductStorage, logger *logger.Logger) ProductService {
	return &productService{
		productStorage: productStorage,
		logger:         logger,
	}
}

// CreateProduct stores a catalog entry. An empty slug is derived from the
// name.
func (p *productService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Slug == "" {
		product.Slug = utils.Slugify(product.Name)
	}
	if product.Slug == "" {
		return models.Product{}, fmt.Errorf("%w: cannot derive slug from name %q", ErrInvalidDataProvided, product.Name)
	}
	product.ImageURL = ""

	created, err := p.productStorage.CreateProduct(ctx, product)
	if err != nil {
		return models.Product{}, err
	}

	logger.FromContext(ctx).Info().
		Int64("product_id", created.ProductID).
		Str("slug", created.Slug).
		Msg("product created")
	return created, nil
}

func (p *productService) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	return p.productStorage.GetProduct(ctx, productID)
}

func (p *productService) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	return p.productStorage.GetProductBySlug(ctx, slug)
}

func (p *productService) ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)
	if filter.Sort == "" {
		filter.Sort = models.SortNewest
	}
	return p.productStorage.ListProducts(ctx, filter)
}

func (p *productService) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	return p.productStorage.UpdateProduct(ctx, update)
}

// DeleteProduct removes the product and its stored image.
func (p *productService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := p.productStorage.DeleteProductWithImage(ctx, productID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int64("product_id", productID).Msg("product deleted")
	return nil
}

// UploadImage replaces the product image with the uploaded file.
func (p *productService) UploadImage(ctx context.Context, productID int64, fileName string, r io.Reader) (models.Product, error) {
	if !p.productStorage.ImagesEnabled() {
		return models.Product{}, store.ErrImageStorageDisabled
	}
	return p.productStorage.ReplaceImage(ctx, productID, fileName, r)
}
