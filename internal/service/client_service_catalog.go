package service

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type clientCatalogService struct {
	adapter adapter.ServerAdapter
}

func NewClientCatalogService(serverAdapter adapter.ServerAdapter) ClientCatalogService {
	return &clientCatalogService{adapter: serverAdapter}
}

func (c *clientCatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error) {
	page, err := c.adapter.ListProducts(ctx, filter)
	if err != nil {
		return models.ProductPage{}, mapAdapterError(err)
	}
	return page, nil
}

func (c *clientCatalogService) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	product, err := c.adapter.GetProduct(ctx, productID)
	if err != nil {
		return models.Product{}, mapAdapterError(err)
	}
	return product, nil
}

func (c *clientCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := c.adapter.ListCategories(ctx)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return categories, nil
}
