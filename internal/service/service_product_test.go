package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func newProductService(t *testing.T) (ProductService, *mock.MockProductStorage) {
	t.Helper()
	storage := mock.NewMockProductStorage(gomock.NewController(t))
	inner := NewProductService(storage, logger.Nop())
	return NewProductValidationService(validators.NewStoreValidator()).Wrap(inner), storage
}

func validProduct() models.Product {
	return models.Product{
		Name:       "Ferrari 250 GTO (1962)",
		Type:       models.ProductTypeCar,
		PriceCents: 24990,
		Stock:      4,
		Scale:      "1:18",
		Year:       1962,
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("slug derived from name", func(t *testing.T) {
		svc, storage := newProductService(t)
		p := validProduct()
		p.Name = "  " + p.Name + " "
		p.ImageURL = "/static/images/spoofed.png"

		storage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got models.Product) (models.Product, error) {
				assert.Equal(t, "Ferrari 250 GTO (1962)", got.Name)
				assert.Equal(t, "ferrari-250-gto-1962", got.Slug)
				assert.Empty(t, got.ImageURL, "image is set only through upload")
				got.ProductID = 11
				return got, nil
			})

		created, err := svc.CreateProduct(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ProductID)
	})

	t.Run("explicit slug kept", func(t *testing.T) {
		svc, storage := newProductService(t)
		p := validProduct()
		p.Slug = "gto-62"

		storage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got models.Product) (models.Product, error) {
				assert.Equal(t, "gto-62", got.Slug)
				return got, nil
			})

		_, err := svc.CreateProduct(context.Background(), p)
		require.NoError(t, err)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, storage := newProductService(t)
		storage.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(models.Product{}, store.ErrSlugAlreadyExists)

		_, err := svc.CreateProduct(context.Background(), validProduct())
		assert.ErrorIs(t, err, store.ErrSlugAlreadyExists)
	})
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Product)
		wantErr error
	}{
		{name: "zero price", mutate: func(p *models.Product) { p.PriceCents = 0 }, wantErr: validators.ErrInvalidPrice},
		{name: "negative stock", mutate: func(p *models.Product) { p.Stock = -1 }, wantErr: validators.ErrInvalidStock},
		{name: "unknown type", mutate: func(p *models.Product) { p.Type = "boat" }, wantErr: validators.ErrInvalidProductType},
		{name: "bad scale", mutate: func(p *models.Product) { p.Scale = "18" }, wantErr: validators.ErrInvalidScale},
		{name: "year before the first Ferrari", mutate: func(p *models.Product) { p.Year = 1900 }, wantErr: validators.ErrInvalidYear},
		{name: "bad slug", mutate: func(p *models.Product) { p.Slug = "Not A Slug" }, wantErr: validators.ErrInvalidSlug},
		{name: "description too long", mutate: func(p *models.Product) {
			p.Description = strings.Repeat("x", validators.MaxDescriptionLength+1)
		}, wantErr: validators.ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newProductService(t)
			p := validProduct()
			tt.mutate(&p)

			_, err := svc.CreateProduct(context.Background(), p)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductService_ListProducts(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		svc, storage := newProductService(t)
		storage.EXPECT().
			ListProducts(gomock.Any(), models.ProductFilter{Type: models.ProductTypeFormula1, Sort: models.SortNewest, Limit: 20}).
			Return(models.ProductPage{Total: 1}, nil)

		page, err := svc.ListProducts(context.Background(), models.ProductFilter{Type: models.ProductTypeFormula1})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("inverted price range", func(t *testing.T) {
		svc, _ := newProductService(t)

		_, err := svc.ListProducts(context.Background(), models.ProductFilter{MinPriceCents: 5000, MaxPriceCents: 100})
		assert.ErrorIs(t, err, validators.ErrInvalidProductFilter)
	})
}

func TestProductService_GetProduct(t *testing.T) {
	svc, storage := newProductService(t)

	_, err := svc.GetProduct(context.Background(), 0)
	assert.ErrorIs(t, err, validators.ErrInvalidProductID)

	_, err = svc.GetProductBySlug(context.Background(), "../etc")
	assert.ErrorIs(t, err, validators.ErrInvalidSlug)

	storage.EXPECT().GetProductBySlug(gomock.Any(), "sf90-stradale").Return(models.Product{ProductID: 1}, nil)
	p, err := svc.GetProductBySlug(context.Background(), "sf90-stradale")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ProductID)
}

func TestProductService_UpdateProduct(t *testing.T) {
	t.Run("name trimmed", func(t *testing.T) {
		svc, storage := newProductService(t)
		name := "  F2004  "
		storage.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u models.ProductUpdate) (models.Product, error) {
				assert.Equal(t, "F2004", *u.Name)
				return models.Product{ProductID: u.ProductID, Name: *u.Name}, nil
			})

		got, err := svc.UpdateProduct(context.Background(), models.ProductUpdate{ProductID: 2, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "F2004", got.Name)
	})

	t.Run("nothing to update", func(t *testing.T) {
		svc, _ := newProductService(t)

		_, err := svc.UpdateProduct(context.Background(), models.ProductUpdate{ProductID: 2})
		assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc, storage := newProductService(t)

	storage.EXPECT().DeleteProductWithImage(gomock.Any(), int64(3)).Return(store.ErrProductInUse)
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), 3), store.ErrProductInUse)

	storage.EXPECT().DeleteProductWithImage(gomock.Any(), int64(4)).Return(nil)
	assert.NoError(t, svc.DeleteProduct(context.Background(), 4))
}

func TestProductService_UploadImage(t *testing.T) {
	t.Run("storage disabled", func(t *testing.T) {
		svc, storage := newProductService(t)
		storage.EXPECT().ImagesEnabled().Return(false)

		_, err := svc.UploadImage(context.Background(), 1, "sf90.png", strings.NewReader("png"))
		assert.ErrorIs(t, err, store.ErrImageStorageDisabled)
	})

	t.Run("replaces image", func(t *testing.T) {
		svc, storage := newProductService(t)
		storage.EXPECT().ImagesEnabled().Return(true)
		storage.EXPECT().ReplaceImage(gomock.Any(), int64(1), "sf90.png", gomock.Any()).
			Return(models.Product{ProductID: 1, ImageURL: "/static/images/abc.png"}, nil)

		got, err := svc.UploadImage(context.Background(), 1, "sf90.png", strings.NewReader("png"))
		require.NoError(t, err)
		assert.Equal(t, "/static/images/abc.png", got.ImageURL)
	})

	t.Run("missing body", func(t *testing.T) {
		svc, _ := newProductService(t)

		_, err := svc.UploadImage(context.Background(), 1, "sf90.png", nil)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}
