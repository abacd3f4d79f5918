package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// productStorage combines the product repository with the optional image
// file storage. Image storage is enabled when an images directory is set.
type productStorage struct {
	ProductRepository

	images ImageFileStorage
	logger *logger.Logger
}

func NewProductStorage(db *DB, cfg config.Storage, logger *logger.Logger) (ProductStorage, error) {
	logger.Debug().Msg("creating product storage")

	storage := &productStorage{
		ProductRepository: NewProductRepository(db, logger),
		logger:            logger,
	}

	if cfg.Files.ImagesDir != "" {
		images, err := NewImageFileStorage(cfg.Files, logger)
		if err != nil {
			return nil, err
		}
		storage.images = images
	}

	return storage, nil
}

func (s *productStorage) ImagesEnabled() bool {
	return s.images != nil
}

func (s *productStorage) ImagesDir() string {
	if s.images == nil {
		return ""
	}
	return s.images.Dir()
}

// ReplaceImage stores the upload first and only then points the product at
// it, so a failed upload leaves the old image untouched. The previous file
// is removed after the row is updated.
func (s *productStorage) ReplaceImage(ctx context.Context, productID int64, originalName string, r io.Reader) (models.Product, error) {
	log := logger.FromContext(ctx)

	if s.images == nil {
		return models.Product{}, ErrImageStorageDisabled
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}

	fileName, err := s.images.SaveImage(ctx, originalName, r)
	if err != nil {
		return models.Product{}, err
	}

	newURL := s.images.PublicURL(fileName)
	if err = s.SetImageURL(ctx, productID, newURL); err != nil {
		_ = s.images.DeleteImage(ctx, fileName)
		return models.Product{}, fmt.Errorf("error saving image url: %w", err)
	}

	if oldName, ok := s.images.FileName(product.ImageURL); ok {
		if delErr := s.images.DeleteImage(ctx, oldName); delErr != nil {
			log.Warn().Err(delErr).
				Str("func", "*productStorage.ReplaceImage").
				Str("file", oldName).
				Msg("failed to delete previous image")
		}
	}

	product.ImageURL = newURL
	return product, nil
}

// DeleteProductWithImage deletes the row, then its stored image if any.
func (s *productStorage) DeleteProductWithImage(ctx context.Context, productID int64) error {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	if err = s.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	if s.images == nil {
		return nil
	}
	if name, ok := s.images.FileName(product.ImageURL); ok {
		if delErr := s.images.DeleteImage(ctx, name); delErr != nil {
			logger.FromContext(ctx).Warn().Err(delErr).
				Str("func", "*productStorage.DeleteProductWithImage").
				Msg("failed to delete product image")
		}
	}

	return nil
}
