package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type productRepository struct {
	*DB
	logger *logger.Logger
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{DB: db, logger: logger}
}

// productWriteError maps constraint violations of product writes.
func productWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrSlugAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		return ErrCategoryNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}

func (p *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProductQuery(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Product
	if err = scanProduct(p.DB.QueryRowContext(ctx, query, args...), &created); err != nil {
		log.Err(err).
			Str("func", "*productRepository.CreateProduct").
			Str("slug", product.Slug).
			Msg("failed to insert product")
		return models.Product{}, productWriteError(err)
	}

	return created, nil
}

func (p *productRepository) GetProduct(ctx context.Context, productID int64) (models.Product, error) {
	return p.getProduct(ctx, sq.Eq{"product_id": productID})
}

func (p *productRepository) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	return p.getProduct(ctx, sq.Eq{"slug": slug})
}

func (p *productRepository) getProduct(ctx context.Context, where sq.Eq) (models.Product, error) {
	query, args, err := buildSelectProductQuery(ctx, where)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var product models.Product
	if err = scanProduct(p.DB.QueryRowContext(ctx, query, args...), &product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*productRepository.getProduct").Msg("failed to select product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return product, nil
}

// GetProducts returns the products with the given ids. Missing ids are
// silently skipped.
func (p *productRepository) GetProducts(ctx context.Context, productIDs []int64) ([]models.Product, error) {
	if len(productIDs) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := buildSelectProductQuery(ctx, sq.Eq{"product_id": productIDs})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return p.queryProducts(ctx, "*productRepository.GetProducts", query, args, len(productIDs))
}

// ListProducts returns one page of the filtered catalog together with the
// total number of matching products.
func (p *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) (models.ProductPage, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountProductsQuery(ctx, filter)
	if err != nil {
		return models.ProductPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = p.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*productRepository.ListProducts").Msg("failed to count products")
		return models.ProductPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	page := models.ProductPage{Products: []models.Product{}, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	if total == 0 || filter.Offset >= total {
		return page, nil
	}

	query, args, err := buildListProductsQuery(ctx, filter)
	if err != nil {
		return models.ProductPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	page.Products, err = p.queryProducts(ctx, "*productRepository.ListProducts", query, args, filter.Limit)
	if err != nil {
		return models.ProductPage{}, err
	}

	return page, nil
}

func (p *productRepository) queryProducts(ctx context.Context, funcName, query string, args []any, capacity int) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query products")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, capacity)
	for rows.Next() {
		var product models.Product
		if err = scanProduct(rows, &product); err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

func (p *productRepository) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	if update.IsEmpty() {
		return p.GetProduct(ctx, update.ProductID)
	}

	query, args, err := buildUpdateProductQuery(ctx, update)
	if err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err = scanProduct(p.DB.QueryRowContext(ctx, query, args...), &product); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*productRepository.UpdateProduct").
			Int64("product_id", update.ProductID).
			Msg("failed to update product")
		return models.Product{}, productWriteError(err)
	}

	return product, nil
}

func (p *productRepository) SetImageURL(ctx context.Context, productID int64, imageURL string) error {
	result, err := p.DB.ExecContext(ctx, setProductImageURL, imageURL, productID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes the product. Products referenced by order history
// cannot be removed and yield [ErrProductInUse].
func (p *productRepository) DeleteProduct(ctx context.Context, productID int64) error {
	result, err := p.DB.ExecContext(ctx, deleteProduct, productID)
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation || postgresError(err) == pgerrcode.RestrictViolation {
			return ErrProductInUse
		}
		logger.FromContext(ctx).Err(err).Str("func", "*productRepository.DeleteProduct").Msg("failed to delete product")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
