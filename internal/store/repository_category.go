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

type categoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{DB: db, logger: logger}
}

func categoryWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrSlugAlreadyExists
	case pgerrcode.ForeignKeyViolation:
		return ErrCategoryNotFound
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}

func (c *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query, args, err := buildInsertCategoryQuery(ctx, category)
	if err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Category
	if err = scanCategory(c.DB.QueryRowContext(ctx, query, args...), &created); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*categoryRepository.CreateCategory").
			Str("slug", category.Slug).
			Msg("failed to insert category")
		return models.Category{}, categoryWriteError(err)
	}

	return created, nil
}

func (c *categoryRepository) GetCategory(ctx context.Context, categoryID int64) (models.Category, error) {
	categories, err := c.selectCategories(ctx, sq.Eq{"category_id": categoryID})
	if err != nil {
		return models.Category{}, err
	}
	if len(categories) == 0 {
		return models.Category{}, ErrCategoryNotFound
	}
	return categories[0], nil
}

func (c *categoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.selectCategories(ctx, nil)
}

func (c *categoryRepository) selectCategories(ctx context.Context, where sq.Sqlizer) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCategoriesQuery(ctx, where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.selectCategories").Msg("failed to query categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 16)
	for rows.Next() {
		var category models.Category
		if err = scanCategory(rows, &category); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

func (c *categoryRepository) UpdateCategory(ctx context.Context, update models.CategoryUpdate) (models.Category, error) {
	if update.IsEmpty() {
		return c.GetCategory(ctx, update.CategoryID)
	}

	query, args, err := buildUpdateCategoryQuery(ctx, update)
	if err != nil {
		return models.Category{}, err
	}

	var category models.Category
	if err = scanCategory(c.DB.QueryRowContext(ctx, query, args...), &category); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*categoryRepository.UpdateCategory").
			Int64("category_id", update.CategoryID).
			Msg("failed to update category")
		return models.Category{}, categoryWriteError(err)
	}

	return category, nil
}

// DeleteCategory removes a category that has neither subcategories nor
// products; otherwise [ErrCategoryInUse].
func (c *categoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	result, err := c.DB.ExecContext(ctx, deleteCategory, categoryID)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
			return ErrCategoryInUse
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// GetParentID returns the parent of the category, nil for a root.
func (c *categoryRepository) GetParentID(ctx context.Context, categoryID int64) (*int64, error) {
	var parentID sql.NullInt64
	if err := c.DB.QueryRowContext(ctx, selectCategoryParent, categoryID).Scan(&parentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nullInt64Ptr(parentID), nil
}

func (c *categoryRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, countCategories).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}
