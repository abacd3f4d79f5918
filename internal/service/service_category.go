package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type categoryService struct {
	categoryRepository store.CategoryRepository
	validator          validators.Validator
	logger             *logger.Logger
}

func NewCategoryService(categoryRepository store.CategoryRepository, validator validators.Validator, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		validator:          validator,
		logger:             logger,
	}
}

// CreateCategory stores a category. The parent, if any, must exist.
func (c *categoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}
	if err := c.validator.Validate(ctx, category); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if category.ParentID != nil {
		if _, err := c.categoryRepository.GetCategory(ctx, *category.ParentID); err != nil {
			return models.Category{}, err
		}
	}

	return c.categoryRepository.CreateCategory(ctx, category)
}

func (c *categoryService) GetCategory(ctx context.Context, categoryID int64) (models.Category, error) {
	return c.categoryRepository.GetCategory(ctx, categoryID)
}

func (c *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.categoryRepository.ListCategories(ctx)
}

// UpdateCategory applies a partial update. Re-parenting is refused with
// ErrCategoryCycle when the new parent is the category itself or one of its
// descendants.
func (c *categoryService) UpdateCategory(ctx context.Context, update models.CategoryUpdate) (models.Category, error) {
	if err := c.validator.Validate(ctx, update); err != nil {
		return models.Category{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if update.ParentID != nil && !update.MakeRoot {
		if err := c.checkParentCycle(ctx, update.CategoryID, *update.ParentID); err != nil {
			return models.Category{}, err
		}
	}

	updated, err := c.categoryRepository.UpdateCategory(ctx, update)
	if err != nil {
		return models.Category{}, err
	}

	logger.FromContext(ctx).Info().Int64("category_id", updated.CategoryID).Msg("category updated")
	return updated, nil
}

// checkParentCycle walks from newParentID towards the root. Meeting
// categoryID on the way means categoryID would become its own ancestor.
// The walk is bounded by the number of categories so that a cycle already
// present in stored data cannot loop forever.
func (c *categoryService) checkParentCycle(ctx context.Context, categoryID, newParentID int64) error {
	if categoryID == newParentID {
		return ErrCategoryCycle
	}

	total, err := c.categoryRepository.CountCategories(ctx)
	if err != nil {
		return err
	}

	current := newParentID
	for range total + 1 {
		if current == categoryID {
			return ErrCategoryCycle
		}

		parentID, err := c.categoryRepository.GetParentID(ctx, current)
		if err != nil {
			return err
		}
		if parentID == nil {
			return nil
		}
		current = *parentID
	}

	logger.FromContext(ctx).Error().
		Int64("category_id", categoryID).
		Int64("parent_id", newParentID).
		Msg("category parent chain does not reach a root")
	return ErrCategoryCycle
}

func (c *categoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	return c.categoryRepository.DeleteCategory(ctx, categoryID)
}
