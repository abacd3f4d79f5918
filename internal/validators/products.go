package validators

import (
	"context"
	"regexp"
	"unicode/utf8"

	"github.com/MKhiriev/go-ferrari-store/models"
)

const (
	FieldSlug        = "slug"
	FieldProductType = "type"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldScale       = "scale"
	FieldYear        = "year"
	FieldCategoryID  = "category_id"
	FieldDescription = "description"
)

const (
	MaxDescriptionLength = 5000
	MaxSlugLength        = 120
	// first Ferrari-badged car
	MinModelYear = 1947
	MaxModelYear = 2100
	MaxPageLimit = 100
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	scalePattern = regexp.MustCompile(`^1:[1-9][0-9]{0,2}$`)
)

func (v *StoreValidator) validateProduct(ctx context.Context, p models.Product, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldSlug, FieldProductType, FieldPrice, FieldStock, FieldScale, FieldYear, FieldCategoryID, FieldDescription}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if !isValidName(p.Name) {
				return ErrInvalidName
			}
		case FieldSlug:
			if !isValidSlug(p.Slug) {
				return ErrInvalidSlug
			}
		case FieldProductType:
			if !p.Type.Valid() {
				return ErrInvalidProductType
			}
		case FieldPrice:
			if p.PriceCents <= 0 {
				return ErrInvalidPrice
			}
		case FieldStock:
			if p.Stock < 0 {
				return ErrInvalidStock
			}
		case FieldScale:
			if p.Scale != "" && !scalePattern.MatchString(p.Scale) {
				return ErrInvalidScale
			}
		case FieldYear:
			if p.Year != 0 && !isValidYear(p.Year) {
				return ErrInvalidYear
			}
		case FieldCategoryID:
			if p.CategoryID != nil && *p.CategoryID <= 0 {
				return ErrInvalidCategoryID
			}
		case FieldDescription:
			if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
				return ErrDescriptionTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StoreValidator) validateProductUpdate(ctx context.Context, u models.ProductUpdate) error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	switch {
	case u.Name != nil && !isValidName(*u.Name):
		return ErrInvalidName
	case u.Slug != nil && !isValidSlug(*u.Slug):
		return ErrInvalidSlug
	case u.Type != nil && !u.Type.Valid():
		return ErrInvalidProductType
	case u.PriceCents != nil && *u.PriceCents <= 0:
		return ErrInvalidPrice
	case u.Stock != nil && *u.Stock < 0:
		return ErrInvalidStock
	case u.Scale != nil && *u.Scale != "" && !scalePattern.MatchString(*u.Scale):
		return ErrInvalidScale
	case u.Year != nil && *u.Year != 0 && !isValidYear(*u.Year):
		return ErrInvalidYear
	case u.CategoryID != nil && *u.CategoryID <= 0:
		return ErrInvalidCategoryID
	case u.Description != nil && utf8.RuneCountInString(*u.Description) > MaxDescriptionLength:
		return ErrDescriptionTooLong
	}

	return nil
}

func (v *StoreValidator) validateProductFilter(ctx context.Context, f models.ProductFilter) error {
	switch {
	case f.Type != "" && !f.Type.Valid():
		return ErrInvalidProductType
	case !f.Sort.Valid():
		return ErrInvalidProductFilter
	case f.MinPriceCents < 0 || f.MaxPriceCents < 0:
		return ErrInvalidPrice
	case f.MaxPriceCents > 0 && f.MinPriceCents > f.MaxPriceCents:
		return ErrInvalidProductFilter
	case f.Limit < 0 || f.Limit > MaxPageLimit || f.Offset < 0:
		return ErrInvalidProductFilter
	case f.CategoryID < 0:
		return ErrInvalidCategoryID
	}
	return nil
}

func (v *StoreValidator) validateCategory(ctx context.Context, c models.Category, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldSlug, FieldCategoryID}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if !isValidName(c.Name) {
				return ErrInvalidName
			}
		case FieldSlug:
			if !isValidSlug(c.Slug) {
				return ErrInvalidSlug
			}
		case FieldCategoryID:
			if c.ParentID != nil && *c.ParentID <= 0 {
				return ErrInvalidCategoryID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StoreValidator) validateCategoryUpdate(ctx context.Context, u models.CategoryUpdate) error {
	switch {
	case u.IsEmpty():
		return ErrNoFieldsToUpdate
	case u.Name != nil && !isValidName(*u.Name):
		return ErrInvalidName
	case u.Slug != nil && !isValidSlug(*u.Slug):
		return ErrInvalidSlug
	case u.ParentID != nil && *u.ParentID <= 0:
		return ErrInvalidCategoryID
	}
	return nil
}

func isValidSlug(slug string) bool {
	return len(slug) <= MaxSlugLength && slugPattern.MatchString(slug)
}

func isValidYear(year int) bool {
	return year >= MinModelYear && year <= MaxModelYear
}

// IsValidSlug reports whether slug is lowercase words joined by single dashes.
func IsValidSlug(slug string) bool {
	return isValidSlug(slug)
}
