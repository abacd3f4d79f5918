// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProductType discriminates the kind of miniature sold in the catalog.
type ProductType string

const (
	// ProductTypeCar is a road-car miniature.
	ProductTypeCar ProductType = "car"

	// ProductTypeFormula1 is a Formula 1 car miniature.
	ProductTypeFormula1 ProductType = "formula1"

	// ProductTypeHelmet is a driver helmet replica.
	ProductTypeHelmet ProductType = "helmet"
)

// ProductTypes lists every accepted product type in display order.
var ProductTypes = []ProductType{ProductTypeCar, ProductTypeFormula1, ProductTypeHelmet}

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	for _, known := range ProductTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Product is a catalog entry.
//
// Prices are stored in cents to keep arithmetic exact.
type Product struct {
	ProductID   int64       `json:"product_id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Type        ProductType `json:"type"`

	// CategoryID is optional; nil means "uncategorized".
	CategoryID *int64 `json:"category_id,omitempty"`

	PriceCents int64 `json:"price_cents"`
	Stock      int   `json:"stock"`

	// Scale is the miniature scale, e.g. "1:18" or "1:43".
	Scale string `json:"scale,omitempty"`

	// Year is the model year of the real car the miniature reproduces.
	Year int `json:"year,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	Featured bool   `json:"featured"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Product model.
func (p Product) TableName() string {
	return "products"
}

// InStock reports whether at least quantity units are available.
func (p Product) InStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// ProductUpdate represents a partial update of a catalog entry.
// Only non-nil fields are updated.
type ProductUpdate struct {
	ProductID int64 `json:"-"`

	Name        *string      `json:"name,omitempty"`
	Slug        *string      `json:"slug,omitempty"`
	Description *string      `json:"description,omitempty"`
	Type        *ProductType `json:"type,omitempty"`
	CategoryID  *int64       `json:"category_id,omitempty"`
	PriceCents  *int64       `json:"price_cents,omitempty"`
	Stock       *int         `json:"stock,omitempty"`
	Scale       *string      `json:"scale,omitempty"`
	Year        *int         `json:"year,omitempty"`
	Featured    *bool        `json:"featured,omitempty"`

	// ClearCategory detaches the product from its category.
	// It takes precedence over CategoryID.
	ClearCategory bool `json:"clear_category,omitempty"`
}

// IsEmpty reports whether the update carries no fields to change.
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Slug == nil && u.Description == nil && u.Type == nil &&
		u.CategoryID == nil && u.PriceCents == nil && u.Stock == nil && u.Scale == nil &&
		u.Year == nil && u.Featured == nil && !u.ClearCategory
}

// ProductSort selects the ordering of a product listing.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

// Valid reports whether s is a known sort order. The empty value is valid
// and means SortNewest.
func (s ProductSort) Valid() bool {
	switch s {
	case "", SortNewest, SortPriceAsc, SortPriceDesc, SortName:
		return true
	}
	return false
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Type          ProductType `json:"type,omitempty"`
	CategoryID    int64       `json:"category_id,omitempty"`
	Search        string      `json:"q,omitempty"`
	MinPriceCents int64       `json:"min_price,omitempty"`
	MaxPriceCents int64       `json:"max_price,omitempty"`
	FeaturedOnly  bool        `json:"featured,omitempty"`
	InStockOnly   bool        `json:"in_stock,omitempty"`
	Sort          ProductSort `json:"sort,omitempty"`
	Limit         int         `json:"limit,omitempty"`
	Offset        int         `json:"offset,omitempty"`
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
