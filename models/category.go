// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Category groups products into a tree. A nil ParentID marks a root.
type Category struct {
	CategoryID  int64     `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    *int64    `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}

// CategoryUpdate is a partial update of a category.
type CategoryUpdate struct {
	CategoryID int64 `json:"-"`

	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *int64  `json:"parent_id,omitempty"`

	// MakeRoot detaches the category from its parent.
	// It takes precedence over ParentID.
	MakeRoot bool `json:"make_root,omitempty"`
}

// IsEmpty reports whether the update carries no fields to change.
func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Slug == nil && u.Description == nil && u.ParentID == nil && !u.MakeRoot
}
