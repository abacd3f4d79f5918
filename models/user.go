// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the access level of a storefront account.
type Role string

const (
	// RoleUser is a regular customer: catalog, cart, checkout and own orders.
	RoleUser Role = "user"

	// RoleAdmin additionally manages products, categories, users and orders.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a storefront account.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"user_id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Password carries the plain-text password on register/login requests only.
	// It is cleared before the user leaves the service layer.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// Role is the access level of the account.
	Role Role `json:"role"`

	// Address is the default shipping address used at checkout.
	Address string `json:"address,omitempty"`

	// Phone is an optional contact number.
	Phone string `json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of u without any credential material.
func (u User) Sanitized() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}

// UserUpdate describes a partial profile update.
// Only non-nil fields are applied.
type UserUpdate struct {
	UserID int64 `json:"-"`

	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`

	// PasswordHash is filled by the service when Password is set.
	PasswordHash *string `json:"-"`
}

// IsEmpty reports whether the update carries no fields to change.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Address == nil && u.Phone == nil && u.Password == nil && u.PasswordHash == nil
}

// RoleUpdate is the admin request body for changing a user's role.
type RoleUpdate struct {
	Role Role `json:"role"`
}

// UserList is a page of users returned to admins.
type UserList struct {
	Users  []User `json:"users"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
