// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// storefront server handlers and the terminal client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies. The client maps them back to typed errors, so the
// wording here is part of the wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned on a failed login. It never reveals
	// whether the email exists.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	MsgTokenIsExpired          = "token is expired"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires the
	// authenticated user but the context carries none.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgAdminOnly is returned by admin routes for customer accounts.
	MsgAdminOnly = "admin role required"

	// MsgCannotModifySelf is returned when an admin tries to demote or delete
	// their own account.
	MsgCannotModifySelf = "cannot demote or delete own account"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"
	MsgEmailAlreadyExists = "email already registered"

	MsgUserNotFound     = "user not found"
	MsgProductNotFound  = "product not found"
	MsgCategoryNotFound = "category not found"
	MsgOrderNotFound    = "order not found"
	MsgCartItemNotFound = "cart item not found"

	MsgSlugAlreadyExists = "slug already exists"
	MsgProductInUse      = "product is referenced by orders"
	MsgCategoryInUse     = "category has subcategories or products"

	// MsgCategoryCycle is returned when a category update would make the
	// category its own ancestor.
	MsgCategoryCycle = "category parent would create a cycle"

	MsgInsufficientStock = "insufficient stock"
	MsgEmptyCart         = "cart is empty"

	// MsgHashMismatch is returned when the HMAC of a cart merge request does
	// not match its items.
	MsgHashMismatch = "hash mismatch"

	MsgInvalidStatusTransition = "order status transition is not allowed"
	MsgOrderNotCancellable     = "order cannot be cancelled"
	MsgOrderStatusConflict     = "order status changed, retry"

	MsgImageStorageDisabled = "image uploads are disabled"
	MsgUnsupportedImageType = "unsupported image type"
	MsgImageTooLarge        = "image is too large"

	MsgTooManyRequests = "too many requests"
)
