// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
)

// humanizeError turns a service error into a line a shopper can act on.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongPassword):
		return "Wrong email or password"
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return "This email is already registered"
	case sessionExpired(err):
		return "Your session expired, sign in again"
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Sign in first"
	case errors.Is(err, service.ErrTooManyRequests):
		return "Too many attempts, wait a minute and retry"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Check the entered data"
	case errors.Is(err, store.ErrInsufficientStock):
		return "Not enough units in stock"
	case errors.Is(err, store.ErrProductNotFound):
		return "This product is no longer available"
	case errors.Is(err, service.ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, service.ErrOrderNotCancellable):
		return "This order can no longer be cancelled"
	case errors.Is(err, store.ErrOrderNotFound):
		return "Order not found"
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "No network or the store is unavailable"
	}

	return err.Error()
}

// sessionExpired reports whether err means the stored token is no longer
// accepted by the server.
func sessionExpired(err error) bool {
	return errors.Is(err, service.ErrSessionExpired) ||
		errors.Is(err, service.ErrTokenIsExpired) ||
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid)
}
