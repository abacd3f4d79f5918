// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-ferrari-store/internal/adapter"
	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch extractBody(err, adapter.ErrBadRequest) {
		case app.MsgInvalidDataProvided:
			return ErrInvalidDataProvided
		case app.MsgHashMismatch:
			return ErrCartSignatureRejected
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch extractBody(err, adapter.ErrUnauthorized) {
		case app.MsgInvalidEmailPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpired:
			return ErrTokenIsExpired
		}
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrForbidden):
		return ErrAdminOnly

	case errors.Is(err, adapter.ErrNotFound):
		switch extractBody(err, adapter.ErrNotFound) {
		case app.MsgProductNotFound:
			return store.ErrProductNotFound
		case app.MsgCategoryNotFound:
			return store.ErrCategoryNotFound
		case app.MsgOrderNotFound:
			return store.ErrOrderNotFound
		case app.MsgUserNotFound:
			return store.ErrUserNotFound
		case app.MsgCartItemNotFound:
			return store.ErrCartItemNotFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch extractBody(err, adapter.ErrConflict) {
		case app.MsgEmailAlreadyExists:
			return store.ErrEmailAlreadyExists
		case app.MsgInsufficientStock:
			return store.ErrInsufficientStock
		case app.MsgEmptyCart:
			return ErrEmptyCart
		case app.MsgOrderNotCancellable:
			return ErrOrderNotCancellable
		case app.MsgInvalidStatusTransition:
			return ErrInvalidStatusTransition
		case app.MsgOrderStatusConflict:
			return store.ErrOrderStatusConflict
		}

	case errors.Is(err, adapter.ErrTooManyRequests):
		return ErrTooManyRequests

	case errors.Is(err, adapter.ErrBadGateway):
		switch extractBody(err, adapter.ErrBadGateway) {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}

// extractBody returns the response body that follows the sentinel in a message
// of the form "<op>: not found: <body>".
func extractBody(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if idx := strings.LastIndex(msg, marker); idx != -1 {
		return msg[idx+len(marker):]
	}
	return msg
}
