// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

// methodNotAllowed is registered with chi's MethodNotAllowed hook.
//
// Chi answers 405 Method Not Allowed when a path is routed but the method is
// not. The storefront answers 404 instead so that callers probing with
// unsupported methods learn nothing about which paths exist, admin paths
// included.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method not routed")
	http.NotFound(w, r)
}
