package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/utils"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// maxMergeBodyBytes bounds the cart merge body read into memory.
const maxMergeBodyBytes = 1 << 20

// cartHashing verifies the HMAC of a cart merge request. The client signs
// the JSON encoding of the items array; the server re-encodes the decoded
// items the same way and compares in constant time.
func (h *Handler) cartHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r).With().Str("func", "*Handler.cartHashing").Logger()

		// read bytes from body
		body, err := io.ReadAll(io.LimitReader(r.Body, maxMergeBodyBytes+1))
		if err != nil {
			log.Err(err).Msg("failed to read request body")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
		if len(body) > maxMergeBodyBytes {
			http.Error(w, app.MsgInvalidDataProvided, http.StatusRequestEntityTooLarge)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		var req models.MergeCartRequest
		if err = json.Unmarshal(body, &req); err != nil {
			log.Debug().Err(err).Msg("failed to decode JSON")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		if req.Items == nil {
			req.Items = []models.CartItem{}
		}
		payload, err := json.Marshal(req.Items)
		if err != nil {
			log.Err(err).Msg("failed to marshal items")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}

		expected := utils.HashHex(payload)
		if !utils.EqualHashes(expected, req.Hash) {
			log.Warn().
				Str("hash from request", req.Hash).
				Str("hashed body", expected).
				Msg("hashes are not equal")
			http.Error(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		log.Debug().Int("items", len(req.Items)).Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}
