package http

import (
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	view, err := h.services.CartService.GetCart(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "error getting cart")
		return
	}

	writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.services.CartService.AddItem(r.Context(), userID, models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		writeServiceError(w, r, err, "error adding cart item")
		return
	}

	writeJSON(w, r, view, http.StatusOK)
}

// setCartItem sets the quantity of a line; the product id in the path wins
// over one in the body.
func (h *Handler) setCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	productID, ok := requirePathID(w, r, "productID")
	if !ok {
		return
	}

	var req models.CartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.services.CartService.SetQuantity(r.Context(), userID, models.CartItem{ProductID: productID, Quantity: req.Quantity})
	if err != nil {
		writeServiceError(w, r, err, "error setting cart quantity")
		return
	}

	writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	productID, ok := requirePathID(w, r, "productID")
	if !ok {
		return
	}

	view, err := h.services.CartService.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeServiceError(w, r, err, "error removing cart item")
		return
	}

	writeJSON(w, r, view, http.StatusOK)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.services.CartService.ClearCart(r.Context(), userID); err != nil {
		writeServiceError(w, r, err, "error clearing cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mergeCart folds a signed-out cart into the user's cart. The body has
// already passed cartHashing.
func (h *Handler) mergeCart(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.MergeCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.services.CartService.MergeCart(r.Context(), userID, req.Items)
	if err != nil {
		writeServiceError(w, r, err, "error merging cart")
		return
	}

	writeJSON(w, r, view, http.StatusOK)
}
