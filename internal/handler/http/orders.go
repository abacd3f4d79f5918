package http

import (
	"net/http"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.services.OrderService.Checkout(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "checkout failed")
		return
	}

	writeJSON(w, r, order, http.StatusCreated)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter, ok := orderFilterFromQuery(w, r)
	if !ok {
		return
	}

	orders, err := h.services.OrderService.ListMyOrders(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, r, err, "error listing orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	writeJSON(w, r, orders, http.StatusOK)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	orderID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.services.OrderService.GetOrder(r.Context(), userID, role, orderID)
	if err != nil {
		writeServiceError(w, r, err, "error getting order")
		return
	}

	writeJSON(w, r, order, http.StatusOK)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}
	orderID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.services.OrderService.CancelOrder(r.Context(), userID, orderID)
	if err != nil {
		writeServiceError(w, r, err, "error cancelling order")
		return
	}

	writeJSON(w, r, order, http.StatusOK)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter, ok := orderFilterFromQuery(w, r)
	if !ok {
		return
	}

	orders, err := h.services.OrderService.ListOrders(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "error listing orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	writeJSON(w, r, orders, http.StatusOK)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req models.StatusUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.services.OrderService.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeServiceError(w, r, err, "error updating order status")
		return
	}

	writeJSON(w, r, order, http.StatusOK)
}

func orderFilterFromQuery(w http.ResponseWriter, r *http.Request) (models.OrderFilter, bool) {
	filter := models.OrderFilter{Status: models.OrderStatus(r.URL.Query().Get("status"))}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err == nil {
		filter.Offset, err = queryInt(r, "offset")
	}
	if err != nil {
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return models.OrderFilter{}, false
	}
	return filter, true
}
