package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func TestCheckout(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{name: "placed", wantStatus: http.StatusCreated},
		{name: "empty cart", serviceErr: service.ErrEmptyCart, wantStatus: http.StatusConflict, wantBody: app.MsgEmptyCart},
		{name: "stock ran out", serviceErr: store.ErrInsufficientStock, wantStatus: http.StatusConflict, wantBody: app.MsgInsufficientStock},
		{name: "bad payment method", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest, wantBody: app.MsgInvalidDataProvided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			req := models.CheckoutRequest{ShippingAddress: "Via Abetone 4", PaymentMethod: models.PaymentPix}
			m.orders.EXPECT().Checkout(gomock.Any(), int64(21), req).
				Return(models.Order{OrderID: 100, Status: models.OrderPending}, tt.serviceErr)

			body := `{"shipping_address":"Via Abetone 4","payment_method":"pix"}`
			rec := serve(http.MethodPost, "/api/orders/checkout", "/api/orders/checkout", strings.NewReader(body), h.checkout, customer)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
			} else {
				assert.Contains(t, rec.Body.String(), `"status":"pending"`)
			}
		})
	}
}

func TestListMyOrders(t *testing.T) {
	h, m := newTestHandler(t)
	m.orders.EXPECT().ListMyOrders(gomock.Any(), int64(21), models.OrderFilter{Status: models.OrderPaid, Limit: 5}).Return(nil, nil)

	rec := serve(http.MethodGet, "/api/orders", "/api/orders?status=paid&limit=5", nil, h.listMyOrders, customer)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListMyOrders_BadQuery(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(http.MethodGet, "/api/orders", "/api/orders?offset=-x", nil, h.listMyOrders, customer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_PassesRole(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		serviceErr error
		wantStatus int
	}{
		{name: "owner", role: models.RoleUser, wantStatus: http.StatusOK},
		{name: "someone else's order", role: models.RoleUser, serviceErr: store.ErrOrderNotFound, wantStatus: http.StatusNotFound},
		{name: "admin", role: models.RoleAdmin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.orders.EXPECT().GetOrder(gomock.Any(), int64(21), tt.role, int64(100)).Return(models.Order{OrderID: 100}, tt.serviceErr)

			rec := serve(http.MethodGet, "/api/orders/{id}", "/api/orders/100", nil, h.getOrder, func(r *http.Request) *http.Request {
				return asUser(r, 21, tt.role)
			})

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCancelOrder(t *testing.T) {
	h, m := newTestHandler(t)
	m.orders.EXPECT().CancelOrder(gomock.Any(), int64(21), int64(100)).Return(models.Order{}, service.ErrOrderNotCancellable)

	rec := serve(http.MethodPost, "/api/orders/{id}/cancel", "/api/orders/100/cancel", nil, h.cancelOrder, customer)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, app.MsgOrderNotCancellable, strings.TrimSpace(rec.Body.String()))
}

func TestListOrders_Admin(t *testing.T) {
	h, m := newTestHandler(t)
	m.orders.EXPECT().ListOrders(gomock.Any(), models.OrderFilter{Offset: 40}).
		Return([]models.Order{{OrderID: 1}, {OrderID: 2}}, nil)

	rec := serve(http.MethodGet, "/api/admin/orders", "/api/admin/orders?offset=40", nil, h.listOrders, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"order_id":2`)
}

func TestUpdateOrderStatus(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "shipped", wantStatus: http.StatusOK},
		{name: "illegal transition", serviceErr: service.ErrInvalidStatusTransition, wantStatus: http.StatusConflict},
		{name: "raced", serviceErr: store.ErrOrderStatusConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.orders.EXPECT().UpdateStatus(gomock.Any(), int64(100), models.OrderShipped).
				Return(models.Order{OrderID: 100, Status: models.OrderShipped}, tt.serviceErr)

			rec := serve(http.MethodPut, "/api/admin/orders/{id}/status", "/api/admin/orders/100/status", strings.NewReader(`{"status":"shipped"}`), h.updateOrderStatus, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
