package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/store"
	"github.com/MKhiriev/go-ferrari-store/models"
)

func openCheckout(m clientMocks) *CheckoutModel {
	c := NewCheckoutModel(testCtx, m.orders)
	c.Update(cartLoadedMsg{view: sampleCart()})
	return c
}

func TestCheckout_ShortAddress(t *testing.T) {
	c := openCheckout(newClientMocks(t))
	c.Update(press("Rua"))

	_, cmd := c.Update(press("enter"))

	assert.Nil(t, cmd)
	assert.Contains(t, c.View(), "Enter the full shipping address")
}

func TestCheckout_PlacesOrder(t *testing.T) {
	m := newClientMocks(t)
	placed := models.Order{OrderID: 501, Status: models.OrderPending, TotalCents: 349880}
	m.orders.EXPECT().Checkout(gomock.Any(), models.CheckoutRequest{
		ShippingAddress: "Via Abetone Inferiore 4, Maranello",
		PaymentMethod:   models.PaymentCard,
	}).Return(placed, nil)

	c := openCheckout(m)
	c.Update(press("Via Abetone Inferiore 4, Maranello"))
	c.Update(press("tab"))
	c.Update(press("right"))
	assert.Contains(t, c.View(), "(Credit card)")

	_, cmd := c.Update(press("enter"))
	assert.True(t, c.submitting)

	result := find[orderPlacedMsg](t, cmd)
	_, cmd = c.Update(result)

	nav := find[NavigateTo](t, cmd)
	assert.Equal(t, pageOrders, nav.Page)
	assert.Equal(t, orderPlacedMsg{order: placed}, nav.Payload)
	assert.Empty(t, c.address.Value())
}

func TestCheckout_PaymentWrapsAround(t *testing.T) {
	c := openCheckout(newClientMocks(t))
	c.Update(press("tab"))

	c.Update(press("left"))

	assert.Equal(t, models.PaymentCashOnDelivery, paymentMethods[c.payment])
}

func TestCheckout_StockChangedMeanwhile(t *testing.T) {
	m := newClientMocks(t)
	m.orders.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(models.Order{}, store.ErrInsufficientStock)

	c := openCheckout(m)
	c.Update(press("Av. Paulista 1000, São Paulo"))
	_, cmd := c.Update(press("enter"))
	_, cmd = c.Update(find[orderPlacedMsg](t, cmd))

	assert.Nil(t, cmd)
	assert.False(t, c.submitting)
	assert.Contains(t, c.View(), "Not enough units in stock")
}
