// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the statuses reachable from each status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Restocks reports whether cancelling from status s returns items to stock.
// Everything that has not left the warehouse is restocked.
func (s OrderStatus) Restocks() bool {
	return s == OrderPending || s == OrderPaid
}

// PaymentMethod is the way the customer intends to pay.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentPix            PaymentMethod = "pix"
	PaymentBoleto         PaymentMethod = "boleto"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentPix, PaymentBoleto, PaymentCashOnDelivery:
		return true
	}
	return false
}

// OrderItem is a snapshot of a purchased product at checkout time.
type OrderItem struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// LineTotalCents returns the price of the line.
func (i OrderItem) LineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Order is a placed purchase.
type Order struct {
	OrderID         int64         `json:"order_id"`
	UserID          int64         `json:"user_id"`
	Status          OrderStatus   `json:"status"`
	Items           []OrderItem   `json:"items"`
	SubtotalCents   int64         `json:"subtotal_cents"`
	ShippingCents   int64         `json:"shipping_cents"`
	TotalCents      int64         `json:"total_cents"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Order model.
func (o Order) TableName() string {
	return "orders"
}

// CheckoutRequest is the body of POST /api/orders/checkout.
type CheckoutRequest struct {
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
}

// StatusUpdateRequest is the admin body for moving an order along its lifecycle.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status OrderStatus `json:"status,omitempty"`
	Limit  int         `json:"limit,omitempty"`
	Offset int         `json:"offset,omitempty"`
}

// ShippingPolicy prices delivery: a flat fee below the free shipping threshold.
type ShippingPolicy struct {
	FlatCents     int64 `json:"flat_cents"`
	FreeFromCents int64 `json:"free_from_cents"`
}

// Cost returns the shipping fee for an order with the given subtotal.
// A zero threshold disables free shipping.
func (p ShippingPolicy) Cost(subtotalCents int64) int64 {
	if p.FreeFromCents > 0 && subtotalCents >= p.FreeFromCents {
		return 0
	}
	return p.FlatCents
}
