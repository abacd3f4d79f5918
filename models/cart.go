// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MaxCartLineQuantity caps the quantity of a single cart line.
const MaxCartLineQuantity = 99

// CartItem is a single cart line as persisted: a product and a quantity.
type CartItem struct {
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Cart is the server-side cart of a user.
type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartLine is a cart item joined with its product for display.
type CartLine struct {
	Product        Product `json:"product"`
	Quantity       int     `json:"quantity"`
	LineTotalCents int64   `json:"line_total_cents"`
}

// CartView is the priced representation of a cart returned to clients.
type CartView struct {
	Lines         []CartLine `json:"lines"`
	ItemsCount    int        `json:"items_count"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

// NewCartView prices lines and computes the totals.
func NewCartView(lines []CartLine) CartView {
	view := CartView{Lines: make([]CartLine, 0, len(lines))}
	for _, line := range lines {
		line.LineTotalCents = line.Product.PriceCents * int64(line.Quantity)
		view.ItemsCount += line.Quantity
		view.SubtotalCents += line.LineTotalCents
		view.Lines = append(view.Lines, line)
	}
	return view
}

// CartItemRequest is the body of add/set cart item requests.
type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// MergeCartRequest carries the locally kept cart that has to be reconciled
// with the server cart after login. Hash is the hex HMAC-SHA256 of the
// JSON-encoded Items.
type MergeCartRequest struct {
	Items []CartItem `json:"items"`
	Hash  string     `json:"hash"`
}

// CartMergePlan classifies every cart line seen during reconciliation.
//
//   - Add: lines present only in the local cart.
//   - Raise: lines present on both sides where the local quantity is larger.
//   - Keep: server lines that stay untouched.
//   - Drop: local lines that are discarded (non-positive quantity).
type CartMergePlan struct {
	Add   []CartItem `json:"add,omitempty"`
	Raise []CartItem `json:"raise,omitempty"`
	Keep  []CartItem `json:"keep,omitempty"`
	Drop  []CartItem `json:"drop,omitempty"`
}

// Result returns the merged cart content: Keep, then Raise, then Add.
func (p CartMergePlan) Result() []CartItem {
	merged := make([]CartItem, 0, len(p.Keep)+len(p.Raise)+len(p.Add))
	merged = append(merged, p.Keep...)
	merged = append(merged, p.Raise...)
	merged = append(merged, p.Add...)
	return merged
}

// IsNoop reports whether applying the plan leaves the server cart unchanged.
func (p CartMergePlan) IsNoop() bool {
	return len(p.Add) == 0 && len(p.Raise) == 0
}
