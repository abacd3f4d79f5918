package service

import (
	"context"

	"github.com/MKhiriev/go-ferrari-store/models"
)

// cartMergePlanner compares the server cart with the local cart kept by a
// signed-out client. It never touches storage; the caller applies the plan.
type cartMergePlanner struct{}

func NewCartMergePlanner() CartMergePlanner {
	return &cartMergePlanner{}
}

// BuildMergePlan classifies every line in two passes.
//
// Pass 1 walks the local cart:
//   - quantity <= 0: Drop
//   - product not in the server cart: Add
//   - local quantity larger than the server one: Raise to the local quantity
//
// Pass 2 walks the server cart: every line that was not raised is kept.
//
// Quantities are never summed, so merging the same local cart twice yields
// the same server cart. Repeated local lines for one product collapse to the
// largest quantity.
func (p *cartMergePlanner) BuildMergePlan(ctx context.Context, server, local []models.CartItem) (models.CartMergePlan, error) {
	plan := models.CartMergePlan{}

	serverQty := make(map[int64]int, len(server))
	for _, item := range server {
		serverQty[item.ProductID] = max(serverQty[item.ProductID], item.Quantity)
	}

	localQty := make(map[int64]int, len(local))
	order := make([]int64, 0, len(local))
	for _, item := range local {
		if item.Quantity <= 0 {
			plan.Drop = append(plan.Drop, item)
			continue
		}
		if _, seen := localQty[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		localQty[item.ProductID] = max(localQty[item.ProductID], min(item.Quantity, models.MaxCartLineQuantity))
	}

	raised := make(map[int64]struct{})
	for _, productID := range order {
		qty := localQty[productID]
		current, onServer := serverQty[productID]

		switch {
		case !onServer:
			plan.Add = append(plan.Add, models.CartItem{ProductID: productID, Quantity: qty})
		case qty > current:
			plan.Raise = append(plan.Raise, models.CartItem{ProductID: productID, Quantity: qty})
			raised[productID] = struct{}{}
		}
	}

	kept := make(map[int64]struct{}, len(server))
	for _, item := range server {
		if _, ok := raised[item.ProductID]; ok {
			continue
		}
		if _, ok := kept[item.ProductID]; ok {
			continue
		}
		kept[item.ProductID] = struct{}{}
		plan.Keep = append(plan.Keep, models.CartItem{ProductID: item.ProductID, Quantity: serverQty[item.ProductID]})
	}

	return plan, nil
}
