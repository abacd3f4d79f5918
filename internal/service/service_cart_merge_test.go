package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func item(productID int64, quantity int) models.CartItem {
	return models.CartItem{ProductID: productID, Quantity: quantity}
}

func TestBuildMergePlan(t *testing.T) {
	tests := []struct {
		name   string
		server []models.CartItem
		local  []models.CartItem
		want   models.CartMergePlan
	}{
		{
			name: "both empty",
			want: models.CartMergePlan{},
		},
		{
			name:   "local only lines are added",
			local:  []models.CartItem{item(1, 2), item(2, 1)},
			want:   models.CartMergePlan{Add: []models.CartItem{item(1, 2), item(2, 1)}},
			server: nil,
		},
		{
			name:   "server only lines are kept",
			server: []models.CartItem{item(3, 4)},
			want:   models.CartMergePlan{Keep: []models.CartItem{item(3, 4)}},
		},
		{
			name:   "larger local quantity raises the server line",
			server: []models.CartItem{item(1, 1)},
			local:  []models.CartItem{item(1, 3)},
			want:   models.CartMergePlan{Raise: []models.CartItem{item(1, 3)}},
		},
		{
			name:   "smaller local quantity keeps the server line",
			server: []models.CartItem{item(1, 5)},
			local:  []models.CartItem{item(1, 2)},
			want:   models.CartMergePlan{Keep: []models.CartItem{item(1, 5)}},
		},
		{
			name:   "equal quantities keep the server line",
			server: []models.CartItem{item(1, 2)},
			local:  []models.CartItem{item(1, 2)},
			want:   models.CartMergePlan{Keep: []models.CartItem{item(1, 2)}},
		},
		{
			name:  "non-positive local lines are dropped",
			local: []models.CartItem{item(1, 0), item(2, -1), item(3, 1)},
			want: models.CartMergePlan{
				Add:  []models.CartItem{item(3, 1)},
				Drop: []models.CartItem{item(1, 0), item(2, -1)},
			},
		},
		{
			name:  "duplicate local lines collapse to the largest quantity",
			local: []models.CartItem{item(1, 2), item(1, 7), item(1, 4)},
			want:  models.CartMergePlan{Add: []models.CartItem{item(1, 7)}},
		},
		{
			name:  "local quantity is capped",
			local: []models.CartItem{item(1, 150)},
			want:  models.CartMergePlan{Add: []models.CartItem{item(1, models.MaxCartLineQuantity)}},
		},
		{
			name:   "mixed cart",
			server: []models.CartItem{item(1, 1), item(2, 5), item(4, 2)},
			local:  []models.CartItem{item(1, 3), item(2, 1), item(3, 2), item(5, 0)},
			want: models.CartMergePlan{
				Add:   []models.CartItem{item(3, 2)},
				Raise: []models.CartItem{item(1, 3)},
				Keep:  []models.CartItem{item(2, 5), item(4, 2)},
				Drop:  []models.CartItem{item(5, 0)},
			},
		},
	}

	planner := NewCartMergePlanner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := planner.BuildMergePlan(context.Background(), tt.server, tt.local)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("BuildMergePlan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Applying the same local cart twice must not grow the server cart.
func TestBuildMergePlan_Idempotent(t *testing.T) {
	planner := NewCartMergePlanner()
	ctx := context.Background()

	server := []models.CartItem{item(1, 1), item(2, 4)}
	local := []models.CartItem{item(1, 3), item(9, 2)}

	first, err := planner.BuildMergePlan(ctx, server, local)
	require.NoError(t, err)

	second, err := planner.BuildMergePlan(ctx, first.Result(), local)
	require.NoError(t, err)

	byProduct := cmpopts.SortSlices(func(a, b models.CartItem) bool { return a.ProductID < b.ProductID })
	if diff := cmp.Diff(first.Result(), second.Result(), byProduct); diff != "" {
		t.Errorf("second merge changed the cart (-first +second):\n%s", diff)
	}
	require.True(t, second.IsNoop())
}
