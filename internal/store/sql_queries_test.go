package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ferrari-store/models"
)

func TestBuildListProductsQuery(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    models.ProductFilter
		wantWhere string
		wantOrder string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    models.ProductFilter{Limit: 20},
			wantOrder: "ORDER BY created_at DESC, product_id DESC LIMIT 20 OFFSET 0",
		},
		{
			name:      "type and category",
			filter:    models.ProductFilter{Type: models.ProductTypeHelmet, CategoryID: 3, Limit: 10, Offset: 10},
			wantWhere: "WHERE type = $1 AND category_id = $2",
			wantOrder: "LIMIT 10 OFFSET 10",
			wantArgs:  []any{models.ProductTypeHelmet, int64(3)},
		},
		{
			name:      "search is trimmed and matched on name or description",
			filter:    models.ProductFilter{Search: "  f40 ", Limit: 5},
			wantWhere: "WHERE (name ILIKE $1 OR description ILIKE $2)",
			wantArgs:  []any{"%f40%", "%f40%"},
		},
		{
			name:      "search wildcards match literally",
			filter:    models.ProductFilter{Search: `100%_F1\`, Limit: 5},
			wantWhere: "WHERE (name ILIKE $1 OR description ILIKE $2)",
			wantArgs:  []any{`%100\%\_F1\\%`, `%100\%\_F1\\%`},
		},
		{
			name:      "price range",
			filter:    models.ProductFilter{MinPriceCents: 1000, MaxPriceCents: 5000, Sort: models.SortPriceAsc, Limit: 5},
			wantWhere: "WHERE price_cents >= $1 AND price_cents <= $2",
			wantOrder: "ORDER BY price_cents ASC, product_id ASC",
			wantArgs:  []any{int64(1000), int64(5000)},
		},
		{
			name:      "featured in stock by name",
			filter:    models.ProductFilter{FeaturedOnly: true, InStockOnly: true, Sort: models.SortName, Limit: 5},
			wantWhere: "WHERE featured = $1 AND stock > $2",
			wantOrder: "ORDER BY name ASC, product_id ASC",
			wantArgs:  []any{true, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListProductsQuery(ctx, tt.filter)
			require.NoError(t, err)

			assert.Contains(t, query, "FROM products")
			if tt.wantWhere != "" {
				assert.Contains(t, query, tt.wantWhere)
			} else {
				assert.NotContains(t, query, "WHERE")
			}
			if tt.wantOrder != "" {
				assert.Contains(t, query, tt.wantOrder)
			}
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}

			countQuery, countArgs, err := buildCountProductsQuery(ctx, tt.filter)
			require.NoError(t, err)
			assert.NotContains(t, countQuery, "ORDER BY")
			assert.Equal(t, len(args), len(countArgs))
		})
	}
}

func TestBuildUpdateProductQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("empty update", func(t *testing.T) {
		_, _, err := buildUpdateProductQuery(ctx, models.ProductUpdate{ProductID: 1})
		assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	})

	t.Run("clear category wins", func(t *testing.T) {
		categoryID := int64(4)
		query, args, err := buildUpdateProductQuery(ctx, models.ProductUpdate{
			ProductID:     1,
			CategoryID:    &categoryID,
			ClearCategory: true,
		})
		require.NoError(t, err)
		assert.Contains(t, query, "UPDATE products SET category_id = $1, updated_at = now() WHERE product_id = $2")
		assert.Equal(t, []any{nil, int64(1)}, args)
	})

	t.Run("several fields", func(t *testing.T) {
		name := "F40"
		featured := true
		query, args, err := buildUpdateProductQuery(ctx, models.ProductUpdate{ProductID: 2, Name: &name, Featured: &featured})
		require.NoError(t, err)
		// SetMap orders columns alphabetically
		assert.Contains(t, query, "SET featured = $1, name = $2, updated_at = now() WHERE product_id = $3")
		assert.Contains(t, query, "RETURNING product_id")
		assert.Equal(t, []any{true, "F40", int64(2)}, args)
	})
}

func TestBuildUpdateUserQuery(t *testing.T) {
	ctx := context.Background()

	_, _, err := buildUpdateUserQuery(ctx, models.UserUpdate{UserID: 1})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)

	hash := "$2a$10$hash"
	query, args, err := buildUpdateUserQuery(ctx, models.UserUpdate{UserID: 1, PasswordHash: &hash})
	require.NoError(t, err)
	assert.Contains(t, query, "SET password_hash = $1, updated_at = now() WHERE user_id = $2")
	assert.Equal(t, []any{hash, int64(1)}, args)
}

func TestBuildListOrdersQuery(t *testing.T) {
	ctx := context.Background()

	query, args, err := buildListOrdersQuery(ctx, 0, models.OrderFilter{Status: models.OrderPending, Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, query, "FROM orders WHERE status = $1 ORDER BY created_at DESC, order_id DESC LIMIT 10")
	assert.Equal(t, []any{models.OrderPending}, args)

	query, args, err = buildListOrdersQuery(ctx, 7, models.OrderFilter{})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE user_id = $1 ORDER BY")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{int64(7)}, args)
}
