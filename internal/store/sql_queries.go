package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ferrari-store/models"
)

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns = []string{
		"user_id", "email", "name", "password_hash", "role", "address", "phone", "created_at", "updated_at",
	}
	productColumns = []string{
		"product_id", "name", "slug", "description", "type", "category_id", "price_cents", "stock",
		"scale", "year", "image_url", "featured", "created_at", "updated_at",
	}
	categoryColumns = []string{
		"category_id", "name", "slug", "description", "parent_id", "created_at", "updated_at",
	}
	orderColumns = []string{
		"order_id", "user_id", "status", "subtotal_cents", "shipping_cents", "total_cents",
		"shipping_address", "payment_method", "created_at", "updated_at",
	}
	orderItemColumns = []string{
		"order_id", "product_id", "name", "unit_price_cents", "quantity",
	}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

const (
	updateUserRole = `UPDATE users SET role = $1, updated_at = now() WHERE user_id = $2`
	deleteUser     = `DELETE FROM users WHERE user_id = $1`

	setProductImageURL = `UPDATE products SET image_url = $1, updated_at = now() WHERE product_id = $2`
	deleteProduct      = `DELETE FROM products WHERE product_id = $1`

	selectCategoryParent = `SELECT parent_id FROM categories WHERE category_id = $1`
	countCategories      = `SELECT count(*) FROM categories`
	deleteCategory       = `DELETE FROM categories WHERE category_id = $1`

	selectCartItems = `SELECT product_id, quantity, updated_at FROM cart_items WHERE user_id = $1 ORDER BY updated_at, product_id`
	upsertCartItem  = `INSERT INTO cart_items (user_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	deleteCartItem = `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	clearCart      = `DELETE FROM cart_items WHERE user_id = $1`

	// takeOrderedCartItem removes the ordered quantity from a cart line. Units
	// added to the line after the cart was read stay in the cart.
	takeOrderedCartItem = `WITH emptied AS (
			DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2 AND quantity <= $3
		)
		UPDATE cart_items SET quantity = quantity - $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2 AND quantity > $3`

	lockProductForOrder = `SELECT name, price_cents, stock FROM products WHERE product_id = $1 FOR UPDATE`
	decrementStock      = `UPDATE products SET stock = stock - $1, updated_at = now() WHERE product_id = $2`
	incrementStock      = `UPDATE products SET stock = stock + $1, updated_at = now() WHERE product_id = $2`
	insertOrder         = `INSERT INTO orders (user_id, status, subtotal_cents, shipping_cents, total_cents, shipping_address, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_id, created_at, updated_at`
	insertOrderItem = `INSERT INTO order_items (order_id, product_id, name, unit_price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	updateOrderStatus = `UPDATE orders SET status = $1, updated_at = now() WHERE order_id = $2 AND status = $3`
	selectOrderStatus = `SELECT status FROM orders WHERE order_id = $1`
	selectExpired     = `SELECT order_id FROM orders WHERE status = 'pending' AND created_at < $1 ORDER BY created_at LIMIT $2`
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func buildInsertUserQuery(ctx context.Context, user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns("email", "name", "password_hash", "role", "address", "phone").
		Values(user.Email, user.Name, user.PasswordHash, user.Role, user.Address, user.Phone).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(ctx context.Context, where sq.Eq) (string, []any, error) {
	return psql.Select(userColumns...).From("users").Where(where).ToSql()
}

func buildListUsersQuery(ctx context.Context, limit, offset int) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		OrderBy("user_id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func buildUpdateUserQuery(ctx context.Context, update models.UserUpdate) (string, []any, error) {
	clauses := map[string]any{}
	if update.Name != nil {
		clauses["name"] = *update.Name
	}
	if update.Address != nil {
		clauses["address"] = *update.Address
	}
	if update.Phone != nil {
		clauses["phone"] = *update.Phone
	}
	if update.PasswordHash != nil {
		clauses["password_hash"] = *update.PasswordHash
	}
	if len(clauses) == 0 {
		return "", nil, fmt.Errorf("%w: no user fields to update", ErrBuildingSQLQuery)
	}

	return psql.Update("users").
		SetMap(clauses).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": update.UserID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func scanUser(row rowScanner, user *models.User) error {
	return row.Scan(&user.UserID, &user.Email, &user.Name, &user.PasswordHash, &user.Role,
		&user.Address, &user.Phone, &user.CreatedAt, &user.UpdatedAt)
}

func buildInsertProductQuery(ctx context.Context, p models.Product) (string, []any, error) {
	return psql.Insert("products").
		Columns("name", "slug", "description", "type", "category_id", "price_cents", "stock", "scale", "year", "image_url", "featured").
		Values(p.Name, p.Slug, p.Description, p.Type, p.CategoryID, p.PriceCents, p.Stock, p.Scale, p.Year, p.ImageURL, p.Featured).
		Suffix(returning(productColumns)).
		ToSql()
}

func buildSelectProductQuery(ctx context.Context, where sq.Sqlizer) (string, []any, error) {
	return psql.Select(productColumns...).From("products").Where(where).ToSql()
}

// likeEscaper makes user input match literally inside an ILIKE pattern.
// Backslash is the default LIKE escape character in Postgres.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// applyProductFilter adds the WHERE conditions shared by the product page
// and its count query.
func applyProductFilter(b sq.SelectBuilder, filter models.ProductFilter) sq.SelectBuilder {
	if filter.Type != "" {
		b = b.Where(sq.Eq{"type": filter.Type})
	}
	if filter.CategoryID > 0 {
		b = b.Where(sq.Eq{"category_id": filter.CategoryID})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		b = b.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"description": pattern}})
	}
	if filter.MinPriceCents > 0 {
		b = b.Where(sq.GtOrEq{"price_cents": filter.MinPriceCents})
	}
	if filter.MaxPriceCents > 0 {
		b = b.Where(sq.LtOrEq{"price_cents": filter.MaxPriceCents})
	}
	if filter.FeaturedOnly {
		b = b.Where(sq.Eq{"featured": true})
	}
	if filter.InStockOnly {
		b = b.Where(sq.Gt{"stock": 0})
	}
	return b
}

func productOrderBy(sort models.ProductSort) []string {
	switch sort {
	case models.SortPriceAsc:
		return []string{"price_cents ASC", "product_id ASC"}
	case models.SortPriceDesc:
		return []string{"price_cents DESC", "product_id DESC"}
	case models.SortName:
		return []string{"name ASC", "product_id ASC"}
	default:
		return []string{"created_at DESC", "product_id DESC"}
	}
}

func buildListProductsQuery(ctx context.Context, filter models.ProductFilter) (string, []any, error) {
	b := applyProductFilter(psql.Select(productColumns...).From("products"), filter)

	return b.OrderBy(productOrderBy(filter.Sort)...).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
}

func buildCountProductsQuery(ctx context.Context, filter models.ProductFilter) (string, []any, error) {
	return applyProductFilter(psql.Select("count(*)").From("products"), filter).ToSql()
}

func buildUpdateProductQuery(ctx context.Context, u models.ProductUpdate) (string, []any, error) {
	clauses := map[string]any{}
	if u.Name != nil {
		clauses["name"] = *u.Name
	}
	if u.Slug != nil {
		clauses["slug"] = *u.Slug
	}
	if u.Description != nil {
		clauses["description"] = *u.Description
	}
	if u.Type != nil {
		clauses["type"] = *u.Type
	}
	if u.ClearCategory {
		clauses["category_id"] = nil
	} else if u.CategoryID != nil {
		clauses["category_id"] = *u.CategoryID
	}
	if u.PriceCents != nil {
		clauses["price_cents"] = *u.PriceCents
	}
	if u.Stock != nil {
		clauses["stock"] = *u.Stock
	}
	if u.Scale != nil {
		clauses["scale"] = *u.Scale
	}
	if u.Year != nil {
		clauses["year"] = *u.Year
	}
	if u.Featured != nil {
		clauses["featured"] = *u.Featured
	}
	if len(clauses) == 0 {
		return "", nil, fmt.Errorf("%w: no product fields to update", ErrBuildingSQLQuery)
	}

	return psql.Update("products").
		SetMap(clauses).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"product_id": u.ProductID}).
		Suffix(returning(productColumns)).
		ToSql()
}

func scanProduct(row rowScanner, p *models.Product) error {
	var categoryID sql.NullInt64
	err := row.Scan(&p.ProductID, &p.Name, &p.Slug, &p.Description, &p.Type, &categoryID, &p.PriceCents,
		&p.Stock, &p.Scale, &p.Year, &p.ImageURL, &p.Featured, &p.CreatedAt, &p.UpdatedAt)
	p.CategoryID = nullInt64Ptr(categoryID)
	return err
}

func buildInsertCategoryQuery(ctx context.Context, c models.Category) (string, []any, error) {
	return psql.Insert("categories").
		Columns("name", "slug", "description", "parent_id").
		Values(c.Name, c.Slug, c.Description, c.ParentID).
		Suffix(returning(categoryColumns)).
		ToSql()
}

func buildSelectCategoriesQuery(ctx context.Context, where sq.Sqlizer) (string, []any, error) {
	b := psql.Select(categoryColumns...).From("categories")
	if where != nil {
		b = b.Where(where)
	}
	return b.OrderBy("name", "category_id").ToSql()
}

func buildUpdateCategoryQuery(ctx context.Context, u models.CategoryUpdate) (string, []any, error) {
	clauses := map[string]any{}
	if u.Name != nil {
		clauses["name"] = *u.Name
	}
	if u.Slug != nil {
		clauses["slug"] = *u.Slug
	}
	if u.Description != nil {
		clauses["description"] = *u.Description
	}
	if u.MakeRoot {
		clauses["parent_id"] = nil
	} else if u.ParentID != nil {
		clauses["parent_id"] = *u.ParentID
	}
	if len(clauses) == 0 {
		return "", nil, fmt.Errorf("%w: no category fields to update", ErrBuildingSQLQuery)
	}

	return psql.Update("categories").
		SetMap(clauses).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"category_id": u.CategoryID}).
		Suffix(returning(categoryColumns)).
		ToSql()
}

func scanCategory(row rowScanner, c *models.Category) error {
	var parentID sql.NullInt64
	err := row.Scan(&c.CategoryID, &c.Name, &c.Slug, &c.Description, &parentID, &c.CreatedAt, &c.UpdatedAt)
	c.ParentID = nullInt64Ptr(parentID)
	return err
}

// buildListOrdersQuery selects orders newest first. userID 0 selects the
// orders of every user.
func buildListOrdersQuery(ctx context.Context, userID int64, filter models.OrderFilter) (string, []any, error) {
	b := psql.Select(orderColumns...).From("orders")
	if userID != 0 {
		b = b.Where(sq.Eq{"user_id": userID})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	b = b.OrderBy("created_at DESC", "order_id DESC")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}
	return b.ToSql()
}

func buildSelectOrderQuery(ctx context.Context, orderID int64) (string, []any, error) {
	return psql.Select(orderColumns...).From("orders").Where(sq.Eq{"order_id": orderID}).ToSql()
}

func buildSelectOrderItemsQuery(ctx context.Context, orderIDs []int64) (string, []any, error) {
	return psql.Select(orderItemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "product_id").
		ToSql()
}

func scanOrder(row rowScanner, o *models.Order) error {
	return row.Scan(&o.OrderID, &o.UserID, &o.Status, &o.SubtotalCents, &o.ShippingCents, &o.TotalCents,
		&o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt)
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
