package store

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

type orderRepository struct {
	*DB
	logger *logger.Logger
}

func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{DB: db, logger: logger}
}

// CreateOrder places order.Items in one transaction: every product row is
// locked, its stock checked and decremented, the order and its items are
// inserted with the locked names and prices, and the ordered quantities are
// taken out of the user's cart.
// Totals are computed from the locked prices with the shipping policy.
func (o *orderRepository) CreateOrder(ctx context.Context, order models.Order, shipping models.ShippingPolicy) (models.Order, error) {
	var created models.Order
	err := o.DB.withRetry(ctx, func() error {
		var txErr error
		created, txErr = o.createOrderTx(ctx, order, shipping)
		return txErr
	})
	return created, err
}

func (o *orderRepository) createOrderTx(ctx context.Context, order models.Order, shipping models.ShippingPolicy) (models.Order, error) {
	log := logger.FromContext(ctx)

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("failed to begin transaction")
		return models.Order{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// lock rows in a stable order so concurrent checkouts cannot deadlock
	items := slices.Clone(order.Items)
	slices.SortFunc(items, func(a, b models.OrderItem) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	var subtotal int64
	for idx := range items {
		item := &items[idx]

		var stock int
		err = tx.QueryRowContext(ctx, lockProductForOrder, item.ProductID).Scan(&item.Name, &item.UnitPriceCents, &stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Order{}, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
			}
			return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if stock < item.Quantity {
			log.Warn().
				Str("func", "*orderRepository.CreateOrder").
				Int64("product_id", item.ProductID).
				Int("stock", stock).
				Int("requested", item.Quantity).
				Msg("insufficient stock")
			return models.Order{}, fmt.Errorf("%w: product %d has %d left", ErrInsufficientStock, item.ProductID, stock)
		}

		if _, err = tx.ExecContext(ctx, decrementStock, item.Quantity, item.ProductID); err != nil {
			return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		subtotal += item.LineTotalCents()
	}

	order.Items = items
	order.Status = models.OrderPending
	order.SubtotalCents = subtotal
	order.ShippingCents = shipping.Cost(subtotal)
	order.TotalCents = subtotal + order.ShippingCents

	err = tx.QueryRowContext(ctx, insertOrder,
		order.UserID,
		order.Status,
		order.SubtotalCents,
		order.ShippingCents,
		order.TotalCents,
		order.ShippingAddress,
		order.PaymentMethod,
	).Scan(&order.OrderID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Msg("failed to insert order")
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertOrderItem)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for _, item := range order.Items {
		if _, err = stmt.ExecContext(ctx, order.OrderID, item.ProductID, item.Name, item.UnitPriceCents, item.Quantity); err != nil {
			return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	cartStmt, err := tx.PrepareContext(ctx, takeOrderedCartItem)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer cartStmt.Close()

	for _, item := range order.Items {
		if _, err = cartStmt.ExecContext(ctx, order.UserID, item.ProductID, item.Quantity); err != nil {
			return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "*orderRepository.CreateOrder").
		Int64("order_id", order.OrderID).
		Int64("user_id", order.UserID).
		Int64("total_cents", order.TotalCents).
		Msg("order created")

	return order, nil
}

func (o *orderRepository) GetOrder(ctx context.Context, orderID int64) (models.Order, error) {
	query, args, err := buildSelectOrderQuery(ctx, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var order models.Order
	if err = scanOrder(o.DB.QueryRowContext(ctx, query, args...), &order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	orders := []models.Order{order}
	if err = o.attachItems(ctx, orders); err != nil {
		return models.Order{}, err
	}

	return orders[0], nil
}

func (o *orderRepository) ListUserOrders(ctx context.Context, userID int64, filter models.OrderFilter) ([]models.Order, error) {
	return o.listOrders(ctx, userID, filter)
}

func (o *orderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return o.listOrders(ctx, 0, filter)
}

func (o *orderRepository) listOrders(ctx context.Context, userID int64, filter models.OrderFilter) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOrdersQuery(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.listOrders").Msg("failed to query orders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0, 16)
	for rows.Next() {
		var order models.Order
		if err = scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = o.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the line items of all orders with a single query.
func (o *orderRepository) attachItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, order := range orders {
		ids = append(ids, order.OrderID)
		index[order.OrderID] = i
		orders[i].Items = []models.OrderItem{}
	}

	query, args, err := buildSelectOrderItemsQuery(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item models.OrderItem
		if err = rows.Scan(&orderID, &item.ProductID, &item.Name, &item.UnitPriceCents, &item.Quantity); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

// UpdateStatus moves the order from expected to next. If the stored status
// is no longer expected, [ErrOrderStatusConflict] is returned.
func (o *orderRepository) UpdateStatus(ctx context.Context, orderID int64, expected, next models.OrderStatus) error {
	result, err := o.DB.ExecContext(ctx, updateOrderStatus, next, orderID, expected)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*orderRepository.UpdateStatus").
			Int64("order_id", orderID).
			Msg("failed to update order status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return o.statusMismatch(ctx, o.DB.DB, orderID)
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// statusMismatch explains why a conditional status update touched no rows.
func (o *orderRepository) statusMismatch(ctx context.Context, q queryRower, orderID int64) error {
	var current models.OrderStatus
	if err := q.QueryRowContext(ctx, selectOrderStatus, orderID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return fmt.Errorf("%w: order %d is %s", ErrOrderStatusConflict, orderID, current)
}

// CancelOrder cancels the order if it is still in the expected status and
// returns its items to stock when that status held reserved stock.
func (o *orderRepository) CancelOrder(ctx context.Context, orderID int64, expected models.OrderStatus) error {
	return o.DB.withRetry(ctx, func() error {
		return o.cancelOrderTx(ctx, orderID, expected)
	})
}

func (o *orderRepository) cancelOrderTx(ctx context.Context, orderID int64, expected models.OrderStatus) error {
	log := logger.FromContext(ctx)

	tx, err := o.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, updateOrderStatus, models.OrderCancelled, orderID, expected)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return o.statusMismatch(ctx, tx, orderID)
	}

	if expected.Restocks() {
		query, args, buildErr := buildSelectOrderItemsQuery(ctx, []int64{orderID})
		if buildErr != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		rows, queryErr := tx.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}

		var items []models.OrderItem
		for rows.Next() {
			var id int64
			var item models.OrderItem
			if err = rows.Scan(&id, &item.ProductID, &item.Name, &item.UnitPriceCents, &item.Quantity); err != nil {
				rows.Close()
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			items = append(items, item)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		for _, item := range items {
			if _, err = tx.ExecContext(ctx, incrementStock, item.Quantity, item.ProductID); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "*orderRepository.CancelOrder").
		Int64("order_id", orderID).
		Str("previous_status", string(expected)).
		Msg("order cancelled")

	return nil
}

// ListExpiredPending returns up to limit ids of orders pending since before
// olderThan, oldest first.
func (o *orderRepository) ListExpiredPending(ctx context.Context, olderThan time.Time, limit int) ([]int64, error) {
	rows, err := o.DB.QueryContext(ctx, selectExpired, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, limit)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}
