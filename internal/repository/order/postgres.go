package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"electroshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

type checkoutLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	PriceCents  int64
	DiscountPct int
	Stock       int
}

// Place converts the user's cart into an order in one transaction: payment,
// order, frozen line snapshots, guarded stock decrements, cart-line removal
// and cart-total reset all commit together or not at all.
func (r *postgresRepo) Place(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The cart row lock serializes concurrent checkouts of one cart; the
	// loser re-reads an already emptied cart below and fails cleanly.
	var cartID string
	var totalCents int64
	err = tx.QueryRow(ctx, `
SELECT id::text, total_cents
FROM carts
WHERE email = $1
FOR UPDATE
`, in.Email).Scan(&cartID, &totalCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cart for %s: %w", in.Email, domain.ErrNotFound)
		}
		return nil, err
	}

	lines, err := lockCheckoutLines(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalid)
	}
	for _, line := range lines {
		if line.Quantity > line.Stock {
			return nil, fmt.Errorf("only %d of %s available: %w", line.Stock, line.ProductName, domain.ErrInvalid)
		}
	}

	payment := in.Payment
	err = tx.QueryRow(ctx, `
INSERT INTO payments (method, gateway_name, gateway_payment_id, gateway_status, gateway_response_message)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`, payment.Method, payment.GatewayName, payment.GatewayPaymentID, payment.GatewayStatus, payment.GatewayResponseMessage).Scan(&payment.ID)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		Email:      in.Email,
		TotalCents: totalCents,
		Status:     domain.OrderStatusAccepted,
		AddressID:  in.AddressID,
		Payment:    &payment,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (email, order_date, total_cents, status, address_id, payment_id)
VALUES ($1, CURRENT_DATE, $2, $3, $4, $5)
RETURNING id::text, order_date
`, order.Email, order.TotalCents, order.Status, order.AddressID, payment.ID).Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
INSERT INTO order_lines (order_id, product_id, quantity, price_cents, discount_pct)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`, order.ID, line.ProductID, line.Quantity, line.PriceCents, line.DiscountPct)
	}
	for _, line := range lines {
		batch.Queue(`
UPDATE products
SET quantity = quantity - $2
WHERE id = $1 AND quantity >= $2
`, line.ProductID, line.Quantity)
	}
	results := tx.SendBatch(ctx, batch)
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		ol := domain.OrderLine{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceCents:  line.PriceCents,
			DiscountPct: line.DiscountPct,
		}
		if err := results.QueryRow().Scan(&ol.ID); err != nil {
			results.Close()
			return nil, err
		}
		orderLines = append(orderLines, ol)
	}
	for _, line := range lines {
		cmd, err := results.Exec()
		if err != nil {
			results.Close()
			return nil, err
		}
		// The product rows are locked, so a zero here means a torn read
		// rather than a plain shortfall. Bail out and roll back.
		if cmd.RowsAffected() == 0 {
			results.Close()
			return nil, fmt.Errorf("stock changed for %s during checkout: %w", line.ProductName, domain.ErrConflict)
		}
	}
	if err := results.Close(); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET total_cents = 0 WHERE id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.Lines = orderLines
	r.logger.Printf("order repo: placed order id=%s email=%s lines=%d total_cents=%d", order.ID, order.Email, len(order.Lines), order.TotalCents)
	return &order, nil
}

func lockCheckoutLines(ctx context.Context, tx pgx.Tx, cartID string) ([]checkoutLine, error) {
	// Locks the product rows alongside the cart lines so the stock
	// check and the decrement happen against the same snapshot.
	rows, err := tx.Query(ctx, `
SELECT cl.product_id::text, p.name, cl.quantity, cl.price_cents, cl.discount_pct, p.quantity
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.created_at ASC
FOR UPDATE
`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.PriceCents, &line.DiscountPct, &line.Stock); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

const orderColumns = `
o.id::text, o.email, o.order_date, o.total_cents, o.status, o.address_id::text,
p.id::text, p.method, p.gateway_name, p.gateway_payment_id, p.gateway_status, p.gateway_response_message
`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var p domain.Payment
	err := row.Scan(
		&o.ID, &o.Email, &o.OrderDate, &o.TotalCents, &o.Status, &o.AddressID,
		&p.ID, &p.Method, &p.GatewayName, &p.GatewayPaymentID, &p.GatewayStatus, &p.GatewayResponseMessage,
	)
	if err != nil {
		return nil, err
	}
	o.Payment = &p
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN payments p ON p.id = o.payment_id
WHERE o.id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN payments p ON p.id = o.payment_id
WHERE o.email = $1
ORDER BY o.order_date DESC, o.id
`
	return r.listOrders(ctx, q, email)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
JOIN payments p ON p.id = o.payment_id
ORDER BY o.order_date DESC, o.id
`
	return r.listOrders(ctx, q)
}

func (r *postgresRepo) listOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.loadLines(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT ol.id::text, ol.order_id::text, ol.product_id::text, p.name, ol.quantity, ol.price_cents, ol.discount_pct
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = $1
ORDER BY ol.id
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity, &line.PriceCents, &line.DiscountPct); err != nil {
			return err
		}
		o.Lines = append(o.Lines, line)
	}
	return rows.Err()
}

// UpdateStatus compares against the expected current status so a
// concurrent transition loses with a conflict instead of overwriting.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $3
WHERE id = $1 AND status = $2
`, id, from, to)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("order %s status changed concurrently: %w", id, domain.ErrConflict)
	}
	r.logger.Printf("order repo: status id=%s %s -> %s", id, from, to)
	return nil
}
