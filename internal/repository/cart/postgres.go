package cart

import (
	"context"
	"errors"
	"fmt"

	"electroshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const cartColumns = `id::text, email, total_cents, created_at`

// GetOrCreateByEmail resolves the user's cart, creating an empty one on
// first use. The no-op DO UPDATE makes the insert return the existing row.
func (r *postgresRepo) GetOrCreateByEmail(ctx context.Context, email string) (*domain.Cart, error) {
	const q = `
INSERT INTO carts (email, total_cents)
VALUES ($1, 0)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING ` + cartColumns + `
`
	var cart domain.Cart
	if err := r.pool.QueryRow(ctx, q, email).Scan(&cart.ID, &cart.Email, &cart.TotalCents, &cart.CreatedAt); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE email = $1`, email)
}

func (r *postgresRepo) GetByEmailAndID(ctx context.Context, email, id string) (*domain.Cart, error) {
	return r.fetchCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE email = $1 AND id = $2`, email, id)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Cart, error) {
	const q = `SELECT ` + cartColumns + ` FROM carts ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carts []domain.Cart
	for rows.Next() {
		var cart domain.Cart
		if err := rows.Scan(&cart.ID, &cart.Email, &cart.TotalCents, &cart.CreatedAt); err != nil {
			return nil, err
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range carts {
		if err := r.loadLines(ctx, &carts[i]); err != nil {
			return nil, err
		}
	}
	return carts, nil
}

func (r *postgresRepo) ListIDsWithProduct(ctx context.Context, productID string) ([]string, error) {
	const q = `
SELECT DISTINCT cart_id::text
FROM cart_lines
WHERE product_id = $1
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddLine inserts a new line priced at the product's current special price.
// The cart and product rows are locked for the duration of the transaction
// so the duplicate and stock checks cannot race a concurrent mutation.
func (r *postgresRepo) AddLine(ctx context.Context, cartID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockCart(ctx, tx, cartID); err != nil {
		return err
	}
	prod, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return err
	}

	var existing int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID).Scan(&existing)
	if err == nil {
		return fmt.Errorf("product %s already exists in the cart: %w", prod.Name, domain.ErrConflict)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if prod.Quantity == 0 {
		return fmt.Errorf("%s is not available: %w", prod.Name, domain.ErrInvalid)
	}
	if prod.Quantity < quantity {
		return fmt.Errorf("only %d of %s available: %w", prod.Quantity, prod.Name, domain.ErrInvalid)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (cart_id, product_id, quantity, price_cents, discount_pct)
VALUES ($1, $2, $3, $4, $5)
`, cartID, productID, quantity, prod.SpecialCents, prod.DiscountPct); err != nil {
		return err
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ChangeLineQuantity applies a signed delta to an existing line. A line
// reaching zero is deleted; otherwise its price and discount re-sync to
// the product's current special price.
func (r *postgresRepo) ChangeLineQuantity(ctx context.Context, cartID, productID string, delta int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockCart(ctx, tx, cartID); err != nil {
		return err
	}
	prod, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return err
	}
	if prod.Quantity == 0 {
		return fmt.Errorf("%s is not available: %w", prod.Name, domain.ErrInvalid)
	}

	var existing int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID).Scan(&existing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %s not in the cart: %w", prod.Name, domain.ErrNotFound)
		}
		return err
	}

	newQuantity := existing + delta
	if newQuantity < 0 {
		return fmt.Errorf("the quantity can't be less than 0: %w", domain.ErrInvalid)
	}
	if newQuantity > prod.Quantity {
		return fmt.Errorf("only %d of %s available: %w", prod.Quantity, prod.Name, domain.ErrInvalid)
	}

	if newQuantity == 0 {
		if _, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $3, price_cents = $4, discount_pct = $5
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, newQuantity, prod.SpecialCents, prod.DiscountPct); err != nil {
			return err
		}
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RemoveLine deletes the line for the given product and returns it so
// callers can name the product in a confirmation message.
func (r *postgresRepo) RemoveLine(ctx context.Context, cartID, productID string) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockCart(ctx, tx, cartID); err != nil {
		return nil, err
	}

	var line domain.CartLine
	err = tx.QueryRow(ctx, `
SELECT cl.id::text, cl.cart_id::text, cl.product_id::text, p.name, cl.quantity, cl.price_cents, cl.discount_pct, cl.created_at
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1 AND cl.product_id = $2
FOR UPDATE OF cl
`, cartID, productID).Scan(
		&line.ID, &line.CartID, &line.ProductID, &line.ProductName,
		&line.Quantity, &line.PriceCents, &line.DiscountPct, &line.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s not in cart %s: %w", productID, cartID, domain.ErrNotFound)
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID); err != nil {
		return nil, err
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &line, nil
}

// SyncLineToPrice re-prices the line from the product's current special
// price after a catalog pricing change.
func (r *postgresRepo) SyncLineToPrice(ctx context.Context, cartID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockCart(ctx, tx, cartID); err != nil {
		return err
	}
	prod, err := lockProduct(ctx, tx, productID)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `
UPDATE cart_lines
SET price_cents = $3, discount_pct = $4
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID, prod.SpecialCents, prod.DiscountPct)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("product %s not in the cart: %w", prod.Name, domain.ErrInvalid)
	}

	if err := updateCartTotal(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) fetchCart(ctx context.Context, q string, args ...interface{}) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, q, args...).Scan(&cart.ID, &cart.Email, &cart.TotalCents, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) loadLines(ctx context.Context, cart *domain.Cart) error {
	const q = `
SELECT cl.id::text, cl.cart_id::text, cl.product_id::text, p.name, cl.quantity, cl.price_cents, cl.discount_pct, cl.created_at
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.cart_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID, &line.CartID, &line.ProductID, &line.ProductName,
			&line.Quantity, &line.PriceCents, &line.DiscountPct, &line.CreatedAt,
		); err != nil {
			return err
		}
		cart.Lines = append(cart.Lines, line)
	}
	return rows.Err()
}

// lockCart takes the per-cart exclusive lock every mutating transaction
// starts with. Concurrent mutations of one cart serialize here.
func lockCart(ctx context.Context, tx pgx.Tx, cartID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func lockProduct(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	var p domain.Product
	err := tx.QueryRow(ctx, `
SELECT id::text, name, price_cents, discount_pct, special_cents, quantity, created_at
FROM products
WHERE id = $1
FOR UPDATE
`, productID).Scan(&p.ID, &p.Name, &p.PriceCents, &p.DiscountPct, &p.SpecialCents, &p.Quantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// updateCartTotal recomputes the running total from the line set inside
// the caller's transaction, so the stored column can never drift.
func updateCartTotal(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = COALESCE((
	SELECT SUM(price_cents * quantity)
	FROM cart_lines
	WHERE cart_id = $1
), 0)
WHERE id = $1
`, cartID)
	return err
}
