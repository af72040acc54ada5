package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepo struct{ DB *pgxpool.Pool }

// Add is the conditional insert-or-increment. UNIQUE(product_id) turns two
// concurrent adds for the same product into one row with the summed quantity;
// PostgreSQL serializes the upserts on the constraint, so there is no
// duplicate row and no lost increment. The product is loaded in the same
// transaction so the returned item is never half populated.
func (r *CartRepo) Add(ctx context.Context, productID int64, quantity int) (CartItem, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return CartItem{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var it CartItem
	err = tx.QueryRow(ctx, `
		INSERT INTO cart_items (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, product_id, quantity, created_at`,
		productID, quantity,
	).Scan(&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return CartItem{}, ErrNotFound
		}
		return CartItem{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, productID)
	it.Product, err = scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CartItem{}, ErrNotFound
		}
		return CartItem{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CartItem{}, err
	}
	return it, nil
}

func (r *CartRepo) List(ctx context.Context) ([]CartItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.price::text, p.description, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		ORDER BY ci.created_at DESC, ci.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		var (
			it    CartItem
			price string
		)
		if err := rows.Scan(
			&it.ID, &it.ProductID, &it.Quantity, &it.CreatedAt,
			&it.Product.ID, &it.Product.Name, &price, &it.Product.Description, &it.Product.Stock,
		); err != nil {
			return nil, err
		}
		d, err := parsePrice(price)
		if err != nil {
			return nil, err
		}
		it.Product.Price = d
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CartRepo) Remove(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
