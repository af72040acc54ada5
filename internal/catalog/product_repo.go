package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// price comes back as text; pgx has no native NUMERIC -> decimal.Decimal path.
const productCols = `id, name, price::text, description, stock`

type ProductRepo struct{ DB *pgxpool.Pool }

func (r *ProductRepo) Create(ctx context.Context, in ProductInput) (Product, error) {
	row := r.DB.QueryRow(ctx, `
		INSERT INTO products (name, price, description, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING `+productCols,
		in.Name, in.Price.String(), in.Description, in.Stock,
	)
	p, err := scanProduct(row)
	if pgCode(err) == codeUniqueViolation {
		return Product{}, ErrDuplicateName
	}
	return p, err
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productCols+` FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE products SET name=$2, price=$3, description=$4, stock=$5
		WHERE id=$1
		RETURNING `+productCols,
		id, in.Name, in.Price.String(), in.Description, in.Stock,
	)
	p, err := scanProduct(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return Product{}, ErrNotFound
	case pgCode(err) == codeUniqueViolation:
		return Product{}, ErrDuplicateName
	}
	return p, err
}

// Delete removes the product; the FK cascade drops any cart item
// referencing it in the same statement.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Description, &p.Stock); err != nil {
		return Product{}, err
	}
	d, err := parsePrice(price)
	if err != nil {
		return Product{}, err
	}
	p.Price = d
	return p, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
