package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.OrderRecord, error) {
	const q = `
INSERT INTO orders (user_id, total_amount, status, created_at, items, checkout_token)
VALUES ($1, $2::numeric, $3, $4, $5, NULLIF($6, ''))
RETURNING id, user_id, total_amount::text, status, created_at, items
`
	rec, err := scanRecord(r.pool.QueryRow(ctx, q,
		in.UserID,
		in.TotalAmount.String(),
		string(domain.StatusPending),
		in.CreatedAt,
		in.Items,
		in.CheckoutToken,
	), false)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("order repo: create user_id=%d token=%s duplicate", in.UserID, in.CheckoutToken)
			return nil, domain.ErrDuplicateCheckout
		}
		r.logger.Printf("order repo: create user_id=%d error=%v", in.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: create user_id=%d id=%d", rec.UserID, rec.ID)
	return rec, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.OrderRecord, error) {
	const q = `
SELECT id, user_id, total_amount::text, status, created_at, items
FROM orders
WHERE user_id = $1
ORDER BY id DESC
`
	result, err := r.list(ctx, q, false, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%d error=%v", userID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.OrderRecord, error) {
	const q = `
SELECT o.id, o.user_id, o.total_amount::text, o.status, o.created_at, o.items, u.username
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.id DESC
`
	result, err := r.list(ctx, q, true)
	if err != nil {
		r.logger.Printf("order repo: list all error=%v", err)
		return nil, err
	}
	r.logger.Printf("order repo: list all count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status, from []domain.Status) error {
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1 AND status = ANY($3)`, id, string(status), allowed)
	if err != nil {
		r.logger.Printf("order repo: update status id=%d status=%s error=%v", id, status, err)
		return err
	}
	if tag.RowsAffected() == 1 {
		r.logger.Printf("order repo: update status id=%d status=%s", id, status)
		return nil
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, status)
}

func (r *postgresRepo) list(ctx context.Context, q string, withUsername bool, args ...any) ([]domain.OrderRecord, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.OrderRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows, withUsername)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanRecord(row pgx.Row, withUsername bool) (*domain.OrderRecord, error) {
	var (
		rec    domain.OrderRecord
		total  string
		status string
	)
	dest := []any{&rec.ID, &rec.UserID, &total, &status, &rec.CreatedAt, &rec.Items}
	if withUsername {
		dest = append(dest, &rec.Username)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("order %d: parse total %q: %w", rec.ID, total, err)
	}
	rec.TotalAmount = amount
	rec.Status = domain.Status(status)
	return &rec, nil
}
