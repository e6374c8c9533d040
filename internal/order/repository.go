// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

// TransitionGuard inspects the locked current status before a write.
type TransitionGuard func(from Status) error

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) error
	UpdateStatus(
		ctx context.Context,
		id int64,
		status Status,
		guard TransitionGuard,
	) error
	Update(ctx context.Context, o *Order, guard TransitionGuard) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type Database interface {
	core.DBTX
	core.TxBeginner
}

type repository struct {
	db Database
}

func NewRepository(db Database) Repository {
	return &repository{db: db}
}

const orderSelect = `
		SELECT o.id, o.package_id, p.name AS package_name, o.customer_name,
		       o.phone_number, o.email, o.status, o.created_at, o.updated_at
		FROM orders o
		LEFT JOIN wedding_packages p ON p.id = o.package_id`

func (r *repository) List(ctx context.Context) ([]Order, error) {
	query := orderSelect + `
		ORDER BY o.id DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := orderSelect + `
		WHERE o.id = $1`

	var o Order
	err := r.db.GetContext(ctx, &o, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &o, nil
}

// Create inserts a new order in the request state. The package existence
// check and the insert are a single statement.
func (r *repository) Create(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (package_id, customer_name, phone_number, email, status)
		SELECT $1, $2, $3, $4, 'request'
		WHERE EXISTS (SELECT 1 FROM wedding_packages WHERE id = $1)
		RETURNING id, status, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		o.PackageID,
		o.CustomerName,
		o.PhoneNumber,
		o.Email,
	).Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || core.IsForeignKeyError(err) {
		return packageNotFound("create order")
	}
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status Status,
	guard TransitionGuard,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockStatus(ctx, tx, id, guard); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $2, updated_at = NOW()
			WHERE id = $1`,
			id, string(status),
		)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		return nil
	})
}

func (r *repository) Update(
	ctx context.Context,
	o *Order,
	guard TransitionGuard,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := lockStatus(ctx, tx, o.ID, guard); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET package_id = $2,
			    customer_name = $3,
			    phone_number = $4,
			    email = $5,
			    status = $6,
			    updated_at = NOW()
			WHERE id = $1
			  AND EXISTS (SELECT 1 FROM wedding_packages WHERE id = $2)`,
			o.ID,
			o.PackageID,
			o.CustomerName,
			o.PhoneNumber,
			o.Email,
			string(o.Status),
		)
		if core.IsForeignKeyError(err) {
			return packageNotFound("update order")
		}
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		if rows == 0 {
			return packageNotFound("update order")
		}

		return nil
	})
}

func lockStatus(
	ctx context.Context,
	tx *sqlx.Tx,
	id int64,
	guard TransitionGuard,
) error {
	var current Status
	err := tx.GetContext(ctx, &current,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock order: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock order: %w", err)
	}

	if guard != nil {
		return guard(current)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(
		ctx,
		`DELETE FROM orders WHERE id = $1`,
		id,
	); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
		ORDER BY status`

	counts := []StatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return counts, nil
}

func packageNotFound(op string) error {
	return fmt.Errorf("%s: %w", op, core.InvalidInput("wedding package not found"))
}
