// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Package, error)
	GetByID(ctx context.Context, id int64) (*Package, error)
	ImagePath(ctx context.Context, id int64) (*string, error)
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, pkg *Package) error
	Delete(ctx context.Context, id int64) (*string, error)
	Count(ctx context.Context) (int, error)
	ImagePaths(ctx context.Context) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const packageColumns = `id, name, description, price, image_path,
		       created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Package, error) {
	query := `SELECT ` + packageColumns + `
		FROM wedding_packages
		ORDER BY id DESC`

	packages := []Package{}
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	return packages, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Package, error) {
	query := `SELECT ` + packageColumns + `
		FROM wedding_packages
		WHERE id = $1`

	var pkg Package
	err := r.db.GetContext(ctx, &pkg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get package: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}

	return &pkg, nil
}

func (r *repository) ImagePath(ctx context.Context, id int64) (*string, error) {
	query := `SELECT image_path FROM wedding_packages WHERE id = $1`

	var path *string
	err := r.db.GetContext(ctx, &path, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get package image: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get package image: %w", err)
	}

	return path, nil
}

func (r *repository) Create(ctx context.Context, pkg *Package) error {
	query := `
		INSERT INTO wedding_packages (name, description, price, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.ImagePath,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create package: %w", err)
	}

	return nil
}

// Update keeps the stored image_path when pkg.ImagePath is nil.
func (r *repository) Update(ctx context.Context, pkg *Package) error {
	query := `
		UPDATE wedding_packages
		SET name = $2,
		    description = $3,
		    price = $4,
		    image_path = COALESCE($5, image_path),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.ImagePath,
	)
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update package: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update package: %w", core.ErrNotFound)
	}

	return nil
}

// Delete removes the row and returns the image path it held.
func (r *repository) Delete(ctx context.Context, id int64) (*string, error) {
	query := `DELETE FROM wedding_packages WHERE id = $1 RETURNING image_path`

	var path *string
	err := r.db.GetContext(ctx, &path, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delete package: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete package: %w", err)
	}

	return path, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(
		ctx,
		&n,
		`SELECT COUNT(*) FROM wedding_packages`,
	); err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return n, nil
}

func (r *repository) ImagePaths(ctx context.Context) ([]string, error) {
	query := `
		SELECT image_path
		FROM wedding_packages
		WHERE image_path IS NOT NULL AND image_path <> ''`

	paths := []string{}
	if err := r.db.SelectContext(ctx, &paths, query); err != nil {
		return nil, fmt.Errorf("list package images: %w", err)
	}

	return paths, nil
}
