// AngelaMos | 2026
// repository.go

package siteprofile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, p *Profile) error
	Upsert(ctx context.Context, p *Profile) error
	Delete(ctx context.Context) (*Images, error)
	ImagePaths(ctx context.Context) ([]string, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

var contentColumns = []string{
	"hero_badge_text",
	"hero_title",
	"hero_subtitle",
	"hero_description",
	"hero_cta_text",
	"testimonial_text",
	"testimonial_author",
	"about_description",
	"satisfied_couples_count",
	"portfolio_projects_count",
	"service_1_title",
	"service_2_title",
	"service_3_title",
	"process_step_1",
	"process_step_2",
	"process_step_3",
	"process_step_4",
	"process_step_5",
	"process_description",
	"aesthetic_text",
	"gallery_cta_text",
	"bottom_title",
	"bottom_description",
}

var (
	writeColumns = append(append([]string{"id"}, contentColumns...), ImageFields...)

	profileColumns = strings.Join(writeColumns, ", ") + ", created_at, updated_at"
	imageColumns   = strings.Join(ImageFields, ", ")

	insertProfile = `INSERT INTO site_profile (` +
		strings.Join(writeColumns, ", ") + `)
		VALUES (:` + strings.Join(writeColumns, ", :") + `)`

	upsertProfile = insertProfile + `
		ON CONFLICT (id) DO UPDATE SET ` + upsertAssignments() + `,
		    updated_at = NOW()`
)

// upsertAssignments overwrites every content column. An image column only
// changes when the incoming value is non-empty.
func upsertAssignments() string {
	sets := make([]string, 0, len(contentColumns)+len(ImageFields))
	for _, col := range contentColumns {
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	for _, col := range ImageFields {
		sets = append(sets, fmt.Sprintf(
			"%s = COALESCE(NULLIF(EXCLUDED.%s, ''), site_profile.%s)",
			col, col, col,
		))
	}
	return strings.Join(sets, ",\n\t\t    ")
}

func (r *repository) Get(ctx context.Context) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM site_profile WHERE id = $1`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, ProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get site profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get site profile: %w", err)
	}

	return &p, nil
}

func (r *repository) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM site_profile WHERE id = $1)`,
		ProfileID,
	)
	if err != nil {
		return false, fmt.Errorf("check site profile: %w", err)
	}
	return exists, nil
}

// Create inserts the singleton row and fails with ErrConflict when it is
// already present.
func (r *repository) Create(ctx context.Context, p *Profile) error {
	p.ID = ProfileID

	result, err := sqlx.NamedExecContext(
		ctx,
		r.db,
		insertProfile+` ON CONFLICT (id) DO NOTHING`,
		p,
	)
	if err != nil {
		return fmt.Errorf("create site profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create site profile: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("create site profile: %w", core.ErrConflict)
	}

	return nil
}

func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	p.ID = ProfileID

	if _, err := sqlx.NamedExecContext(ctx, r.db, upsertProfile, p); err != nil {
		return fmt.Errorf("upsert site profile: %w", err)
	}

	return nil
}

// Delete removes the row and returns the image paths it held.
func (r *repository) Delete(ctx context.Context) (*Images, error) {
	query := `DELETE FROM site_profile WHERE id = $1 RETURNING ` + imageColumns

	var images Images
	err := r.db.GetContext(ctx, &images, query, ProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delete site profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete site profile: %w", err)
	}

	return &images, nil
}

func (r *repository) ImagePaths(ctx context.Context) ([]string, error) {
	query := `SELECT ` + imageColumns + ` FROM site_profile WHERE id = $1`

	var images Images
	err := r.db.GetContext(ctx, &images, query, ProfileID)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list site profile images: %w", err)
	}

	return images.Paths(), nil
}
