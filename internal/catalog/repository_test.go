// AngelaMos | 2026
// repository_test.go

package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestList_NewestFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "price", "image_path", "created_at", "updated_at",
	}).
		AddRow(int64(2), "Gold", "", "1000.00", "/uploads/g.jpg", now, now).
		AddRow(int64(1), "Silver", "", "500.00", nil, now, now)

	mock.ExpectQuery(`(?s)FROM\s+wedding_packages\s+ORDER\s+BY\s+id\s+DESC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.InDelta(t, 1000.0, got[0].Price, 0.001)
	require.NotNil(t, got[0].ImagePath)
	assert.Nil(t, got[1].ImagePath)
}

func TestUpdate_KeepsImageWhenNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)UPDATE\s+wedding_packages.*image_path\s*=\s*COALESCE\(\$5,\s*image_path\)`).
		WithArgs(int64(1), "Silver", "desc", 600.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &Package{
		ID: 1, Name: "Silver", Description: "desc", Price: 600,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Missing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+wedding_packages`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &Package{ID: 99, Name: "x"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestDelete_ReturnsImagePath(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE\s+FROM\s+wedding_packages\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+image_path`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).AddRow("/uploads/a.jpg"))

	path, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, "/uploads/a.jpg", *path)
}

func TestDelete_Missing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`DELETE\s+FROM\s+wedding_packages`).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 4)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestImagePaths(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT\s+image_path\s+FROM\s+wedding_packages\s+WHERE\s+image_path\s+IS\s+NOT\s+NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"image_path"}).
			AddRow("/uploads/a.jpg").
			AddRow("/uploads/b.jpg"))

	paths, err := repo.ImagePaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, paths)
}
