// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wedding-backend/internal/order"
)

type fakeOrders struct {
	counts []order.StatusCount
	err    error
}

func (f fakeOrders) CountByStatus(context.Context) ([]order.StatusCount, error) {
	return f.counts, f.err
}

type fakePackages int

func (f fakePackages) Count(context.Context) (int, error) { return int(f), nil }

func passthrough(next http.Handler) http.Handler { return next }

func serveDashboard(t *testing.T, cfg HandlerConfig) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passthrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	return rec
}

func TestDashboard_Counts(t *testing.T) {
	rec := serveDashboard(t, HandlerConfig{
		Orders: fakeOrders{counts: []order.StatusCount{
			{Status: order.StatusRequest, Count: 3},
			{Status: order.StatusApproved, Count: 2},
		}},
		Packages: fakePackages(4),
		DBStats:  func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 10} },
		DBPing:   func(context.Context) error { return nil },
		RedisPing: func(context.Context) error {
			return errors.New("connection refused")
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, 5, resp.Data.Orders.Total)
	assert.Equal(t, 3, resp.Data.Orders.ByStatus[order.StatusRequest])
	assert.Equal(t, 0, resp.Data.Orders.ByStatus[order.StatusRejected])
	assert.Len(t, resp.Data.Orders.ByStatus, 3)
	assert.Equal(t, 4, resp.Data.Packages)
	assert.True(t, resp.Data.Database.Healthy)
	require.NotNil(t, resp.Data.Database.Stats)
	assert.Equal(t, 10, resp.Data.Database.Stats.MaxOpenConnections)
	assert.False(t, resp.Data.Redis.Healthy)
	assert.Nil(t, resp.Data.Redis.Stats)
}

func TestDashboard_OrderCountFailure(t *testing.T) {
	rec := serveDashboard(t, HandlerConfig{
		Orders:   fakeOrders{err: errors.New("db down")},
		Packages: fakePackages(0),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
