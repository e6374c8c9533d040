// AngelaMos | 2026
// handler_test.go

package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

type memRepo struct {
	mu       sync.Mutex
	nextID   int64
	packages map[int64]string
	rows     map[int64]Order
}

func newMemRepo() *memRepo {
	return &memRepo{
		packages: map[int64]string{1: "Silver", 2: "Gold"},
		rows:     make(map[int64]Order),
	}
}

func (m *memRepo) List(context.Context) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Order, 0, len(m.rows))
	for _, o := range m.rows {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &o, nil
}

func (m *memRepo) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.packages[*o.PackageID]; !ok {
		return core.InvalidInput("wedding package not found")
	}
	m.nextID++
	o.ID = m.nextID
	o.Status = StatusRequest
	m.rows[o.ID] = *o
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id int64, s Status, guard TransitionGuard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok {
		return core.ErrNotFound
	}
	if guard != nil {
		if err := guard(o.Status); err != nil {
			return err
		}
	}
	o.Status = s
	m.rows[id] = o
	return nil
}

func (m *memRepo) Update(_ context.Context, o *Order, guard TransitionGuard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[o.ID]
	if !ok {
		return core.ErrNotFound
	}
	if guard != nil {
		if err := guard(cur.Status); err != nil {
			return err
		}
	}
	if _, ok := m.packages[*o.PackageID]; !ok {
		return core.InvalidInput("wedding package not found")
	}
	m.rows[o.ID] = *o
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memRepo) CountByStatus(context.Context) ([]StatusCount, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, policy Policy) (http.Handler, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	passthrough := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	NewHandler(NewService(repo, policy, nil)).RegisterRoutes(r, passthrough, passthrough)

	return r, repo
}

func send(router http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validOrder() url.Values {
	return url.Values{
		"package_id":    {"1"},
		"customer_name": {"Ani"},
		"phone_number":  {"08123"},
		"email":         {"ani@example.com"},
	}
}

func TestCreate_AlwaysRequest(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})

	form := validOrder()
	form.Set("status", "approved")

	rec := send(router, http.MethodPost, "/orders", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, repo.rows, 1)
	assert.Equal(t, StatusRequest, repo.rows[1].Status)
}

func TestCreate_JSONBody(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(
		`{"package_id":2,"customer_name":"Budi","phone_number":"0899","email":"budi@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), *repo.rows[1].PackageID)
}

func TestCreate_Invalid(t *testing.T) {
	tests := map[string]func(url.Values){
		"unknown package": func(v url.Values) { v.Set("package_id", "99") },
		"missing name":    func(v url.Values) { v.Del("customer_name") },
		"bad email":       func(v url.Values) { v.Set("email", "not-an-email") },
		"bad package id":  func(v url.Values) { v.Set("package_id", "abc") },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			router, repo := newTestRouter(t, Policy{})
			form := validOrder()
			mutate(form)

			rec := send(router, http.MethodPost, "/orders", form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, repo.rows)
		})
	}
}

func TestUpdate_StatusOnly(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)

	rec := send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"approved"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Order status updated successfully")
	assert.Equal(t, StatusApproved, repo.rows[1].Status)
	assert.Equal(t, "Ani", repo.rows[1].CustomerName)
}

func TestUpdate_InvalidStatusLeavesRow(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)

	rec := send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"shipped"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, StatusRequest, repo.rows[1].Status)
}

func TestUpdate_StrictDeniesRollback(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)
	require.Equal(t, http.StatusOK,
		send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"approved"}}).Code)

	rec := send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"request"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, StatusApproved, repo.rows[1].Status)
}

func TestUpdate_PermissiveAllowsRollback(t *testing.T) {
	router, repo := newTestRouter(t, Policy{AllowRollback: true})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)
	require.Equal(t, http.StatusOK,
		send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"rejected"}}).Code)

	rec := send(router, http.MethodPut, "/orders", url.Values{"id": {"1"}, "status": {"request"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusRequest, repo.rows[1].Status)
}

func TestUpdate_MissingOrder(t *testing.T) {
	router, _ := newTestRouter(t, Policy{})

	rec := send(router, http.MethodPut, "/orders", url.Values{"id": {"8"}, "status": {"approved"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
}

func TestUpdate_Full(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)

	form := validOrder()
	form.Set("id", "1")
	form.Set("package_id", "2")
	form.Set("customer_name", "Ani Wijaya")
	form.Set("status", "rejected")

	rec := send(router, http.MethodPut, "/orders", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Order updated successfully")
	assert.Equal(t, "Ani Wijaya", repo.rows[1].CustomerName)
	assert.Equal(t, int64(2), *repo.rows[1].PackageID)
	assert.Equal(t, StatusRejected, repo.rows[1].Status)
}

func TestDelete(t *testing.T) {
	router, repo := newTestRouter(t, Policy{})
	require.Equal(t, http.StatusCreated, send(router, http.MethodPost, "/orders", validOrder()).Code)

	assert.Equal(t, http.StatusOK, send(router, http.MethodDelete, "/orders?id=1", nil).Code)
	assert.Empty(t, repo.rows)
	assert.Equal(t, http.StatusOK, send(router, http.MethodDelete, "/orders?id=1", nil).Code)
	assert.Equal(t, http.StatusBadRequest, send(router, http.MethodDelete, "/orders", nil).Code)
}
