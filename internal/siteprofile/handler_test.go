// AngelaMos | 2026
// handler_test.go

package siteprofile

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *memRepo) {
	t.Helper()

	svc, repo, _ := newTestService(t)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, func(next http.Handler) http.Handler { return next })

	return r, repo
}

func profileForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, data := range files {
		fw, err := mw.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestGetHandler_NoProfile(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/website-profile", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"data":null,"message":"No profile found"}`, rec.Body.String())
}

func TestCreateHandler_ThenConflict(t *testing.T) {
	router, repo := newTestRouter(t)

	body, ct := profileForm(t, map[string]string{
		"hero_title":              "Forever",
		"satisfied_couples_count": "42",
	}, map[string][]byte{"hero_image_1": jpegBytes})

	req := httptest.NewRequest(http.MethodPost, "/website-profile", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, repo.row)
	assert.Equal(t, "Forever", repo.row.HeroTitle)
	assert.Equal(t, 42, repo.row.SatisfiedCouplesCount)
	assert.NotEmpty(t, repo.row.HeroImage1)

	body, ct = profileForm(t, map[string]string{"hero_title": "Again"}, nil)
	req = httptest.NewRequest(http.MethodPost, "/website-profile", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPutHandler_ThenGet(t *testing.T) {
	router, _ := newTestRouter(t)

	body, ct := profileForm(t, map[string]string{
		"bottom_title": "Let's talk",
	}, map[string][]byte{"gallery_image_2": jpegBytes})

	req := httptest.NewRequest(http.MethodPut, "/website-profile", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/website-profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Let's talk", resp.Data["bottom_title"])
	assert.Contains(t, resp.Data["gallery_image_2_url"], "http://localhost:8080/uploads/gallery_image_2-")
	assert.Equal(t, "", resp.Data["hero_image_1_url"])
}

func TestDeleteHandler_NoProfile(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/website-profile", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHandler_SiteProfilePath(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.row = &Profile{ID: ProfileID, Content: Content{HeroTitle: "Forever"}}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/site-profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hero_title":"Forever"`)
}
