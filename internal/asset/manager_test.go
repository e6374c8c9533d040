// AngelaMos | 2026
// manager_test.go

package asset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/wedding-backend/internal/core"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0"), make([]byte, 64)...)
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	m := NewManager(store, ManagerConfig{
		URLPrefix:    "/uploads",
		BaseURL:      "https://example.com/",
		MaxSize:      1024,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	}, nil)
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return m, dir
}

func TestStore_NamesAndWritesFile(t *testing.T) {
	m, dir := newTestManager(t)

	rel, err := m.Store(context.Background(), BytesUpload("silver.jpg", jpegBytes), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000-silver.jpg", rel)

	data, err := os.ReadFile(filepath.Join(dir, "1700000000000-silver.jpg"))
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)
}

func TestStore_FieldPrefix(t *testing.T) {
	m, _ := newTestManager(t)

	rel, err := m.Store(context.Background(), BytesUpload("my hero.png", pngBytes), "hero_image_1")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/hero_image_1-1700000000000-my-hero.png", rel)
}

func TestStore_RejectsOversized(t *testing.T) {
	m, dir := newTestManager(t)

	big := append([]byte("\xff\xd8\xff\xe0"), make([]byte, 2048)...)
	_, err := m.Store(context.Background(), BytesUpload("big.jpg", big), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestStore_RejectsNonImage(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Store(context.Background(), BytesUpload("notes.jpg", []byte("plain text body")), "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	m, dir := newTestManager(t)
	ctx := context.Background()

	rel, err := m.Store(ctx, BytesUpload("a.png", pngBytes), "")
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(dir, "1700000000000-a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, m.Delete(ctx, rel), "already missing")
	assert.NoError(t, m.Delete(ctx, ""), "empty path")
	assert.NoError(t, m.Delete(ctx, "/static/logo.png"), "outside prefix")
}

func TestDelete_RejectsTraversal(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.Delete(context.Background(), "/uploads/../config.yaml")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestURL(t *testing.T) {
	m, _ := newTestManager(t)

	assert.Equal(t, "", m.URL(""))
	assert.Equal(t, "https://example.com/uploads/a.png", m.URL("/uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/a.png", m.URL("https://cdn.example.com/a.png"))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"silver.jpg":          "silver.jpg",
		"../../etc/passwd":    "passwd",
		`C:\Users\me\pic.png`: "pic.png",
		"wedding day.jpg":     "wedding-day.jpg",
		".hidden.png":         "hidden.png",
		"a...b.png":           "a.b.png",
		"..":                  "upload",
		"":                    "upload",
	}

	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}
