// AngelaMos | 2026
// reconciler_test.go

package asset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRefs []string

func (s staticRefs) ReferencedAssets(context.Context) ([]string, error) {
	return s, nil
}

type failingRefs struct{}

func (failingRefs) ReferencedAssets(context.Context) ([]string, error) {
	return nil, errors.New("db down")
}

func TestSweep_DeletesOnlyOldUnreferenced(t *testing.T) {
	m, dir := newTestManager(t)
	ctx := context.Background()
	now := time.Now()

	write := func(name string, age time.Duration) {
		p := filepath.Join(dir, name)
		require.NoError(t, m.storage.Put(ctx, name, strings.NewReader("x"), 1, ""))
		require.NoError(t, os.Chtimes(p, now.Add(-age), now.Add(-age)))
	}

	write("kept.png", 48*time.Hour)
	write("orphan.png", 48*time.Hour)
	write("fresh.png", time.Minute)

	rec := NewReconciler(m, time.Hour, nil,
		staticRefs{"/uploads/kept.png"},
		staticRefs{"", "https://elsewhere.example.com/x.png"},
	)
	rec.now = func() time.Time { return now }

	res, err := rec.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Scanned)
	assert.Equal(t, 1, res.Deleted)

	_, err = os.Stat(filepath.Join(dir, "orphan.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "kept.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "fresh.png"))
	assert.NoError(t, err)
}

func TestSweep_AbortsWhenReferencesUnknown(t *testing.T) {
	m, dir := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.storage.Put(ctx, "orphan.png", strings.NewReader("x"), 1, ""))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "orphan.png"), old, old))

	_, err := NewReconciler(m, time.Hour, nil, failingRefs{}).Sweep(ctx)
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "orphan.png"))
	assert.NoError(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	m, _ := newTestManager(t)
	rec := NewReconciler(m, time.Hour, nil)

	assert.Error(t, rec.Start("not a schedule"))
	assert.NoError(t, rec.Start(""))
	rec.Stop(context.Background())
}
