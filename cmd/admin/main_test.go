// AngelaMos | 2026
// main_test.go

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()

	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func TestReadNewPassword_Stdin(t *testing.T) {
	pw, err := readNewPassword(strings.NewReader("s3cret-pass\n"), &bytes.Buffer{}, true)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", pw)
}

func TestReadNewPassword_PromptConfirms(t *testing.T) {
	stubPasswords(t, "hunter22", "hunter22")

	var out bytes.Buffer
	pw, err := readNewPassword(nil, &out, false)
	require.NoError(t, err)
	assert.Equal(t, "hunter22", pw)
	assert.Contains(t, out.String(), "Confirm password: ")
}

func TestReadNewPassword_Mismatch(t *testing.T) {
	stubPasswords(t, "hunter22", "hunter23")

	_, err := readNewPassword(nil, &bytes.Buffer{}, false)
	assert.ErrorIs(t, err, errPasswordMismatch)
}

func TestRun_GenerateKeys(t *testing.T) {
	dir := t.TempDir()
	private := filepath.Join(dir, "private.pem")
	public := filepath.Join(dir, "public.pem")

	var out bytes.Buffer
	err := run(context.Background(), []string{
		"generate-keys", "-private", private, "-public", public,
	}, nil, &out)
	require.NoError(t, err)

	assert.FileExists(t, private)
	assert.FileExists(t, public)
	assert.Contains(t, out.String(), private)
}

func TestRun_Usage(t *testing.T) {
	assert.ErrorIs(t, run(context.Background(), nil, nil, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"nope"}, nil, &bytes.Buffer{}), errUsage)
}

func TestRun_CreateUserRequiresFlags(t *testing.T) {
	err := run(context.Background(), []string{"create-user", "-name", "Ana"}, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, errUsage)
}
