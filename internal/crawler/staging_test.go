package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewStager(dir, "liverpool-bose-qc-ultra-", false)
	require.NoError(t, err)

	page, err := s.Stage("page.html", []byte("<html></html>"))
	require.NoError(t, err)
	payload, err := s.Stage("payload.json", []byte("{}"))
	require.NoError(t, err)

	require.Equal(t, []string{page, payload}, s.Files())
	require.True(t, strings.HasPrefix(filepath.Base(page), "liverpool-bose-qc-ultra-"))
	require.True(t, strings.HasSuffix(page, "-page.html"))

	b, err := os.ReadFile(payload)
	require.NoError(t, err)
	require.Equal(t, "{}", string(b))

	require.NoError(t, s.Cleanup())
	_, err = os.Stat(page)
	require.True(t, os.IsNotExist(err))
	require.Empty(t, s.Files())
}

func TestStagerKeep(t *testing.T) {
	s, err := NewStager(t.TempDir(), "x-", true)
	require.NoError(t, err)

	path, err := s.Stage("product.json", []byte("{}"))
	require.NoError(t, err)
	require.NoError(t, s.Cleanup())

	_, err = os.Stat(path)
	require.NoError(t, err)
}
