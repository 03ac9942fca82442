package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDownloadsOnceThenUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "model/gltf-binary")
		_, _ = w.Write([]byte("glTF-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/models/DamagedHelmet.glb?v=2"

	path, cached, err := Model(context.Background(), url, dir)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, filepath.Join(dir, "DamagedHelmet.glb"), path)
	assert.Equal(t, CachedPath(url, dir), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "glTF-bytes", string(data))

	path2, cached, err := Model(context.Background(), url, dir)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, path, path2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDownloadUsesContentTypeWhenURLHasNoExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="bunny pack.zip"`)
		_, _ = w.Write([]byte("PK"))
	}))
	defer srv.Close()

	path, err := Download(context.Background(), srv.URL+"/get", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "bunny_pack.zip", filepath.Base(path))
}

func TestDownloadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := Download(context.Background(), srv.URL+"/x.glb", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Download(ctx, srv.URL+"/x.glb", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b.c", sanitizeFilename("a b.c"))
	assert.Equal(t, "model", sanitizeFilename(""))
	assert.Equal(t, "model", sanitizeFilename("\x00\x01"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 200)), 96)
}
