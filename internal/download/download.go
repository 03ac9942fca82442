package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ModelDir is where remote models are cached, relative to the working directory.
const ModelDir = "assets/models/downloaded"

const defaultUserAgent = "impulse-scene/1.0"

// DefaultTimeout bounds a single model fetch.
const DefaultTimeout = 60 * time.Second

var client = &http.Client{Timeout: DefaultTimeout}

// CachedPath returns where url is stored under destDir, without touching the network.
func CachedPath(url, destDir string) string {
	name := sanitizeFilename(filenameFromURL(url))
	if ext := extensionFromURL(url); ext != "" {
		name += ext
	}
	return filepath.Join(destDir, name)
}

// Model returns a local copy of the model at url, downloading it into destDir unless a file
// with the same name is already there.
func Model(ctx context.Context, url, destDir string) (path string, cached bool, err error) {
	path = CachedPath(url, destDir)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path, true, nil
	}
	path, err = Download(ctx, url, destDir)
	return path, false, err
}

// Download fetches url and saves it under destDir. The filename comes from Content-Disposition
// or the URL path; the extension from the URL or Content-Type. destDir is created if needed.
// A partial file is removed on failure.
func Download(ctx context.Context, url string, destDir string) (savedPath string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}
	ext := extensionFromURL(url)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(url)
	}
	name = sanitizeFilename(strings.TrimSuffix(name, filepath.Ext(name)))
	name += ext
	savedPath = filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	// filename="..."; or filename*=UTF-8''...
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

// modelExts are the formats raylib's LoadModel understands, plus zip bundles for multi-file glTF.
var modelExts = map[string]bool{
	".glb": true, ".gltf": true, ".obj": true, ".iqm": true, ".vox": true, ".m3d": true, ".zip": true,
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "gltf-binary"):
		return ".glb"
	case strings.Contains(ct, "gltf"):
		return ".gltf"
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "obj"):
		return ".obj"
	}
	return ".bin"
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(url)))
	if modelExts[ext] {
		return ext
	}
	return ""
}

func filenameFromURL(url string) string {
	base := filepath.Base(stripQuery(url))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "model"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
