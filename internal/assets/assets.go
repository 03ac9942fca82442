// Package assets finds model files on disk whether the program runs from the repo root or from
// cmd/game.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// ModelExts are the file types raylib's LoadModel understands.
var ModelExts = []string{".glb", ".gltf", ".obj", ".iqm", ".vox", ".m3d"}

// Roots are prefixes tried in order when resolving a relative asset path.
func Roots() []string {
	return []string{"", "../.."}
}

// Resolve returns the first existing location of a relative path under Roots. Absolute paths
// and paths that exist nowhere are returned unchanged so the load error names what was asked for.
func Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	for _, root := range Roots() {
		candidate := filepath.Clean(filepath.Join(root, path))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// IsModel reports whether path has one of ModelExts (case-insensitive).
func IsModel(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ModelExts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir returns paths of all model files under dir, relative to dir with forward slashes.
// A missing dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !IsModel(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// FindModel searches dir for a model whose relative path contains search, ignoring case, spaces,
// dashes and underscores. "damaged helmet" finds "downloaded/DamagedHelmet.glb". When several
// match, a .glb is preferred, then the shortest path.
func FindModel(dir, search string) (string, error) {
	norm := normalizeForMatch(strings.TrimSuffix(search, filepath.Ext(search)))
	if norm == "" {
		return "", os.ErrNotExist
	}
	list, err := ScanDir(dir)
	if err != nil {
		return "", err
	}
	best := ""
	for _, rel := range list {
		if !strings.Contains(normalizeForMatch(rel), norm) {
			continue
		}
		if best == "" || better(rel, best) {
			best = rel
		}
	}
	if best == "" {
		return "", os.ErrNotExist
	}
	return filepath.Join(dir, filepath.FromSlash(best)), nil
}

func better(a, b string) bool {
	ga := strings.EqualFold(filepath.Ext(a), ".glb")
	gb := strings.EqualFold(filepath.Ext(b), ".glb")
	if ga != gb {
		return ga
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
