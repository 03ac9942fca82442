package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoModel is returned when an extracted bundle holds no loadable model file.
var ErrNoModel = errors.New("no model file in archive")

// Unzip extracts zipPath into destDir, preserving directory structure. Entries that would land
// outside destDir are skipped. Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Join(absDir, f.Name)
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue // path escape
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0755); err != nil {
				return nil, fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// modelRank orders model formats by preference: self-contained binaries first.
var modelRank = map[string]int{".glb": 0, ".gltf": 1, ".obj": 2, ".iqm": 3, ".m3d": 4, ".vox": 5}

// FindModel picks the model to load from a list of extracted files: the most preferred format,
// then the shallowest path, then alphabetical.
func FindModel(paths []string) (string, error) {
	var candidates []string
	for _, p := range paths {
		if _, ok := modelRank[strings.ToLower(filepath.Ext(p))]; ok {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return "", ErrNoModel
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		ra, rb := modelRank[strings.ToLower(filepath.Ext(a))], modelRank[strings.ToLower(filepath.Ext(b))]
		if ra != rb {
			return ra < rb
		}
		da, db := strings.Count(filepath.ToSlash(a), "/"), strings.Count(filepath.ToSlash(b), "/")
		if da != db {
			return da < db
		}
		return a < b
	})
	return candidates[0], nil
}

// ExtractModel unzips a model bundle next to itself (bundle.zip -> bundle/) and returns the model
// file inside. A bundle that was already extracted is not extracted again.
func ExtractModel(zipPath string) (string, error) {
	dir := strings.TrimSuffix(zipPath, filepath.Ext(zipPath))
	if existing, err := listFiles(dir); err == nil && len(existing) > 0 {
		if p, err := FindModel(existing); err == nil {
			return p, nil
		}
	}
	files, err := Unzip(zipPath, dir)
	if err != nil {
		return "", err
	}
	p, err := FindModel(files)
	if err != nil {
		return "", fmt.Errorf("unzip: %s: %w", zipPath, err)
	}
	return p, nil
}

func listFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
