package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"impulse-scene/internal/archive"
	"impulse-scene/internal/assets"
	"impulse-scene/internal/config"
	"impulse-scene/internal/download"
	"impulse-scene/internal/env"
)

// fetchModel downloads the named variant's model_url into the model cache and prints the path.
func fetchModel(configPath, variant string) error {
	if _, err := env.Load(".env"); err != nil {
		return err
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	settings.ApplyEnv()
	v, err := settings.Resolve(variant)
	if err != nil {
		return err
	}
	if v.ModelURL == "" {
		return errors.New("fetch: variant has no model_url")
	}
	ctx, cancel := context.WithTimeout(context.Background(), download.DefaultTimeout)
	defer cancel()
	path, cached, err := variantModel(ctx, v)
	if err != nil {
		return err
	}
	if cached {
		fmt.Println("cached", path)
	} else {
		fmt.Println("saved", path)
	}
	return nil
}

// variantModel returns the local model file for v. A model_url is downloaded (or reused from
// the cache) and a zip archive is unpacked to its best model file. A plain model path is
// returned as is.
func variantModel(ctx context.Context, v config.Variant) (path string, cached bool, err error) {
	if v.ModelURL == "" {
		return assets.Resolve(v.Model), true, nil
	}
	path, cached, err = download.Model(ctx, v.ModelURL, download.ModelDir)
	if err != nil {
		return "", false, err
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		path, err = archive.ExtractModel(path)
		if err != nil {
			return "", false, err
		}
	}
	return path, cached, nil
}
