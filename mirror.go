// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgryski/go-farm"
)

func (p *Profile) mirrorFiles() error {
	if p.mirror == nil {
		return nil
	}
	var errs []error
	for _, path := range []string{p.profile.Path(), p.base.Path()} {
		if err := mirrorFile(p.mirror, path, p.logger); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// mirrorFile copies path to the same relative location under r's remote
// directory, if path is inside r's profiles directory.
func mirrorFile(r PathResolver, path string, logger *slog.Logger) error {
	profiles, err := r.ProfilesDir()
	if err != nil {
		logger.Debug("not mirroring: no profiles directory", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	rel, ok := relativeTo(profiles, path)
	if !ok {
		logger.Debug("not mirroring: outside the profiles directory", slog.String("path", path))
		return nil
	}
	remote, err := r.RemoteDir()
	if err != nil {
		return fmt.Errorf("mirror %q: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mirror %q: %w", path, err)
	}
	dst := filepath.Join(remote, rel)
	if existing, err := os.ReadFile(dst); err == nil && farm.Hash64(existing) == farm.Hash64(data) {
		logger.Debug("mirror up to date", slog.String("path", dst))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mirror %q: %w", path, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("mirror %q: %w", path, err)
	}

	logger.Debug("mirrored", slog.String("from", path), slog.String("to", dst))
	return nil
}
