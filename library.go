// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bpowers/hotkeys/hkfile"
)

// Library is every profile found in a profiles directory.
type Library struct {
	folder   string
	profiles []*Profile
	byName   map[string]*Profile
	issues   []error
}

// OpenLibrary opens each *.hkp profile in folder.  Profiles that fail to
// load are recorded in Issues rather than failing the whole scan; only an
// unreadable folder is an error.
func OpenLibrary(folder string, opts ...Option) (*Library, error) {
	o := buildOptions(opts)

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	l := &Library{
		folder: folder,
		byName: make(map[string]*Profile),
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".hkp") {
			continue
		}
		// a flat base.hkp belongs to the profiles next to it
		if hkfile.DetectFormat(name) == hkfile.Extended {
			continue
		}
		path := filepath.Join(folder, name)
		p, err := Open(path, opts...)
		if err != nil {
			o.logger.Warn("skipping profile", slog.String("path", path), slog.Any("error", err))
			l.issues = append(l.issues, fmt.Errorf("load %q: %w", path, err))
			continue
		}
		l.profiles = append(l.profiles, p)
		l.byName[p.Name()] = p
	}

	o.logger.Debug("scanned profiles",
		slog.String("folder", folder),
		slog.Int("profiles", len(l.profiles)),
		slog.Int("issues", len(l.issues)))

	return l, nil
}

// OpenUserLibrary opens the library in r's profiles directory.
func OpenUserLibrary(r PathResolver, opts ...Option) (*Library, error) {
	dir, err := r.ProfilesDir()
	if err != nil {
		return nil, err
	}
	return OpenLibrary(dir, opts...)
}

func (l *Library) Folder() string {
	return l.folder
}

// Profiles returns the loaded profiles ordered by file name.
func (l *Library) Profiles() []*Profile {
	return l.profiles
}

func (l *Library) Len() int {
	return len(l.profiles)
}

// Get returns the profile called name.
func (l *Library) Get(name string) (*Profile, bool) {
	p, ok := l.byName[name]
	return p, ok
}

// Issues returns the errors hit while loading profiles.
func (l *Library) Issues() []error {
	return l.issues
}

// Close closes every profile.
func (l *Library) Close() error {
	var first error
	for _, p := range l.profiles {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
