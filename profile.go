// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hotkeys

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bpowers/hotkeys/hkfile"
	"github.com/bpowers/hotkeys/names"
	"github.com/bpowers/hotkeys/query"
)

// Profile is a hotkey profile: a profile file and a base file whose
// bindings are presented as one list.  A Profile is not safe for
// concurrent use.
type Profile struct {
	name    string
	folder  string
	profile *hkfile.File
	base    *hkfile.File
	// base file's bindings, then the profile file's.  Entries are shared
	// with the files, not copies.
	all    []*hkfile.Binding
	mirror PathResolver
	logger *slog.Logger
}

// BaseFileCandidates lists, in search order, where the base file of the
// profile {folder}/{name}.hkp may be.
func BaseFileCandidates(folder, name string) []string {
	return []string{
		filepath.Join(folder, name, "base.hkp"),
		filepath.Join(folder, name, "pompeii.hkp"),
		// shared profiles often keep both files in one folder
		filepath.Join(folder, "base.hkp"),
		filepath.Join(folder, "pompeii.hkp"),
		filepath.Join(folder, name+".hki"),
	}
}

// findFile returns the first candidate that exists and isn't a directory.
func findFile(candidates []string) (string, bool) {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Open loads the profile whose profile file is at profilePath, along with
// its base file.  Either file failing to load fails Open.
func Open(profilePath string, opts ...Option) (*Profile, error) {
	o := buildOptions(opts)

	name := strings.TrimSuffix(filepath.Base(profilePath), filepath.Ext(profilePath))
	folder := filepath.Dir(profilePath)

	profile, err := hkfile.Load(profilePath, hkfile.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("profile file: %w", err)
	}

	candidates := append([]string{o.baseFile}, BaseFileCandidates(folder, name)...)
	basePath, ok := findFile(candidates)
	if !ok {
		_ = profile.Close()
		return nil, fmt.Errorf("%w: profile %q in %q (tried %s)",
			ErrBaseFileNotFound, name, folder, strings.Join(candidates[1:], ", "))
	}
	base, err := hkfile.Load(basePath, hkfile.WithLogger(o.logger))
	if err != nil {
		_ = profile.Close()
		return nil, fmt.Errorf("base file: %w", err)
	}

	o.logger.Debug("opened profile",
		slog.String("name", name),
		slog.String("profile", profilePath),
		slog.String("base", basePath))

	return newProfile(name, folder, profile, base, o), nil
}

// OpenNamed opens the profile called name in r's profiles directory.
func OpenNamed(r PathResolver, name string, opts ...Option) (*Profile, error) {
	dir, err := r.ProfilesDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, name+".hkp"), opts...)
}

func newProfile(name, folder string, profile, base *hkfile.File, o options) *Profile {
	p := &Profile{
		name:    name,
		folder:  folder,
		profile: profile,
		base:    base,
		mirror:  o.mirror,
		logger:  o.logger,
	}
	// duplicates between the two files are kept: both entries are real
	// records and editing either one is meaningful
	p.all = make([]*hkfile.Binding, 0, base.Len()+profile.Len())
	p.all = append(p.all, base.Bindings()...)
	p.all = append(p.all, profile.Bindings()...)
	return p
}

// Name is the profile's name, as shown in game.
func (p *Profile) Name() string {
	return p.name
}

// Folder is the directory holding the profile file.
func (p *Profile) Folder() string {
	return p.folder
}

func (p *Profile) ProfileFile() *hkfile.File {
	return p.profile
}

func (p *Profile) BaseFile() *hkfile.File {
	return p.base
}

func (p *Profile) Len() int {
	return len(p.all)
}

// At returns the i'th binding: base file bindings come first.
func (p *Profile) At(i int) *hkfile.Binding {
	return p.all[i]
}

// Bindings returns every binding, base file first.  The slice is a copy;
// the bindings are shared with the files.
func (p *Profile) Bindings() []*hkfile.Binding {
	return slices.Clone(p.all)
}

// Select returns the bindings matching q, in Bindings order.
func (p *Profile) Select(q *query.Query, l names.Lookup) ([]*hkfile.Binding, error) {
	return q.Filter(p.all, l)
}

// Changed reports how many bindings were modified since the profile was
// loaded or cloned.
func (p *Profile) Changed() int {
	return len(p.profile.Changed()) + len(p.base.Changed())
}

// Clone copies p in memory into the canonical layout under folder:
//
//	{folder}/{name}.hkp
//	{folder}/{name}/base.hkp
//
// whatever the source's base file was called.  The {folder}/{name}
// directory is created; nothing else is written.  An empty folder means
// the current directory.
func (p *Profile) Clone(folder, name string) (*Profile, error) {
	if err := os.MkdirAll(filepath.Join(folder, name), 0o755); err != nil {
		return nil, err
	}
	profile, err := hkfile.Clone(p.profile, filepath.Join(folder, name+".hkp"))
	if err != nil {
		return nil, fmt.Errorf("profile file: %w", err)
	}
	base, err := hkfile.Clone(p.base, filepath.Join(folder, name, "base.hkp"))
	if err != nil {
		return nil, fmt.Errorf("base file: %w", err)
	}
	return newProfile(name, folder, profile, base, options{
		logger: p.logger,
		mirror: p.mirror,
	}), nil
}

// Save writes the profile file and then the base file.  If the profile
// file fails to save, the base file isn't touched.  The two writes are
// not atomic together: a failure in between leaves them out of sync.
// See hkfile.File.Save for force.
func (p *Profile) Save(force bool) error {
	if err := p.profile.Save(force); err != nil {
		return fmt.Errorf("profile file: %w", err)
	}
	if err := p.base.Save(force); err != nil {
		return fmt.Errorf("base file: %w", err)
	}
	return p.mirrorFiles()
}

// SaveAs saves a copy of p named name next to p, and returns the copy.
// See SaveAsIn.
func (p *Profile) SaveAs(name string, overwrite bool) (*Profile, error) {
	return p.SaveAsIn(p.folder, name, overwrite)
}

// SaveAsIn saves a Clone of p into folder and returns it.  If either
// target file exists and overwrite is false, nothing is written and the
// error wraps ErrAlreadyExists.  An empty folder means the current
// directory.
func (p *Profile) SaveAsIn(folder, name string, overwrite bool) (*Profile, error) {
	clone, err := p.Clone(folder, name)
	if err != nil {
		return nil, err
	}
	if !overwrite {
		for _, f := range []*hkfile.File{clone.profile, clone.base} {
			if _, err := os.Stat(f.Path()); err == nil {
				return clone, fmt.Errorf("%w: %q", ErrAlreadyExists, f.Path())
			}
		}
	}
	return clone, clone.Save(false)
}

// Close releases both files' memory.
func (p *Profile) Close() error {
	err1 := p.profile.Close()
	err2 := p.base.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func (p *Profile) String() string {
	return fmt.Sprintf("%q profile", p.name)
}
