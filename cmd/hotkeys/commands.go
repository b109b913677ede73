// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/bpowers/hotkeys"
	"github.com/bpowers/hotkeys/hkfile"
	"github.com/bpowers/hotkeys/query"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) list(p *hotkeys.Profile, args []string) error {
	fs := newFlagSet("list")
	where := fs.String("where", "true", "selection expression")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	q, err := query.Compile(*where)
	if err != nil {
		return err
	}

	role := make(map[*hkfile.File]string, 2)
	role[p.BaseFile()] = "base"
	role[p.ProfileFile()] = "profile"

	n := 0
	for i, b := range p.Bindings() {
		ok, err := q.Match(b, a.names)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		n++
		fmt.Fprintf(a.out, "%4d  %-7s  %s\n", i, role[b.File()], b.Describe(a.names))
	}
	fmt.Fprintf(a.out, "%d of %d bindings\n", n, p.Len())
	return nil
}

// triState is a bool flag that remembers whether it was set.
type triState struct {
	set   bool
	value bool
}

func (t *triState) String() string {
	if !t.set {
		return ""
	}
	return strconv.FormatBool(t.value)
}

func (t *triState) IsBoolFlag() bool {
	return true
}

func (t *triState) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	t.set, t.value = true, v
	return nil
}

// set changes every binding matching -where.  When save is false the
// changes stay in memory.
func (a *app) set(p *hotkeys.Profile, args []string, save bool) error {
	fs := newFlagSet("set")
	where := fs.String("where", "", "selection expression (required)")
	key := fs.String("key", "", "new key: a name like F1, A or NumPad3, or a virtual-key code")
	force := fs.Bool("force", false, "save even if the files changed on disk")
	var ctrl, alt, shift triState
	fs.Var(&ctrl, "ctrl", "set or clear Ctrl")
	fs.Var(&alt, "alt", "set or clear Alt")
	fs.Var(&shift, "shift", "set or clear Shift")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *where == "" {
		return fmt.Errorf("%w: set needs -where", errUsage)
	}
	q, err := query.Compile(*where)
	if err != nil {
		return err
	}
	var newKey hkfile.Key
	if *key != "" {
		if newKey, err = parseKey(*key); err != nil {
			return err
		}
	}

	matches, err := p.Select(q, a.names)
	if err != nil {
		return err
	}
	for _, b := range matches {
		var errs []error
		if *key != "" {
			errs = append(errs, b.SetKey(newKey))
		}
		if ctrl.set {
			errs = append(errs, b.SetCtrl(ctrl.value))
		}
		if alt.set {
			errs = append(errs, b.SetAlt(alt.value))
		}
		if shift.set {
			errs = append(errs, b.SetShift(shift.value))
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\n", b.Describe(a.names))
	}
	fmt.Fprintf(a.out, "changed %d bindings\n", len(matches))

	if !save || len(matches) == 0 {
		return nil
	}
	return a.save(p, *force)
}

func (a *app) save(p *hotkeys.Profile, force bool) error {
	err := p.Save(force)
	if errors.Is(err, hotkeys.ErrExternalConflict) {
		return fmt.Errorf("%w\n(the game or another tool changed %s; rerun with -force to overwrite)", err, p)
	}
	return err
}

func (a *app) clone(p *hotkeys.Profile, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	name := args[0]
	fs := newFlagSet("clone")
	dir := fs.String("dir", p.Folder(), "directory to write the copy into")
	overwrite := fs.Bool("overwrite", false, "replace an existing profile")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	c, err := p.SaveAsIn(*dir, name, *overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s and %s\n", c.ProfileFile().Path(), c.BaseFile().Path())
	return nil
}

func (a *app) profiles(args []string) error {
	var (
		l   *hotkeys.Library
		err error
	)
	switch len(args) {
	case 0:
		l, err = hotkeys.OpenUserLibrary(a.paths, a.options()...)
	case 1:
		l, err = hotkeys.OpenLibrary(args[0], a.options()...)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Close()
	}()

	for _, p := range l.Profiles() {
		fmt.Fprintf(a.out, "%-24s  %4d bindings  base: %s\n", p.Name(), p.Len(), p.BaseFile().Path())
	}
	for _, err := range l.Issues() {
		fmt.Fprintf(a.out, "skipped: %s\n", err)
	}
	return nil
}

// parseKey accepts a key name as printed by list, or a numeric
// virtual-key code.
func parseKey(s string) (hkfile.Key, error) {
	if n, err := strconv.ParseUint(s, 0, 32); err == nil && len(s) > 1 {
		return hkfile.Key(n), nil
	}
	for k := hkfile.Key(0); k <= 0xFF; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}
