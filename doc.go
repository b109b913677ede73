// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package hotkeys edits Age of Empires II hotkey profiles.
//
// A profile the game shows as a single configuration is stored as two
// files: the profile file {name}.hkp and a base file, usually
// {name}/base.hkp or {name}/pompeii.hkp.  Profile loads both and exposes
// their bindings as one list, base file first.  Changing a binding
// updates the owning file in memory; Save writes both files back.
//
//	p, err := hotkeys.Open(filepath.Join(dir, "mine.hkp"))
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	for _, b := range p.Bindings() {
//		if b.Ctrl() && !b.Alt() {
//			_ = b.SetCtrl(false)
//			_ = b.SetAlt(true)
//		}
//	}
//	return p.Save(false)
//
// Single files can be handled directly with package hkfile.
package hotkeys
