// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"path/filepath"

	"golang.org/x/text/cases"
)

// Format is the header shape of a hotkey file.
type Format int

const (
	// Compact is the older shape: version, menu count, menus.
	Compact Format = iota
	// Extended inserts three menus between the version and the menu count.
	Extended
)

// extendedLeadingMenus is fixed; the count isn't stored anywhere.
const extendedLeadingMenus = 3

func (f Format) String() string {
	switch f {
	case Compact:
		return "compact"
	case Extended:
		return "extended"
	}
	return "unknown"
}

var extendedNames = []string{"base.hkp", "pompeii.hkp"}

// DetectFormat picks the header shape from the file's base name.  Note
// the extension says nothing: a profile's .hkp file is usually Compact.
func DetectFormat(path string) Format {
	base := cases.Fold().String(filepath.Base(path))
	for _, name := range extendedNames {
		if base == name {
			return Extended
		}
	}
	return Compact
}
