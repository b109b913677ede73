// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package version is the registry of known hotkey file version codes.
//
// The version code is the first little-endian uint32 of a decompressed
// hotkey file.  It doesn't change the layout of the rest of the file; it
// is only used to recognize that a file is actually a hotkey file.
package version

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnrecognizedVersion is returned by Lookup for codes not in the table.
var ErrUnrecognizedVersion = errors.New("version: unrecognized file version code")

// Descriptor describes a single known file version.
type Descriptor struct {
	ID          string
	Code        uint32
	ValidSizes  []int // expected decompressed lengths in bytes
	Description string
}

// IsValidSize reports whether n is one of the decompressed lengths the
// game is known to produce for this version.
func (d Descriptor) IsValidSize(n int) bool {
	return slices.Contains(d.ValidSizes, n)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (0x%08X, %s)", d.ID, d.Code, d.Description)
}

// the table is never written after package init, so concurrent readers
// don't need a lock.
var table = map[uint32]Descriptor{}

func add(id string, code uint32, sizes []int, description string) {
	if _, ok := table[code]; ok {
		panic(fmt.Sprintf("version: duplicate code 0x%08X", code))
	}
	table[code] = Descriptor{
		ID:          id,
		Code:        code,
		ValidSizes:  sizes,
		Description: description,
	}
}

func init() {
	add("aok", 0x3f800000, []int{2080, 2192}, "Vanilla AoK, AoC/FE, WololoKingdoms")
	add("22", 0x40000000, []int{2432}, "HD2.2-3")
	add("50", 0x40400000, []int{2192, 2204, 2252, 2264}, "HD5.0+")
	add("de", 0x40866666, []int{
		4632, 4644, 4664, 4676, 4712, 4724,
		4748, 4820, 2672, 2324, 2796, 2336, 4996,
	}, "Definitive Edition")
}

// Lookup returns the descriptor registered for code.
func Lookup(code uint32) (Descriptor, error) {
	d, ok := table[code]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: 0x%08X", ErrUnrecognizedVersion, code)
	}
	return d, nil
}

// All returns every known descriptor ordered by code.
func All() []Descriptor {
	all := make([]Descriptor, 0, len(table))
	for _, d := range table {
		all = append(all, d)
	}
	slices.SortFunc(all, func(a, b Descriptor) int {
		switch {
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	})
	return all
}
