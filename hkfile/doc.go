// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package hkfile reads, edits and writes a single hotkey file (.hkp/.hki).
//
// On disk a hotkey file is a raw deflate stream.  Once inflated it looks
// like:
//
//	┌────────────────────────────┐
//	│ version code (u32)         │
//	├────────────────────────────┤
//	│ 3 leading menus            │  extended format only
//	├────────────────────────────┤
//	│ menu count (u32)           │
//	├────────────────────────────┤
//	│ menu: record count (u32)   │
//	│       records...           │
//	│ menu: record count (u32)   │
//	│       records...           │
//	│ ...                        │
//	└────────────────────────────┘
//
// All integers are little-endian.  Each record is 12 bytes:
//
//	 0    1    2    3    4    5    6    7
//	+----+----+----+----+----+----+----+----+
//	| key code          | name id           |
//	+----+----+----+----+----+----+----+----+
//	|ctrl|alt |shft|pad |
//	+----+----+----+----+
//
// The modifier bytes are true when nonzero and are always written as 1.
//
// Which header shape a file uses can't be told from its contents: files
// named base.hkp or pompeii.hkp use the extended shape, everything else the
// compact one.  Nobody seems to know why the extended shape inserts three
// menus ahead of the count instead of bumping the count.
//
// A File keeps the whole inflated image in memory.  Every Binding setter
// re-encodes its record straight into that image, so Save only has to
// compress and write it out.
package hkfile
