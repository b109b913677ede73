// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"encoding/binary"
	"fmt"

	"github.com/bpowers/hotkeys/internal/container"
)

// Layout is the logical content of a hotkey file, used to build new files
// from scratch.
type Layout struct {
	Version uint32
	// Leading are the menus in front of the menu count in Extended files.
	// Empty means three empty menus; Compact files can't have any.
	Leading [][]Record
	Menus   [][]Record
}

// Encode returns the inflated image of l in the given format.
func (l *Layout) Encode(format Format) ([]byte, error) {
	leading := l.Leading
	switch format {
	case Compact:
		if len(leading) != 0 {
			return nil, fmt.Errorf("compact files have no leading menus (got %d)", len(leading))
		}
	case Extended:
		if len(leading) == 0 {
			leading = make([][]Record, extendedLeadingMenus)
		} else if len(leading) != extendedLeadingMenus {
			return nil, fmt.Errorf("extended files have exactly %d leading menus (got %d)", extendedLeadingMenus, len(leading))
		}
	default:
		return nil, fmt.Errorf("unknown format %d", format)
	}

	size := 4 + 4
	for _, menus := range [][][]Record{leading, l.Menus} {
		for _, m := range menus {
			size += 4 + len(m)*recordCodec.Size()
		}
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, l.Version)
	if format == Extended {
		buf = appendMenus(buf, leading)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(l.Menus)))
	buf = appendMenus(buf, l.Menus)

	return buf, nil
}

func appendMenus(buf []byte, menus [][]Record) []byte {
	for _, m := range menus {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m)))
		for _, rec := range m {
			off := len(buf)
			buf = append(buf, make([]byte, recordCodec.Size())...)
			// can't fail: the slot was just sized for it
			_ = recordCodec.WriteAt(buf, rec, off)
		}
	}
	return buf
}

// Create writes l to path, replacing anything already there, and loads
// the result.  The format comes from DetectFormat(path).
func Create(path string, l *Layout, opts ...Option) (*File, error) {
	buf, err := l.Encode(DetectFormat(path))
	if err != nil {
		return nil, err
	}
	if _, err := container.Save(path, buf); err != nil {
		return nil, err
	}
	return Load(path, opts...)
}
