// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package hkfile

import (
	"fmt"
)

// Key is a Windows virtual-key code, as stored in hotkey records.
type Key uint32

const (
	KeyNone      Key = 0x00
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyEnter     Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyPageUp    Key = 0x21
	KeyPageDown  Key = 0x22
	KeyEnd       Key = 0x23
	KeyHome      Key = 0x24
	KeyLeft      Key = 0x25
	KeyUp        Key = 0x26
	KeyRight     Key = 0x27
	KeyDown      Key = 0x28
	KeyInsert    Key = 0x2D
	KeyDelete    Key = 0x2E
	Key0         Key = 0x30
	Key9         Key = 0x39
	KeyA         Key = 0x41
	KeyZ         Key = 0x5A
	KeyNumPad0   Key = 0x60
	KeyNumPad9   Key = 0x69
	KeyF1        Key = 0x70
	KeyF24       Key = 0x87
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEnd:       "End",
	KeyHome:      "Home",
	KeyLeft:      "Left",
	KeyUp:        "Up",
	KeyRight:     "Right",
	KeyDown:      "Down",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
}

func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9, k >= KeyA && k <= KeyZ:
		return string(rune(k))
	case k >= KeyNumPad0 && k <= KeyNumPad9:
		return fmt.Sprintf("NumPad%d", k-KeyNumPad0)
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(0x%02X)", uint32(k))
}
