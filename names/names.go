// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package names maps the numeric string ids stored in hotkey records to
// human readable action names.
package names

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lookup resolves a string id to a display name.
type Lookup interface {
	Name(id uint32) (string, bool)
}

// Table is an in-memory Lookup.
type Table map[uint32]string

func (t Table) Name(id uint32) (string, bool) {
	name, ok := t[id]
	return name, ok
}

// Resolve returns the name for id, or "#<id>" when l is nil or doesn't
// know it.
func Resolve(l Lookup, id uint32) string {
	if l != nil {
		if name, ok := l.Name(id); ok {
			return name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// LoadYAML reads a table from a YAML mapping of id to name:
//
//	10000: Create Group #1
//	10001: Create Group #2
func LoadYAML(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

func ParseYAML(data []byte) (Table, error) {
	t := make(Table)
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	return t, nil
}
