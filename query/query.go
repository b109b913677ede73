// Copyright 2024 The hotkeys Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package query selects bindings with boolean expressions such as
//
//	ctrl && !alt && key_name in ["1", "2", "3"]
//	name startsWith "Create Group"
//
// Expressions are evaluated with github.com/expr-lang/expr against Env.
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/bpowers/hotkeys/hkfile"
	"github.com/bpowers/hotkeys/names"
)

var ErrNotBool = errors.New("query: expression did not evaluate to a bool")

// Env is the set of variables an expression can refer to.
type Env struct {
	Key     uint32 `expr:"key"`
	KeyName string `expr:"key_name"`
	NameID  uint32 `expr:"name_id"`
	Name    string `expr:"name"`
	Ctrl    bool   `expr:"ctrl"`
	Alt     bool   `expr:"alt"`
	Shift   bool   `expr:"shift"`
}

// EnvFor builds the expression environment for b.
func EnvFor(b *hkfile.Binding, l names.Lookup) Env {
	return Env{
		Key:     uint32(b.Key()),
		KeyName: b.Key().String(),
		NameID:  b.NameID(),
		Name:    b.Name(l),
		Ctrl:    b.Ctrl(),
		Alt:     b.Alt(),
		Shift:   b.Shift(),
	}
}

// Query is a compiled selection expression.  It is safe for concurrent
// use.
type Query struct {
	src     string
	program *vm.Program
}

func Compile(src string) (*Query, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query: compile %q: %w", src, err)
	}
	return &Query{
		src:     src,
		program: program,
	}, nil
}

// MustCompile is like Compile but panics if src doesn't compile.
func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string {
	return q.src
}

func (q *Query) Match(b *hkfile.Binding, l names.Lookup) (bool, error) {
	out, err := expr.Run(q.program, EnvFor(b, l))
	if err != nil {
		return false, fmt.Errorf("query: run %q: %w", q.src, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q returned %T", ErrNotBool, q.src, out)
	}
	return ok, nil
}

// Filter returns the bindings in bs that match, preserving order.
func (q *Query) Filter(bs []*hkfile.Binding, l names.Lookup) ([]*hkfile.Binding, error) {
	var matched []*hkfile.Binding
	for _, b := range bs {
		ok, err := q.Match(b, l)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, b)
		}
	}
	return matched, nil
}
