// Copyright 2021 The hotkeys Authors and Caleb Spare. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bitset records which entries of a fixed-length sequence have
// been touched.
package bitset

import (
	"math/bits"
)

// Bitset is conceptually a []bool of fixed length, packed 64 to a word.
type Bitset struct {
	words  []uint64
	length int
}

func New(length int) *Bitset {
	return &Bitset{
		words:  make([]uint64, (length+63)/64),
		length: length,
	}
}

func split(i int) (word int, mask uint64) {
	return i / 64, 1 << (uint(i) % 64)
}

// Set marks position i; out of range positions are ignored.
func (b *Bitset) Set(i int) {
	if i < 0 || i >= b.length {
		return
	}
	w, m := split(i)
	b.words[w] |= m
}

func (b *Bitset) Clear(i int) {
	if i < 0 || i >= b.length {
		return
	}
	w, m := split(i)
	b.words[w] &^= m
}

func (b *Bitset) IsSet(i int) bool {
	if i < 0 || i >= b.length {
		return false
	}
	w, m := split(i)
	return b.words[w]&m != 0
}

// Len is the number of positions tracked, set or not.
func (b *Bitset) Len() int {
	return b.length
}

// Count returns the number of set positions.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Ones returns the set positions in increasing order.
func (b *Bitset) Ones() []int {
	var ones []int
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			ones = append(ones, wi*64+tz)
			w &= w - 1
		}
	}
	return ones
}

// Reset clears every position.
func (b *Bitset) Reset() {
	clear(b.words)
}
