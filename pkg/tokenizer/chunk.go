// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import "sort"

// Chunks is tokenizer input built from a list of raw argv strings. Every chunk
// is terminated by CodeBreak and the whole input by CodeEOF, so argv
// boundaries survive tokenizing and the raw strings after any position can be
// recovered.
type Chunks struct {
	raw    []string
	codes  []Code
	starts []int // index of the first code of each chunk
}

// NewChunks preprocesses args into tokenizer input.
func NewChunks(args []string) *Chunks {
	c := &Chunks{
		raw:    append([]string(nil), args...),
		starts: make([]int, 0, len(args)),
	}
	for _, arg := range args {
		c.starts = append(c.starts, len(c.codes))
		c.codes = append(c.codes, codesOf(arg)...)
		c.codes = append(c.codes, CodeBreak)
	}
	c.codes = append(c.codes, CodeEOF)
	return c
}

// Len returns the number of chunks.
func (c *Chunks) Len() int {
	return len(c.raw)
}

// Codes returns the preprocessed code stream. The slice must not be modified.
func (c *Chunks) Codes() []Code {
	return c.codes
}

// Raw returns the original string of chunk i.
func (c *Chunks) Raw(i int) string {
	return c.raw[i]
}

// Index returns the chunk containing the code at pos. Positions at or past
// CodeEOF map to Len().
func (c *Chunks) Index(pos int) int {
	if pos >= len(c.codes)-1 {
		return len(c.raw)
	}
	return sort.Search(len(c.starts), func(i int) bool { return c.starts[i] > pos }) - 1
}

// start returns the index of the first code of chunk i.
func (c *Chunks) start(i int) int {
	if i >= len(c.starts) {
		return len(c.codes) - 1
	}
	return c.starts[i]
}

// After returns the raw strings of every chunk after the one containing pos.
func (c *Chunks) After(pos int) []string {
	i := c.Index(pos) + 1
	if i >= len(c.raw) {
		return nil
	}
	return append([]string(nil), c.raw[i:]...)
}

// from returns the raw strings of the chunk containing pos and every chunk
// after it.
func (c *Chunks) from(pos int) []string {
	i := c.Index(pos)
	if i >= len(c.raw) {
		return nil
	}
	return append([]string(nil), c.raw[i:]...)
}

// Text reconstructs the source text of the codes in [start, end).
func (c *Chunks) Text(start, end int) string {
	if start >= end {
		return ""
	}
	b := make([]byte, 0, end-start)
	for _, code := range c.codes[start:end] {
		b = appendText(b, code)
	}
	return string(b)
}
