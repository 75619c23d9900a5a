// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import "unicode/utf8"

// Code is a single unit of tokenizer input: a Unicode code point, or one of
// the negative virtual codes below.
type Code int32

// Virtual codes. Real characters are always >= 0.
const (
	// CodeNone is the previous code before any input was consumed.
	CodeNone Code = -(iota + 1)
	// CodeEOF marks the end of all input.
	CodeEOF
	// CodeBreak marks the end of one chunk (one argv entry).
	CodeBreak
	// CodeHorizontalTab is a tab character. It is followed by zero or more
	// CodeVirtualSpace codes padding to the next tab stop.
	CodeHorizontalTab
	CodeVirtualSpace
	CodeLineFeed
	CodeCarriageReturn
	CodeCarriageReturnLineFeed
)

const tabSize = 4

// Bytes that are not valid UTF-8 map to codeRawByte-b, so argv entries that
// are arbitrary bytes rebuild unchanged.
const codeRawByte Code = -0x100

func rawByteCode(b byte) Code {
	return codeRawByte - Code(b)
}

func isRawByte(c Code) bool {
	return c <= codeRawByte && c > codeRawByte-0x100
}

// Common characters.
const (
	codeDash        Code = '-'
	codeDot         Code = '.'
	codeEquals      Code = '='
	codeExclamation Code = '!'
	codeLessThan    Code = '<'
	codeGreaterThan Code = '>'
	codeLeftSquare  Code = '['
	codeRightSquare Code = ']'
)

// IsBoundary reports whether c ends a chunk.
func IsBoundary(c Code) bool {
	return c == CodeBreak || c == CodeEOF
}

// IsBoundaryOrStart reports whether a construct that must begin a chunk may
// start after c.
func IsBoundaryOrStart(c Code) bool {
	return c == CodeNone || c == CodeBreak
}

func isVirtual(c Code) bool {
	return c < 0
}

func isAlphanumeric(c Code) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isLongFlagCode reports whether c may appear in a long flag name after the
// first character.
func isLongFlagCode(c Code) bool {
	return isAlphanumeric(c) || c == codeDash || c == codeDot
}

func isWhitespace(c Code) bool {
	switch c {
	case ' ', CodeHorizontalTab, CodeVirtualSpace, CodeLineFeed, CodeCarriageReturn, CodeCarriageReturnLineFeed:
		return true
	}
	return false
}

// isSyntaxIDCode reports whether c may appear inside the brackets of an
// argument syntax.
func isSyntaxIDCode(c Code) bool {
	if isVirtual(c) || isWhitespace(c) {
		return false
	}
	switch c {
	case codeLessThan, codeGreaterThan, codeLeftSquare, codeRightSquare:
		return false
	}
	return true
}

// codesOf converts s into codes, normalizing line endings and expanding tabs.
// Columns restart at zero for every call.
func codesOf(s string) []Code {
	codes := make([]Code, 0, len(s))
	column := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			codes = append(codes, rawByteCode(s[i]))
			column++
		case r == '\t':
			codes = append(codes, CodeHorizontalTab)
			column++
			for column%tabSize != 0 {
				codes = append(codes, CodeVirtualSpace)
				column++
			}
		case r == '\r' && i+1 < len(s) && s[i+1] == '\n':
			codes = append(codes, CodeCarriageReturnLineFeed)
			size = 2
			column = 0
		case r == '\r':
			codes = append(codes, CodeCarriageReturn)
			column = 0
		case r == '\n':
			codes = append(codes, CodeLineFeed)
			column = 0
		default:
			codes = append(codes, Code(r))
			column++
		}
		i += size
	}
	return codes
}

// appendText appends the source bytes of c to b.
func appendText(b []byte, c Code) []byte {
	switch {
	case c == CodeHorizontalTab:
		return append(b, '\t')
	case c == CodeLineFeed:
		return append(b, '\n')
	case c == CodeCarriageReturn:
		return append(b, '\r')
	case c == CodeCarriageReturnLineFeed:
		return append(b, '\r', '\n')
	case isRawByte(c):
		return append(b, byte(codeRawByte-c))
	case isVirtual(c):
		return b
	}
	return utf8.AppendRune(b, rune(c))
}
