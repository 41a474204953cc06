// Package lexer holds the byte cursor and lexical primitives the parser
// drives directly: there is no separate up-front tokenization pass. The
// parser calls into this package's decoders (identifiers, numbers, the five
// string flavours, dates, references) at the point it needs them, which
// keeps the grammar's context-sensitivity (string flavour selection,
// number-vs-bare tie-break) local to the call site instead of smeared across
// a token stream.
package lexer

import (
	"unicode/utf8"

	"github.com/malloydata/motly/diag"
)

// Cursor is a byte cursor over UTF-8 source. Positions are computed on
// demand by scanning the consumed prefix; this is deliberately not cached
// because diagnostics are the only frequent caller of Position.
type Cursor struct {
	src []byte
	pos int
}

// NewCursor wraps src for lexing. src is not copied or mutated.
func NewCursor(src []byte) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// SetPos rewinds or fast-forwards the cursor to an absolute byte offset.
func (c *Cursor) SetPos(pos int) { c.pos = pos }

// Eof reports whether the cursor has consumed the whole input.
func (c *Cursor) Eof() bool { return c.pos >= len(c.src) }

// Len returns the total length of the source in bytes.
func (c *Cursor) Len() int { return len(c.src) }

// Peek returns the byte at the cursor without advancing, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.Eof() {
		return 0
	}
	return c.src[c.pos]
}

// PeekAt returns the byte offset bytes ahead of the cursor, or 0 past EOF.
func (c *Cursor) PeekAt(offset int) byte {
	p := c.pos + offset
	if p < 0 || p >= len(c.src) {
		return 0
	}
	return c.src[p]
}

// PeekRune decodes the rune at the cursor without advancing, returning its
// width in bytes (0 at EOF).
func (c *Cursor) PeekRune() (rune, int) {
	if c.Eof() {
		return 0, 0
	}
	r, size := utf8.DecodeRune(c.src[c.pos:])
	return r, size
}

// Advance consumes and returns one byte, or 0 at EOF.
func (c *Cursor) Advance() byte {
	if c.Eof() {
		return 0
	}
	b := c.src[c.pos]
	c.pos++
	return b
}

// AdvanceRune consumes and returns one decoded rune, or 0 at EOF.
func (c *Cursor) AdvanceRune() rune {
	r, size := c.PeekRune()
	c.pos += size
	return r
}

// StartsWith reports whether the unconsumed input begins with s, without
// advancing.
func (c *Cursor) StartsWith(s string) bool {
	if c.pos+len(s) > len(c.src) {
		return false
	}
	return string(c.src[c.pos:c.pos+len(s)]) == s
}

// Consume advances past s and returns true if the unconsumed input begins
// with s; otherwise it leaves the cursor untouched and returns false.
func (c *Cursor) Consume(s string) bool {
	if !c.StartsWith(s) {
		return false
	}
	c.pos += len(s)
	return true
}

// Slice returns the raw source bytes in [start, end) as a string.
func (c *Cursor) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(c.src) {
		end = len(c.src)
	}
	if start >= end {
		return ""
	}
	return string(c.src[start:end])
}

// Position computes the zero-based (line, column, offset) for the cursor's
// current byte offset by scanning the prefix of the source up to it.
func (c *Cursor) Position() diag.Position {
	return c.PositionAt(c.pos)
}

// PositionAt computes the position for an arbitrary byte offset into this
// cursor's source.
func (c *Cursor) PositionAt(offset int) diag.Position {
	if offset > len(c.src) {
		offset = len(c.src)
	}
	line, col := 0, 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(c.src[i:])
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		i += size
	}
	return diag.Position{Line: line, Column: col, Offset: offset}
}

// Span builds a Span from the given byte offsets using this cursor's
// source for position computation.
func (c *Cursor) Span(begin, end int) diag.Span {
	return diag.Span{Begin: c.PositionAt(begin), End: c.PositionAt(end)}
}
