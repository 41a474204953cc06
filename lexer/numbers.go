package lexer

// matchNumber returns the byte length of a number literal matching
// `[-]?(digits(.digits)?|.digits)(e[+-]?digits)?` starting at offset in
// src, or 0 if no match starts there.
func matchNumber(src []byte, offset int) int {
	i := offset
	n := len(src)

	if i < n && src[i] == '-' {
		i++
	}

	digitsStart := i
	for i < n && isDigitASCII[src[i]] {
		i++
	}
	hasIntDigits := i > digitsStart

	hasDot := false
	if i < n && src[i] == '.' {
		dotPos := i
		j := i + 1
		fracStart := j
		for j < n && isDigitASCII[src[j]] {
			j++
		}
		if j > fracStart {
			hasDot = true
			i = j
		} else if !hasIntDigits {
			// Lone "." with no digits on either side: no match at all.
			_ = dotPos
		}
	}

	if !hasIntDigits && !hasDot {
		return 0
	}

	// Optional exponent.
	if i < n && src[i] == 'e' {
		j := i + 1
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		expStart := j
		for j < n && isDigitASCII[src[j]] {
			j++
		}
		if j > expStart {
			i = j
		}
		// If there's no exponent digits, the 'e' is left unconsumed
		// (it will become part of a following bare token, if any).
	}

	return i - offset
}

// TryReadNumber attempts the number-vs-bare tie-break: a candidate numeric
// token is only accepted as a number if it is not
// immediately followed by a bare-identifier continuation character. On
// success it consumes the token and returns its source text; on failure it
// leaves the cursor untouched.
func TryReadNumber(c *Cursor) (string, bool) {
	matchLen := matchNumber(c.src, c.pos)
	if matchLen == 0 {
		return "", false
	}
	r, _ := decodeRuneAt(c.src, c.pos+matchLen)
	if IsIdentChar(r) {
		return "", false
	}
	text := c.Slice(c.pos, c.pos+matchLen)
	c.pos += matchLen
	return text, true
}

func decodeRuneAt(src []byte, offset int) (rune, int) {
	if offset < 0 || offset >= len(src) {
		return 0, 0
	}
	b := src[offset]
	if b < 128 {
		return rune(b), 1
	}
	tmp := NewCursor(src)
	tmp.pos = offset
	return tmp.PeekRune()
}
