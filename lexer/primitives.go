package lexer

// ASCII character classification tables: precomputed [128]bool lookup
// arrays for the hot path, with a fallback to explicit Unicode range
// checks above ASCII.
var (
	isWhitespaceASCII [128]bool
	isIdentCharASCII  [128]bool
	isDigitASCII      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespaceASCII[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		isDigitASCII[i] = ch >= '0' && ch <= '9'
		isIdentCharASCII[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') ||
			isDigitASCII[i] || ch == '_'
	}
}

// IsIdentChar reports whether r is part of MOTLY's bare-identifier character
// class: [A-Za-z0-9_] plus the Latin-Extended and Latin-Extended-Additional
// Unicode blocks.
func IsIdentChar(r rune) bool {
	if r < 128 {
		return isIdentCharASCII[r]
	}
	return (r >= 0x00C0 && r <= 0x024F) || (r >= 0x1E00 && r <= 0x1EFF)
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// SkipTrivia skips whitespace and "# ... \n" line comments. It is the
// trivia skipper used between every token regardless of statement-list
// position.
func SkipTrivia(c *Cursor) {
	for {
		switch c.Peek() {
		case ' ', '\t', '\r', '\n':
			c.Advance()
		case '#':
			for !c.Eof() && c.Peek() != '\n' {
				c.Advance()
			}
		default:
			return
		}
	}
}

// SkipStatementTrivia skips whitespace, line comments, and commas — used
// between statements at the top level and inside "{...}" blocks, where
// commas are optional statement separators rather than syntax.
func SkipStatementTrivia(c *Cursor) {
	for {
		switch c.Peek() {
		case ' ', '\t', '\r', '\n', ',':
			c.Advance()
		case '#':
			for !c.Eof() && c.Peek() != '\n' {
				c.Advance()
			}
		default:
			return
		}
	}
}

// ReadIdentRun consumes the maximal run of IsIdentChar runes at the cursor
// and returns the decoded text. Returns "" if the cursor isn't positioned
// at an identifier character.
func ReadIdentRun(c *Cursor) string {
	start := c.Pos()
	for {
		r, size := c.PeekRune()
		if size == 0 || !IsIdentChar(r) {
			break
		}
		c.pos += size
	}
	return c.Slice(start, c.Pos())
}
