package lexer

import (
	"strings"
)

// Error is a lexical decoding failure, with the byte-offset span that
// produced it. The parser wraps these into diag.Diagnostic values with
// positions resolved against its own cursor.
type Error struct {
	Begin, End int
	Msg        string
}

func (e *Error) Error() string { return e.Msg }

func lexErr(begin, end int, msg string) *Error {
	return &Error{Begin: begin, End: end, Msg: msg}
}

// decodeEscapes interprets \b \f \n \r \t \uXXXX and \<c> (unknown <c> ->
// literal <c>) over body, the content already extracted between a pair of
// escaping-aware delimiters. Used by the double-quoted, triple-double, and
// backtick flavours, which all share this escape table.
func decodeEscapes(body string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(body))
	i := 0
	for i < len(body) {
		ch := body[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			i++
			continue
		}
		if i+1 >= len(body) {
			sb.WriteByte('\\')
			i++
			continue
		}
		esc := body[i+1]
		switch esc {
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'u':
			if i+6 > len(body) {
				return "", lexErr(i, len(body), "incomplete \\u escape")
			}
			hex := body[i+2 : i+6]
			var code rune
			for _, h := range hex {
				var v rune
				switch {
				case h >= '0' && h <= '9':
					v = h - '0'
				case h >= 'a' && h <= 'f':
					v = h - 'a' + 10
				case h >= 'A' && h <= 'F':
					v = h - 'A' + 10
				default:
					return "", lexErr(i, i+6, "invalid \\u escape digit")
				}
				code = code*16 + v
			}
			sb.WriteRune(code)
			i += 6
		default:
			// Unknown escape: the backslash is dropped, the character is literal.
			sb.WriteByte(esc)
			i += 2
		}
	}
	return sb.String(), nil
}

// scanDelimited consumes bytes from c starting right after the opening
// delimiter, up to (and past) the closing delimiter byte, honoring
// backslash-escaping of the delimiter for scan purposes (this applies to
// raw flavours too: \<c> never ends the string, even though it is kept
// literally by the decoder). It returns the raw body (without delimiters).
func scanDelimited(c *Cursor, delim byte) (body string, err error) {
	start := c.Pos()
	for {
		if c.Eof() {
			return "", lexErr(start, c.Pos(), "unterminated string literal")
		}
		ch := c.Peek()
		if ch == '\\' {
			c.Advance()
			if !c.Eof() {
				c.Advance()
			}
			continue
		}
		if ch == delim {
			body = c.Slice(start, c.Pos())
			c.Advance()
			return body, nil
		}
		if ch == '\n' {
			return "", lexErr(start, c.Pos(), "unterminated string literal")
		}
		c.Advance()
	}
}

// DecodeDoubleQuoted decodes a `"..."` literal. c must be positioned at the
// opening quote.
func DecodeDoubleQuoted(c *Cursor) (string, error) {
	if !c.Consume("\"") {
		return "", lexErr(c.Pos(), c.Pos(), "expected '\"'")
	}
	body, err := scanDelimited(c, '"')
	if err != nil {
		return "", err
	}
	return decodeEscapes(body)
}

// DecodeBacktick decodes a “ `...` “ literal, used for identifier
// segments. Same escape table as double-quoted.
func DecodeBacktick(c *Cursor) (string, error) {
	if !c.Consume("`") {
		return "", lexErr(c.Pos(), c.Pos(), "expected '`'")
	}
	body, err := scanDelimited(c, '`')
	if err != nil {
		return "", err
	}
	return decodeEscapes(body)
}

// DecodeSingleRaw decodes a `'...'` literal. \<c> is kept as two literal
// characters; it only prevents that occurrence of ' from closing the
// string.
func DecodeSingleRaw(c *Cursor) (string, error) {
	if !c.Consume("'") {
		return "", lexErr(c.Pos(), c.Pos(), "expected \"'\"")
	}
	body, err := scanDelimited(c, '\'')
	if err != nil {
		return "", err
	}
	return body, nil
}

// scanTriple consumes bytes from c up to (and past) the closing 3-byte
// delimiter, returning the raw multiline body. c must be positioned right
// after the opening delimiter.
func scanTriple(c *Cursor, delim byte) (string, error) {
	closer := string([]byte{delim, delim, delim})
	start := c.Pos()
	for {
		if c.Eof() {
			return "", lexErr(start, c.Pos(), "unterminated triple-quoted string")
		}
		if c.StartsWith(closer) {
			body := c.Slice(start, c.Pos())
			c.Consume(closer)
			return body, nil
		}
		if c.Peek() == '\\' {
			c.Advance()
			if !c.Eof() {
				c.Advance()
			}
			continue
		}
		c.Advance()
	}
}

// DecodeTripleDouble decodes a `"""..."""` literal with double-quoted
// escape semantics, multiline.
func DecodeTripleDouble(c *Cursor) (string, error) {
	if !c.Consume(`"""`) {
		return "", lexErr(c.Pos(), c.Pos(), `expected '"""'`)
	}
	body, err := scanTriple(c, '"')
	if err != nil {
		return "", err
	}
	return decodeEscapes(body)
}

// DecodeTripleSingleRaw decodes a `”'...”'` literal, raw and multiline.
func DecodeTripleSingleRaw(c *Cursor) (string, error) {
	if !c.Consume(`'''`) {
		return "", lexErr(c.Pos(), c.Pos(), "expected \"'''\"")
	}
	body, err := scanTriple(c, '\'')
	if err != nil {
		return "", err
	}
	return body, nil
}

// DecodeHeredoc decodes a `<<< ... >>>` raw, dedented, multiline literal.
// c must be positioned right after the opening "<<<".
func DecodeHeredoc(c *Cursor) (string, error) {
	start := c.Pos()
	for c.Peek() == ' ' || c.Peek() == '\t' {
		c.Advance()
	}
	if c.Peek() != '\n' {
		return "", lexErr(start, c.Pos(), "expected newline after '<<<'")
	}
	c.Advance() // consume the newline

	var rawLines []string
	for {
		if c.Eof() {
			return "", lexErr(start, c.Pos(), "unterminated heredoc, expected '>>>'")
		}
		lineStart := c.Pos()
		for !c.Eof() && c.Peek() != '\n' {
			c.Advance()
		}
		line := c.Slice(lineStart, c.Pos())
		if !c.Eof() {
			c.Advance() // consume newline
		}
		if strings.TrimSpace(line) == ">>>" {
			return dedentHeredoc(rawLines), nil
		}
		rawLines = append(rawLines, line)
	}
}

func dedentHeredoc(lines []string) string {
	stripWidth := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stripWidth = leadingIndent(line)
		break
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		if len(line) < stripWidth {
			out[i] = line
			continue
		}
		out[i] = line[stripWidth:]
	}
	return strings.Join(out, "\n") + "\n"
}

func leadingIndent(line string) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}
