package parser

import (
	"strconv"

	"github.com/malloydata/motly/lexer"
	"github.com/malloydata/motly/tree"
)

// parseValue parses one value: array, heredoc, @-form, reference, quoted
// string (any flavour but backtick, which is identifier-only), or
// number/bare-string.
func (p *Parser) parseValue() (tree.Value, error) {
	lexer.SkipTrivia(p.c)
	switch {
	case p.c.Peek() == '[':
		return p.parseArray()
	case p.c.StartsWith("<<<"):
		p.c.Consume("<<<")
		s, err := lexer.DecodeHeredoc(p.c)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.String(s), nil
	case p.c.Peek() == '@':
		return p.parseAtForm()
	case p.c.Peek() == '$':
		return p.parseReferenceValue()
	case p.c.StartsWith(`"""`):
		s, err := lexer.DecodeTripleDouble(p.c)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.String(s), nil
	case p.c.StartsWith(`'''`):
		s, err := lexer.DecodeTripleSingleRaw(p.c)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.String(s), nil
	case p.c.Peek() == '"':
		s, err := lexer.DecodeDoubleQuoted(p.c)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.String(s), nil
	case p.c.Peek() == '\'':
		s, err := lexer.DecodeSingleRaw(p.c)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.String(s), nil
	default:
		return p.parseNumberOrBare()
	}
}

func (p *Parser) parseArray() (tree.Value, error) {
	start := p.c.Pos()
	p.c.Advance() // consume '['
	var elems []*tree.Node
	for {
		lexer.SkipTrivia(p.c)
		if p.c.Peek() == ']' {
			p.c.Advance()
			return tree.Array(elems), nil
		}
		if p.c.Eof() {
			return tree.Value{}, p.errf(start, p.c.Pos(), "unterminated array, expected ']'")
		}
		v, err := p.parseValue()
		if err != nil {
			return tree.Value{}, err
		}
		elems = append(elems, &tree.Node{Value: v, Properties: tree.NewProperties()})

		lexer.SkipTrivia(p.c)
		switch p.c.Peek() {
		case ']':
			p.c.Advance()
			return tree.Array(elems), nil
		case ',':
			p.c.Advance()
			lexer.SkipTrivia(p.c)
			if p.c.Peek() == ']' { // trailing comma
				p.c.Advance()
				return tree.Array(elems), nil
			}
		default:
			return tree.Value{}, p.errf(p.c.Pos(), p.c.Pos()+1, "expected ',' or ']' in array")
		}
	}
}

// parseAtForm parses @true, @false, @none, @env.NAME, or a date literal.
// The cursor is positioned at '@'.
func (p *Parser) parseAtForm() (tree.Value, error) {
	atPos := p.c.Pos()
	p.c.Advance() // consume '@'

	if r, _ := p.c.PeekRune(); lexer.IsDigit(r) {
		d, err := lexer.ReadDate(p.c, atPos)
		if err != nil {
			return tree.Value{}, promote(err)
		}
		return tree.DateValue(d), nil
	}

	word := lexer.ReadIdentRun(p.c)
	switch word {
	case "true":
		return tree.Bool(true), nil
	case "false":
		return tree.Bool(false), nil
	case "none":
		return tree.Absent(), nil
	case "env":
		if !p.c.Consume(".") {
			return tree.Value{}, p.errf(atPos, p.c.Pos(), "expected '.' after @env")
		}
		name := lexer.ReadIdentRun(p.c)
		if name == "" {
			return tree.Value{}, p.errf(atPos, p.c.Pos(), "expected a name after @env.")
		}
		return tree.Env(name), nil
	default:
		return tree.Value{}, p.errf(atPos, p.c.Pos(), "unrecognized '@%s' form", word)
	}
}

func (p *Parser) parseReferenceValue() (tree.Value, error) {
	dollarPos := p.c.Pos()
	p.c.Advance() // consume '$'
	ref, err := lexer.ReadReference(p.c, dollarPos)
	if err != nil {
		return tree.Value{}, promote(err)
	}
	return tree.Link(ref), nil
}

// parseNumberOrBare applies the number-vs-bare tie-break.
func (p *Parser) parseNumberOrBare() (tree.Value, error) {
	start := p.c.Pos()
	if text, ok := lexer.TryReadNumber(p.c); ok {
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return tree.Value{}, p.errf(start, p.c.Pos(), "invalid number literal %q", text)
		}
		return tree.Number(n), nil
	}

	if p.c.Peek() == '-' {
		return tree.Value{}, p.errf(start, p.c.Pos()+1, "'-' with no following digit is not a valid value")
	}

	word := lexer.ReadIdentRun(p.c)
	if word == "" {
		return tree.Value{}, p.errf(start, p.c.Pos()+1, "expected a value")
	}
	return tree.String(word), nil
}
