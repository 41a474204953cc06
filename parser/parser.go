// Package parser implements MOTLY's recursive-descent, single-pass parser:
// it drives a lexer.Cursor directly (there is no separate tokenization
// pass) and produces a []ast.Statement, or aborts on the first syntax
// error.
package parser

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/malloydata/motly/ast"
	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/lexer"
)

// Parser holds the cursor driving a single parse. It is not safe for
// concurrent use and is discarded after one Parse call.
type Parser struct {
	c      *lexer.Cursor
	logger *slog.Logger
}

// New creates a Parser over src. MOTLY_DEBUG_PARSER, if set, enables a
// default slog debug logger to stderr.
func New(src []byte, opts ...Option) *Parser {
	p := &Parser{c: lexer.NewCursor(src)}
	if os.Getenv("MOTLY_DEBUG_PARSER") != "" {
		p.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram parses src into a statement list. On the first syntax error
// it returns a single diag.Diagnostic describing it (the parser aborts
// rather than attempting recovery; only syntax errors abort the pipeline);
// semantic checking happens downstream in interp, ref, and schema.
func ParseProgram(src []byte, opts ...Option) ([]ast.Statement, *diag.Diagnostic) {
	p := New(src, opts...)
	stmts, err := p.Parse()
	if err != nil {
		d := p.toDiagnostic(err)
		return nil, &d
	}
	return stmts, nil
}

// Parse runs the parser to completion.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for {
		lexer.SkipStatementTrivia(p.c)
		if p.c.Eof() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if p.logger != nil {
			p.logger.Debug("parsed statement", "kind", stmt.Kind.String(), "path", fmt.Sprint(stmt.Path))
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) toDiagnostic(err error) diag.Diagnostic {
	if le, ok := err.(*lexer.Error); ok {
		return diag.Syntax(p.c.Span(le.Begin, le.End), "%s", le.Msg)
	}
	pos := p.c.Pos()
	return diag.Syntax(p.c.Span(pos, pos), "%s", err.Error())
}

func (p *Parser) errf(begin, end int, format string, args ...any) error {
	return &lexer.Error{Begin: begin, End: end, Msg: fmt.Sprintf(format, args...)}
}

// parseStatement parses one statement at a fresh statement position.
// Trivia before it must already have been skipped by the caller.
func (p *Parser) parseStatement() (ast.Statement, error) {
	if p.c.Peek() == '-' {
		p.c.Advance()
		if p.c.Consume("...") {
			return ast.Statement{Kind: ast.ClearAll}, nil
		}
		path, err := p.parsePath()
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.Define, Path: path, Deleted: true}, nil
	}

	path, err := p.parsePath()
	if err != nil {
		return ast.Statement{}, err
	}

	lexer.SkipTrivia(p.c)
	switch {
	case p.c.Consume(":="):
		val, err := p.parseValue()
		if err != nil {
			return ast.Statement{}, err
		}
		props, err := p.parseOptionalBlock()
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.AssignBoth, Path: path, Value: val, Properties: props}, nil

	case p.c.Peek() == '=':
		eqPos := p.c.Pos()
		p.c.Advance()
		lexer.SkipTrivia(p.c)
		if p.c.Peek() == '{' {
			return ast.Statement{}, p.errf(eqPos, p.c.Pos()+1,
				"'=' cannot be followed directly by a '{' block; use ':' for property-only operations")
		}
		val, err := p.parseValue()
		if err != nil {
			return ast.Statement{}, err
		}
		props, err := p.parseOptionalBlock()
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.SetValue, Path: path, Value: val, Properties: props}, nil

	case p.c.Peek() == ':':
		p.c.Advance()
		lexer.SkipTrivia(p.c)
		block, err := p.parseBlock()
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.ReplaceProperties, Path: path, Properties: block}, nil

	case p.c.Peek() == '{':
		block, err := p.parseBlock()
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.MergeProperties, Path: path, Properties: block}, nil

	default:
		return ast.Statement{Kind: ast.Define, Path: path, Deleted: false}, nil
	}
}

// parsePath parses a non-empty dotted sequence of identifier segments.
func (p *Parser) parsePath() ([]string, error) {
	seg, err := p.parsePathSegment()
	if err != nil {
		return nil, err
	}
	path := []string{seg}
	for {
		save := p.c.Pos()
		lexer.SkipTrivia(p.c)
		if p.c.Peek() != '.' {
			p.c.SetPos(save)
			break
		}
		p.c.Advance()
		lexer.SkipTrivia(p.c)
		seg, err := p.parsePathSegment()
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}

func (p *Parser) parsePathSegment() (string, error) {
	lexer.SkipTrivia(p.c)
	if p.c.Peek() == '`' {
		s, err := lexer.DecodeBacktick(p.c)
		if err != nil {
			return "", promote(err)
		}
		return s, nil
	}
	start := p.c.Pos()
	name := lexer.ReadIdentRun(p.c)
	if name == "" {
		return "", p.errf(start, p.c.Pos()+1, "expected a property name")
	}
	return name, nil
}

// parseOptionalBlock parses a trailing "{...}" block if one is present,
// returning nil (no error) if it is absent.
func (p *Parser) parseOptionalBlock() ([]ast.Statement, error) {
	save := p.c.Pos()
	lexer.SkipTrivia(p.c)
	if p.c.Peek() != '{' {
		p.c.SetPos(save)
		return nil, nil
	}
	return p.parseBlock()
}

// parseBlock parses a "{...}" block. The cursor must be at '{'.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if !p.c.Consume("{") {
		return nil, p.errf(p.c.Pos(), p.c.Pos()+1, "expected '{'")
	}
	var stmts []ast.Statement
	for {
		lexer.SkipStatementTrivia(p.c)
		if p.c.Peek() == '}' {
			p.c.Advance()
			break
		}
		if p.c.Eof() {
			return nil, p.errf(p.c.Pos(), p.c.Pos(), "unterminated block, expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func promote(err error) error { return err }
