// Package session provides the public façade over one owned tree + one
// owned schema: Parse, ParseSchema, Reset, GetValue, ValidateSchema,
// ValidateReferences, Dispose.
package session

import (
	"errors"

	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/interp"
	"github.com/malloydata/motly/parser"
	"github.com/malloydata/motly/ref"
	"github.com/malloydata/motly/schema"
	"github.com/malloydata/motly/tree"
)

// ErrDisposed is returned by every method once Dispose has been called.
var ErrDisposed = errors.New("motly: session is disposed")

// Session owns exactly one value tree and at most one schema tree.
// It is not safe for concurrent use: callers must serialize access to
// a given Session.
type Session struct {
	root       *tree.Node
	schemaRoot *tree.Node
	disposed   bool
}

// New returns a fresh session with an empty value tree and no schema.
func New() *Session {
	return &Session{root: tree.Root()}
}

// Parse applies src to the session's tree and returns the accumulated
// diagnostics. A syntax error aborts parsing and is returned as the
// sole diagnostic, with no statements applied.
func (s *Session) Parse(src []byte) ([]diag.Diagnostic, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	stmts, syntaxErr := parser.ParseProgram(src)
	if syntaxErr != nil {
		return []diag.Diagnostic{*syntaxErr}, nil
	}
	return interp.Apply(s.root, stmts), nil
}

// ParseSchema parses src as a schema tree and installs it, replacing any
// previously installed schema.
func (s *Session) ParseSchema(src []byte) ([]diag.Diagnostic, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	stmts, syntaxErr := parser.ParseProgram(src)
	if syntaxErr != nil {
		return []diag.Diagnostic{*syntaxErr}, nil
	}
	root := tree.Root()
	diags := interp.Apply(root, stmts)
	s.schemaRoot = root
	return diags, nil
}

// Reset discards the value tree, keeping the installed schema (if any).
func (s *Session) Reset() error {
	if s.disposed {
		return ErrDisposed
	}
	s.root = tree.Root()
	return nil
}

// GetValue returns a deep copy of the value tree, so callers cannot
// mutate session state through the returned node.
func (s *Session) GetValue() (*tree.Node, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	return s.root.DeepCopy(), nil
}

// ValidateSchema runs schema validation against the installed schema.
// If no schema is installed it returns an empty result.
func (s *Session) ValidateSchema() ([]diag.Diagnostic, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if s.schemaRoot == nil {
		return nil, nil
	}
	return schema.Validate(s.root, s.schemaRoot), nil
}

// ValidateReferences runs the reference-resolution pass over the value
// tree.
func (s *Session) ValidateReferences() ([]diag.Diagnostic, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	return ref.Resolve(s.root), nil
}

// Dispose marks the session dead. Idempotent: calling it more than once
// is a no-op.
func (s *Session) Dispose() {
	s.disposed = true
}
