package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/session"
	"github.com/malloydata/motly/tree"
)

func TestParseAccumulatesValue(t *testing.T) {
	s := session.New()
	diags, err := s.Parse([]byte(`a = 1`))
	require.NoError(t, err)
	require.Empty(t, diags)

	v, err := s.GetValue()
	require.NoError(t, err)
	child, ok := v.Properties.Get("a")
	require.True(t, ok)
	require.Equal(t, tree.Number(1), child.Value)
}

func TestParseSyntaxErrorReportsWithoutMutating(t *testing.T) {
	s := session.New()
	diags, err := s.Parse([]byte(`a = `))
	require.NoError(t, err)
	require.Len(t, diags, 1)

	v, _ := s.GetValue()
	require.Zero(t, v.Properties.Len())
}

func TestResetKeepsSchema(t *testing.T) {
	s := session.New()
	_, err := s.Parse([]byte(`a = 1`))
	require.NoError(t, err)
	_, err = s.ParseSchema([]byte(`Required.a = number`))
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	v, err := s.GetValue()
	require.NoError(t, err)
	require.Zero(t, v.Properties.Len())

	diags, err := s.ValidateSchema()
	require.NoError(t, err)
	require.Len(t, diags, 1) // missing-required a
}

func TestValidateSchemaWithNoneInstalledIsNoop(t *testing.T) {
	s := session.New()
	diags, err := s.ValidateSchema()
	require.NoError(t, err)
	require.Empty(t, diags)
}

func TestDisposeRejectsFurtherCalls(t *testing.T) {
	s := session.New()
	s.Dispose()

	_, err := s.Parse([]byte(`a = 1`))
	require.ErrorIs(t, err, session.ErrDisposed)

	_, err = s.GetValue()
	require.ErrorIs(t, err, session.ErrDisposed)

	s.Dispose() // idempotent
}

func TestValidateReferencesCatchesUnresolved(t *testing.T) {
	s := session.New()
	_, err := s.Parse([]byte(`a = $nope`))
	require.NoError(t, err)

	diags, err := s.ValidateReferences()
	require.NoError(t, err)
	require.Len(t, diags, 1)
}
