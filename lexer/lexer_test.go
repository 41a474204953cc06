package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malloydata/motly/lexer"
)

func TestDecodeDoubleQuotedEscapes(t *testing.T) {
	c := lexer.NewCursor([]byte(`"a\nbA"`))
	s, err := lexer.DecodeDoubleQuoted(c)
	require.NoError(t, err)
	require.Equal(t, "a\nbA", s)
	require.True(t, c.Eof())
}

func TestDecodeSingleRawKeepsBackslashes(t *testing.T) {
	c := lexer.NewCursor([]byte(`'a\nb'`))
	s, err := lexer.DecodeSingleRaw(c)
	require.NoError(t, err)
	require.Equal(t, `a\nb`, s)
}

func TestDecodeHeredocDedents(t *testing.T) {
	src := "<<<\n    line one\n    line two\n      indented\n>>>"
	c := lexer.NewCursor([]byte(src))
	c.Consume("<<<")
	s, err := lexer.DecodeHeredoc(c)
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\n  indented\n", s)
}

func TestDecodeHeredocSkipsBlankLinesWhenMeasuringIndent(t *testing.T) {
	src := "<<<\n\n    line one\n>>>"
	c := lexer.NewCursor([]byte(src))
	c.Consume("<<<")
	s, err := lexer.DecodeHeredoc(c)
	require.NoError(t, err)
	require.Equal(t, "\nline one\n", s)
}

func TestTryReadNumberRejectsIdentifierContinuation(t *testing.T) {
	c := lexer.NewCursor([]byte("123abc"))
	_, ok := lexer.TryReadNumber(c)
	require.False(t, ok)
	require.Equal(t, 0, c.Pos())
}

func TestTryReadNumberAcceptsPlainNumber(t *testing.T) {
	c := lexer.NewCursor([]byte("-12.5e3 rest"))
	text, ok := lexer.TryReadNumber(c)
	require.True(t, ok)
	require.Equal(t, "-12.5e3", text)
}

func TestReadDateParsesDateTimeWithZone(t *testing.T) {
	c := lexer.NewCursor([]byte("2024-03-01T10:15:30.5Z"))
	d, err := lexer.ReadDate(c, 0)
	require.NoError(t, err)
	require.Equal(t, 2024, d.Year)
	require.True(t, d.HasZone)
	require.True(t, d.ZoneIsUTC)
	require.Equal(t, "2024-03-01T10:15:30.5Z", d.Raw)
}

func TestReadDateEpochSecondsAccountsForZoneOffset(t *testing.T) {
	c1 := lexer.NewCursor([]byte("2024-01-01T00:00:00Z"))
	d1, err := lexer.ReadDate(c1, 0)
	require.NoError(t, err)

	c2 := lexer.NewCursor([]byte("2024-01-01T01:00:00+01:00"))
	d2, err := lexer.ReadDate(c2, 0)
	require.NoError(t, err)

	require.Equal(t, d1.EpochSeconds(), d2.EpochSeconds())
}

func TestReadReferenceParsesUpsAndIndex(t *testing.T) {
	c := lexer.NewCursor([]byte("^^a.b[3]"))
	ref, err := lexer.ReadReference(c, 0)
	require.NoError(t, err)
	require.Equal(t, 2, ref.Ups)
	require.Equal(t, []lexer.PathSegment{{Name: "a"}, {Name: "b", HasIndex: true, Index: 3}}, ref.Segments)
	require.Equal(t, "$^^a.b[3]", ref.String())
}
