package parser

import "log/slog"

// Option configures a Parser. Mirrors the functional-option pattern the
// pack's own parser package uses for its telemetry/debug knobs
// (runtime/parser/options.go's ParserOpt); MOTLY's parser only needs a
// debug logger, so that's the only knob exposed.
type Option func(*Parser)

// WithLogger attaches a structured logger used to trace statement
// boundaries at slog.LevelDebug. Passing nil disables tracing.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}
