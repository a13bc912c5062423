// Package logging provides the slog conventions shared across fathom.
//
// Loggers are dependency-injected: main() builds the base logger and every
// component scopes its own copy at construction time. Components never call
// slog.SetDefault or reach for a global logger, and a nil logger always
// degrades to a silent one so library code never has to nil-check.
package logging

import (
	"context"
	"log/slog"
)

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger whose output goes nowhere.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Scope returns logger annotated with a component attribute, substituting a
// discard logger when logger is nil:
//
//	e := &Engine{logger: logging.Scope(logger, "query")}
func Scope(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger.With("component", component)
}
