package logging

import "context"

type nopLogger struct{}

// Nop returns a Logger that discards everything. Handy in tests and as a
// default when a caller passes nil.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any) {}
func (nopLogger) Warn(context.Context, string, ...any) {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) Logger { return nopLogger{} }
