package logging

import "context"

// Default is the package level Logger, writing to the standard output.
var Default Logger

func Debug(ctx context.Context, msg string, ds ...Detail) {
	Default.Debug(ctx, msg, ds...)
}

func Info(ctx context.Context, msg string, ds ...Detail) {
	Default.Info(ctx, msg, ds...)
}

func Warn(ctx context.Context, msg string, ds ...Detail) {
	Default.Warn(ctx, msg, ds...)
}

func Error(ctx context.Context, msg string, ds ...Detail) {
	Default.Error(ctx, msg, ds...)
}

func Fatal(ctx context.Context, msg string, ds ...Detail) {
	Default.Fatal(ctx, msg, ds...)
}

// Or returns l, or the Default Logger when l is nil.
func Or(l *Logger) *Logger {
	if l != nil {
		return l
	}
	return &Default
}
