// Package logging provides structured logging.
// Details can be attached to a context, so every log entry made with that context carries them.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"go.llib.dev/testcase/clock"

	"go.llib.dev/iterateur/pkg/zerokit"
)

type Logger struct {
	Out io.Writer

	MessageKey   string
	LevelKey     string
	TimestampKey string

	// Level is the logging level.
	// The default Level is LevelInfo, or the level set in the LOG_LEVEL environment variable.
	Level Level
	// Separator is used to separate log entries from each other.
	// By default, it is the line separator of the current operating system.
	Separator string
	// MarshalFunc is used to serialise the log entry.
	// When nil it defaults to JSON format.
	MarshalFunc func(any) ([]byte, error)
	// KeyFormatter formats the keys of the logging fields.
	KeyFormatter func(string) string
	// Hijack takes over the logging.
	// Instead of writing to Out, the log entry is passed to the Hijack function.
	Hijack HijackFunc
	// TestingTB marks the logging methods as test helpers,
	// so log entries made during a test point to the caller.
	TestingTB testingTB

	outLock sync.Mutex
}

type HijackFunc func(ctx context.Context, level Level, msg string, fields Fields)

func (l *Logger) Debug(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelDebug, msg, ds...)
}

func (l *Logger) Info(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelInfo, msg, ds...)
}

func (l *Logger) Warn(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelWarn, msg, ds...)
}

func (l *Logger) Error(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelError, msg, ds...)
}

func (l *Logger) Fatal(ctx context.Context, msg string, ds ...Detail) {
	l.tb().Helper()
	l.Log(ctx, LevelFatal, msg, ds...)
}

func (l *Logger) Log(ctx context.Context, level Level, msg string, ds ...Detail) {
	l.tb().Helper()
	if !isLevelEnabled(l.getLevel(), level) {
		return
	}
	if l.Hijack != nil {
		l.Hijack(ctx, level, msg, Fields(l.toDetails(ctx, ds)))
		return
	}
	_ = l.logTo(ctx, level, msg, ds)
}

func (l *Logger) logTo(ctx context.Context, level Level, msg string, ds []Detail) error {
	e := l.toDetails(ctx, ds)
	e[l.getLevelKey()] = level
	e[l.getMessageKey()] = msg
	e[l.getTimestampKey()] = clock.Now().Format(time.RFC3339)
	bs, err := l.marshalFunc()(e)
	if err != nil {
		return err
	}
	l.outLock.Lock()
	defer l.outLock.Unlock()
	_, err = l.writer().Write(append(bs, []byte(l.separator())...))
	return err
}

func (l *Logger) toDetails(ctx context.Context, ds []Detail) entry {
	e := make(entry)
	for _, d := range getLoggingDetailsFromContext(ctx) {
		d.addTo(l, e)
	}
	for _, d := range ds {
		if d != nil {
			d.addTo(l, e)
		}
	}
	return e
}

func (l *Logger) writer() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l *Logger) marshalFunc() func(any) ([]byte, error) {
	if l.MarshalFunc != nil {
		return l.MarshalFunc
	}
	return json.Marshal
}

func (l *Logger) formatKey(key string) string {
	if l.KeyFormatter != nil {
		return l.KeyFormatter(key)
	}
	return key
}

func (l *Logger) coalesceKey(key, defaultKey string) string {
	return l.formatKey(zerokit.Coalesce(key, defaultKey))
}

func (l *Logger) getTimestampKey() string { return l.coalesceKey(l.TimestampKey, "timestamp") }

func (l *Logger) getMessageKey() string { return l.coalesceKey(l.MessageKey, "message") }

func (l *Logger) getLevelKey() string { return l.coalesceKey(l.LevelKey, "level") }

func (l *Logger) separator() string {
	if l.Separator != "" {
		return l.Separator
	}
	if os.PathSeparator == '\\' {
		return "\r\n"
	}
	return "\n"
}

func (l *Logger) getLevel() Level {
	if len(l.Level) == 0 {
		return defaultLevel
	}
	return l.Level
}

// Clone returns a copy of the Logger with the same settings.
func (l *Logger) Clone() *Logger {
	return &Logger{
		Out:          l.Out,
		Level:        l.Level,
		Separator:    l.Separator,
		MessageKey:   l.MessageKey,
		LevelKey:     l.LevelKey,
		TimestampKey: l.TimestampKey,
		MarshalFunc:  l.MarshalFunc,
		KeyFormatter: l.KeyFormatter,
		Hijack:       l.Hijack,
		TestingTB:    l.TestingTB,
	}
}

type testingTB interface {
	Helper()
	Cleanup(func())
	Log(args ...any)
}

func (l *Logger) tb() testingTB {
	if l.TestingTB != nil {
		return l.TestingTB
	}
	return nullTestingTB{}
}

type nullTestingTB struct{}

func (nullTestingTB) Helper() {}

func (nullTestingTB) Cleanup(func()) {}

func (nullTestingTB) Log(...any) {}

// Stub returns a debug level Logger and the output where its log entries are recorded.
func Stub(tb testingTB) (*Logger, StubOutput) {
	buf := &stubOutput{}
	l := &Logger{
		TestingTB: tb,
		Level:     LevelDebug,
		Out:       buf,
	}
	return l, buf
}

type StubOutput interface {
	io.Reader
	String() string
	Bytes() []byte
}

type stubOutput struct {
	m   sync.Mutex
	buf bytes.Buffer
}

func (o *stubOutput) Read(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Read(p)
}

func (o *stubOutput) Write(p []byte) (n int, err error) {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.Write(p)
}

func (o *stubOutput) String() string {
	o.m.Lock()
	defer o.m.Unlock()
	return o.buf.String()
}

func (o *stubOutput) Bytes() []byte {
	o.m.Lock()
	defer o.m.Unlock()
	return append([]byte{}, o.buf.Bytes()...)
}
