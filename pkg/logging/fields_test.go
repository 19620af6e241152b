package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/iterateur/pkg/logging"
)

func TestFields(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	decode := func(tb testing.TB, buf *bytes.Buffer) map[string]any {
		var out map[string]any
		assert.NoError(tb, json.Unmarshal(buf.Bytes(), &out))
		return out
	}

	t.Run("nested Fields become objects", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf}
		l.Info(nil, "msg", logging.Field("config", logging.Fields{"path": "app.toml"}))
		got := decode(t, buf)
		assert.Equal[any](t, map[string]any{"path": "app.toml"}, got["config"])
	})

	t.Run("ErrField", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf}
		err := rnd.Error()
		l.Error(nil, "msg", logging.ErrField(err))
		got := decode(t, buf)
		assert.Equal[any](t, map[string]any{"message": err.Error()}, got["error"])
	})

	t.Run("ErrField with nil error adds nothing", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf}
		l.Error(nil, "msg", logging.ErrField(nil))
		_, ok := decode(t, buf)["error"]
		assert.False(t, ok)
	})

	t.Run("LazyDetail is not evaluated below the level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf, Level: logging.LevelInfo}
		l.Debug(nil, "msg", logging.LazyDetail(func() logging.Detail {
			t.Fatal("unexpected call")
			return nil
		}))
		assert.Empty(t, buf.String())
	})

	t.Run("LazyDetail is evaluated when logged", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf}
		l.Info(nil, "msg", logging.LazyDetail(func() logging.Detail {
			return logging.Field("computed", true)
		}))
		assert.Equal[any](t, true, decode(t, buf)["computed"])
	})

	t.Run("pointers are dereferenced", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := logging.Logger{Out: buf}
		n := 42
		var null *int
		l.Info(nil, "msg", logging.Fields{"n": &n, "null": null})
		got := decode(t, buf)
		assert.Equal[any](t, 42.0, got["n"])
		assert.Nil(t, got["null"])
	})
}
