package boltdb_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterateur/adapter/boltdb"
	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/pkg/iterateur/iterateurcontract"
	"go.llib.dev/iterateur/pkg/logging"
	"go.llib.dev/iterateur/pkg/optional"
	"go.llib.dev/iterateur/pkg/provider"
	"go.llib.dev/iterateur/pkg/result"
	"go.llib.dev/iterateur/port/codec"
)

type Setting struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func OpenDB(tb testing.TB) *bolt.DB {
	path := filepath.Join(tb.TempDir(), uuid.NewV4().String())
	db, err := bolt.Open(path, 0600, nil)
	require.NoError(tb, err)
	tb.Cleanup(func() { require.NoError(tb, db.Close()) })
	return db
}

func ExampleNewProvider() {
	db, err := bolt.Open("settings.db", 0600, nil)
	if err != nil {
		return
	}
	defer db.Close()

	settings, err := boltdb.NewProvider[Setting](db, "settings")
	if err != nil {
		return
	}

	h := provider.NewHerdsman[string, Setting]()
	h.AddKVProvider(settings)
	_ = h.Provide("timeout")
}

func TestProvider(t *testing.T) {
	s := testcase.NewSpec(t)

	db := testcase.Let(s, func(t *testcase.T) *bolt.DB { return OpenDB(t) })
	bucket := testcase.Let(s, func(t *testcase.T) string { return t.Random.StringNC(8, "abcdefgh") })
	opts := testcase.LetValue[[]boltdb.Option](s, nil)
	subject := testcase.Let(s, func(t *testcase.T) *boltdb.Provider[Setting] {
		p, err := boltdb.NewProvider[Setting](db.Get(t), bucket.Get(t), opts.Get(t)...)
		require.NoError(t, err)
		return p
	})

	key := testcase.Let(s, func(t *testcase.T) string { return t.Random.StringNC(12, "abcdefghijklmnopqrstuvwxyz0123456789") })
	value := testcase.Let(s, func(t *testcase.T) Setting {
		return Setting{Name: t.Random.StringNC(5, "xyz"), Value: t.Random.IntB(1, 100)}
	})

	s.Test("the bucket is created", func(t *testcase.T) {
		subject.Get(t)
		require.NoError(t, db.Get(t).View(func(tx *bolt.Tx) error {
			if tx.Bucket([]byte(bucket.Get(t))) == nil {
				return errors.New("bucket is missing")
			}
			return nil
		}))
	})

	s.Test("missing key is absent", func(t *testcase.T) {
		r := subject.Get(t).Lookup(key.Get(t))
		require.True(t, r.IsOk())
		assert.True(t, r.Unwrap().IsAbsent())
		assert.True(t, subject.Get(t).Provide(key.Get(t)).IsAbsent())
	})

	s.Test("AddKV makes the value providable", func(t *testcase.T) {
		require.NoError(t, subject.Get(t).AddKV(key.Get(t), value.Get(t)))
		assert.True(t, optional.IsPresentWith(subject.Get(t).Provide(key.Get(t)), value.Get(t)))
	})

	s.Test("AddKV replaces the value", func(t *testcase.T) {
		require.NoError(t, subject.Get(t).AddKV(key.Get(t), Setting{Name: "old"}))
		require.NoError(t, subject.Get(t).AddKV(key.Get(t), value.Get(t)))
		assert.True(t, optional.IsPresentWith(subject.Get(t).Provide(key.Get(t)), value.Get(t)))
	})

	s.Test("AddV stores the value under a generated key", func(t *testcase.T) {
		k := subject.Get(t).AddV(value.Get(t))
		require.True(t, k.IsPresent())
		_, err := uuid.FromString(k.Unwrap())
		require.NoError(t, err)
		assert.True(t, optional.IsPresentWith(subject.Get(t).Provide(k.Unwrap()), value.Get(t)))
	})

	s.Test("values persist across providers of the same bucket", func(t *testcase.T) {
		require.NoError(t, subject.Get(t).AddKV(key.Get(t), value.Get(t)))
		other, err := boltdb.NewProvider[Setting](db.Get(t), bucket.Get(t))
		require.NoError(t, err)
		assert.True(t, optional.IsPresentWith(other.Provide(key.Get(t)), value.Get(t)))
	})

	s.When("the stored value can't be decoded", func(s *testcase.Spec) {
		logOutput := testcase.Let(s, func(t *testcase.T) *bytes.Buffer {
			return &bytes.Buffer{}
		})
		logger := testcase.Let(s, func(t *testcase.T) *logging.Logger {
			return &logging.Logger{Out: logOutput.Get(t), TestingTB: t}
		})

		opts.Let(s, func(t *testcase.T) []boltdb.Option {
			return []boltdb.Option{boltdb.WithLogger(logger.Get(t))}
		})

		s.Before(func(t *testcase.T) {
			subject.Get(t)
			require.NoError(t, db.Get(t).Update(func(tx *bolt.Tx) error {
				return tx.Bucket([]byte(bucket.Get(t))).Put([]byte(key.Get(t)), []byte("{not json"))
			}))
		})

		s.Then("Lookup reports a decode error", func(t *testcase.T) {
			r := subject.Get(t).Lookup(key.Get(t))
			require.True(t, r.IsErr())
			assert.ErrorIs(t, boltdb.ErrDecode, r.UnwrapErr())
		})

		s.Then("Provide logs the failure and reports absent", func(t *testcase.T) {
			out := logOutput.Get(t)
			assert.True(t, subject.Get(t).Provide(key.Get(t)).IsAbsent())
			assert.Contain(t, out.String(), "boltdb: lookup failed")
			assert.Contain(t, out.String(), `"level":"warn"`)
		})
	})

	s.When("a YAML codec is used", func(s *testcase.Spec) {
		opts.LetValue(s, []boltdb.Option{boltdb.WithCodec(codec.YAML{})})

		s.Then("the value is stored as YAML", func(t *testcase.T) {
			require.NoError(t, subject.Get(t).AddKV(key.Get(t), value.Get(t)))
			var raw []byte
			require.NoError(t, db.Get(t).View(func(tx *bolt.Tx) error {
				raw = append(raw, tx.Bucket([]byte(bucket.Get(t))).Get([]byte(key.Get(t)))...)
				return nil
			}))
			assert.Contain(t, string(raw), "name: "+value.Get(t).Name)
			assert.True(t, optional.IsPresentWith(subject.Get(t).Provide(key.Get(t)), value.Get(t)))
		})
	})
}

func TestProvider_Entries(t *testing.T) {
	db := OpenDB(t)
	p, err := boltdb.NewProvider[Setting](db, "settings")
	require.NoError(t, err)

	require.NoError(t, p.AddKV("b", Setting{Name: "b", Value: 2}))
	require.NoError(t, p.AddKV("a", Setting{Name: "a", Value: 1}))
	require.NoError(t, p.AddKV("c", Setting{Name: "c", Value: 3}))

	t.Run("contract", func(t *testing.T) {
		iterateurcontract.Source(func(tb testing.TB) *iterateur.Iterateur[result.Result[boltdb.Entry[Setting], error]] {
			return p.Entries()
		}).Test(t)
	})

	t.Run("entries come in key order", func(t *testing.T) {
		entries, err := iterateur.TryCollect(p.Entries())
		require.NoError(t, err)
		keys := iterateur.Map(iterateur.FromSlice(entries), func(e boltdb.Entry[Setting]) string { return e.Key }).Collect()
		require.Equal(t, []string{"a", "b", "c"}, keys)
	})

	t.Run("entries compose with the iterator", func(t *testing.T) {
		values := iterateur.FilterMap(p.Entries(), func(r result.Result[boltdb.Entry[Setting], error]) optional.Optional[int] {
			return optional.Map(r.AsOptional(), func(e boltdb.Entry[Setting]) int { return e.Value.Value })
		})
		require.Equal(t, 6, iterateur.Sum(values))
	})

	t.Run("the read transaction is released after an early stop", func(t *testing.T) {
		first := p.Entries().First()
		require.True(t, first.IsPresent())
		require.NoError(t, p.AddKV("d", Setting{Name: "d", Value: 4}))
		require.Equal(t, 4, p.Entries().Count())
	})

	t.Run("decode failures are in-band", func(t *testing.T) {
		db := OpenDB(t)
		p, err := boltdb.NewProvider[Setting](db, "broken")
		require.NoError(t, err)
		require.NoError(t, p.AddKV("ok", Setting{Name: "ok"}))
		require.NoError(t, db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket([]byte("broken")).Put([]byte("zzz"), []byte("{not json"))
		}))

		got := p.Entries().Collect()
		require.Len(t, got, 2)
		assert.True(t, got[0].IsOk())
		assert.True(t, got[1].IsErrMatching(func(err error) bool { return errors.Is(err, boltdb.ErrDecode) }))

		_, err = iterateur.TryCollect(p.Entries())
		assert.ErrorIs(t, boltdb.ErrDecode, err)
	})
}
