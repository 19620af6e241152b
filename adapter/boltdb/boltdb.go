// Package boltdb stores provider values in a bolt bucket.
//
// Values are encoded with a codec.Codec, JSON by default,
// and keys are the raw bytes of the string key.
package boltdb

import (
	"context"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"

	"go.llib.dev/iterateur/pkg/errorkit"
	"go.llib.dev/iterateur/pkg/iterateur"
	"go.llib.dev/iterateur/pkg/logging"
	"go.llib.dev/iterateur/pkg/optional"
	"go.llib.dev/iterateur/pkg/result"
	"go.llib.dev/iterateur/port/codec"
	"go.llib.dev/iterateur/port/option"
)

const (
	ErrBucketNotFound errorkit.Error = "boltdb: bucket not found"
	ErrDecode         errorkit.Error = "boltdb: unable to decode value"
	ErrEncode         errorkit.Error = "boltdb: unable to encode value"
)

type Config struct {
	Codec  codec.Codec
	Logger *logging.Logger
}

func (c *Config) Init() {
	c.Codec = codec.JSON{}
}

type Option = option.Option[Config]

func WithCodec(c codec.Codec) Option {
	return option.Func[Config](func(config *Config) { config.Codec = c })
}

func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(config *Config) { config.Logger = l })
}

// Provider is a key value provider backed by a bolt bucket.
// It is safe for concurrent use, as far as the underlying bolt.DB is.
type Provider[V any] struct {
	db     *bolt.DB
	bucket []byte
	codec  codec.Codec
	logger *logging.Logger
}

// Entry is a key value pair of the bucket.
type Entry[V any] struct {
	Key   string
	Value V
}

// NewProvider makes a Provider for the bucket, and creates the bucket when it doesn't exist yet.
func NewProvider[V any](db *bolt.DB, bucket string, opts ...Option) (*Provider[V], error) {
	c := option.ToConfig(opts)
	p := &Provider[V]{
		db:     db,
		bucket: []byte(bucket),
		codec:  c.Codec,
		logger: logging.Or(c.Logger),
	}
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(p.bucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Lookup returns the value stored under the key.
// A missing key is an absent Optional, while storage and decoding failures are errors.
func (p *Provider[V]) Lookup(key string) result.Result[optional.Optional[V], error] {
	var data []byte
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(p.bucket)
		if b == nil {
			return ErrBucketNotFound.F("%s", p.bucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return result.Err[optional.Optional[V]](err)
	}
	if data == nil {
		return result.Ok[optional.Optional[V], error](optional.Absent[V]())
	}
	var v V
	if err := p.codec.Unmarshal(data, &v); err != nil {
		return result.Err[optional.Optional[V]](ErrDecode.Wrap(err))
	}
	return result.Ok[optional.Optional[V], error](optional.Present(v))
}

// Provide returns the value stored under the key.
// Lookup failures are logged, and reported as an absent value.
func (p *Provider[V]) Provide(key string) optional.Optional[V] {
	v, err, ok := p.Lookup(key).Unpack()
	if !ok {
		p.logger.Warn(context.Background(), "boltdb: lookup failed",
			logging.Field("bucket", string(p.bucket)),
			logging.Field("key", key),
			logging.ErrField(err))
		return optional.Absent[V]()
	}
	return v
}

// AddKV stores the value under the key, replacing the previous value.
func (p *Provider[V]) AddKV(key string, value V) error {
	data, err := p.codec.Marshal(value)
	if err != nil {
		return ErrEncode.Wrap(err)
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(p.bucket)
		if b == nil {
			return ErrBucketNotFound.F("%s", p.bucket)
		}
		return b.Put([]byte(key), data)
	})
}

// AddV stores the value under a new random UUID key, and returns the key.
// The key is absent when the value could not be stored.
func (p *Provider[V]) AddV(value V) optional.Optional[string] {
	key := uuid.NewV4().String()
	if err := p.AddKV(key, value); err != nil {
		p.logger.Warn(context.Background(), "boltdb: unable to add value",
			logging.Field("bucket", string(p.bucket)),
			logging.ErrField(err))
		return optional.Absent[string]()
	}
	return optional.Present(key)
}

// Entries iterates over the bucket in key order, within a single read transaction.
// The transaction begins on the first pull, and it is rolled back once the iterator
// is exhausted or stopped, so an Entries iterator must always be consumed or stopped.
// Writing to the same database while an Entries iterator is open may block.
func (p *Provider[V]) Entries() *iterateur.Iterateur[result.Result[Entry[V], error]] {
	var (
		tx     *bolt.Tx
		cursor *bolt.Cursor
		done   bool
	)
	fail := func(err error) (result.Result[Entry[V], error], bool) {
		done = true
		return result.Err[Entry[V]](err), true
	}
	next := func() (result.Result[Entry[V], error], bool) {
		if done {
			return result.Result[Entry[V], error]{}, false
		}
		var k, v []byte
		if cursor == nil {
			var err error
			tx, err = p.db.Begin(false)
			if err != nil {
				return fail(err)
			}
			b := tx.Bucket(p.bucket)
			if b == nil {
				return fail(ErrBucketNotFound.F("%s", p.bucket))
			}
			cursor = b.Cursor()
			k, v = cursor.First()
		} else {
			k, v = cursor.Next()
		}
		for k != nil && v == nil { // nested bucket
			k, v = cursor.Next()
		}
		if k == nil {
			return result.Result[Entry[V], error]{}, false
		}
		var value V
		if err := p.codec.Unmarshal(v, &value); err != nil {
			return result.Err[Entry[V]](ErrDecode.Wrap(err)), true
		}
		return result.Ok[Entry[V], error](Entry[V]{Key: string(k), Value: value}), true
	}
	return iterateur.FromPull(next, func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	})
}
