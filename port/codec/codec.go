// Package codec is the port of value serialisation,
// with the codecs used by the storage and configuration adapters.
package codec

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Codec can marshal and unmarshal values of various types.
type Codec interface {
	Marshaler
	Unmarshaler
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

type Unmarshaler interface {
	Unmarshal(data []byte, ptr any) error
}

type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, ptr any) error { return json.Unmarshal(data, ptr) }

type YAML struct{}

func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAML) Unmarshal(data []byte, ptr any) error { return yaml.Unmarshal(data, ptr) }

type TOML struct{}

func (TOML) Marshal(v any) ([]byte, error) { return toml.Marshal(v) }

func (TOML) Unmarshal(data []byte, ptr any) error { return toml.Unmarshal(data, ptr) }

type MarshalerFunc func(v any) ([]byte, error)

func (fn MarshalerFunc) Marshal(v any) ([]byte, error) { return fn(v) }

type UnmarshalerFunc func(data []byte, ptr any) error

func (fn UnmarshalerFunc) Unmarshal(data []byte, ptr any) error { return fn(data, ptr) }
