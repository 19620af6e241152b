package codec_test

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterateur/port/codec"
)

type Settings struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Retries int    `json:"retries" yaml:"retries" toml:"retries"`
}

func ExampleJSON() {
	var c codec.Codec = codec.JSON{}
	data, err := c.Marshal(Settings{Name: "foo"})
	if err != nil {
		return
	}
	var got Settings
	_ = c.Unmarshal(data, &got)
}

func TestCodecs(t *testing.T) {
	s := testcase.NewSpec(t)

	c := testcase.Let[codec.Codec](s, nil)
	value := testcase.Let(s, func(t *testcase.T) Settings {
		return Settings{
			Name:    t.Random.StringNC(8, "abcdefghijklmnopqrstuvwxyz"),
			Retries: t.Random.IntB(0, 10),
		}
	})

	thenValueSurvivesARoundTrip := func(s *testcase.Spec) {
		s.Then("the value survives a round trip", func(t *testcase.T) {
			data, err := c.Get(t).Marshal(value.Get(t))
			assert.NoError(t, err)

			var got Settings
			assert.NoError(t, c.Get(t).Unmarshal(data, &got))
			assert.Equal(t, value.Get(t), got)
		})

		s.Then("invalid input is reported as an error", func(t *testcase.T) {
			var got Settings
			assert.Error(t, c.Get(t).Unmarshal([]byte("key:\n\t- value\n"), &got))
		})
	}

	s.When("JSON", func(s *testcase.Spec) {
		c.Let(s, func(t *testcase.T) codec.Codec { return codec.JSON{} })
		thenValueSurvivesARoundTrip(s)
	})

	s.When("YAML", func(s *testcase.Spec) {
		c.Let(s, func(t *testcase.T) codec.Codec { return codec.YAML{} })
		thenValueSurvivesARoundTrip(s)
	})

	s.When("TOML", func(s *testcase.Spec) {
		c.Let(s, func(t *testcase.T) codec.Codec { return codec.TOML{} })
		thenValueSurvivesARoundTrip(s)
	})
}

func TestFuncs(t *testing.T) {
	var (
		m codec.Marshaler   = codec.MarshalerFunc(func(v any) ([]byte, error) { return []byte("42"), nil })
		u codec.Unmarshaler = codec.UnmarshalerFunc(func(data []byte, ptr any) error {
			*ptr.(*string) = string(data)
			return nil
		})
	)
	data, err := m.Marshal(nil)
	assert.NoError(t, err)
	var got string
	assert.NoError(t, u.Unmarshal(data, &got))
	assert.Equal(t, "42", got)
}
