// Package configfile provides the values of TOML, YAML and dotenv configuration files.
//
// Nested tables are flattened into dot separated keys,
// so the value of
//
//	[database]
//	host = "localhost"
//
// is provided under the "database.host" key.
// Sequence elements get their index as key segment, like "hosts.0".
package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"go.llib.dev/iterateur/pkg/errorkit"
	"go.llib.dev/iterateur/pkg/logging"
	"go.llib.dev/iterateur/pkg/provider"
	"go.llib.dev/iterateur/port/option"
)

type Format string

const (
	FormatTOML   Format = "toml"
	FormatYAML   Format = "yaml"
	FormatDotenv Format = "env"
)

const ErrUnknownFormat errorkit.Error = "configfile: unknown format"

type Config struct {
	// Format overrides the format detected from the file extension.
	Format Format
	Logger *logging.Logger
}

type Option = option.Option[Config]

func WithFormat(f Format) Option {
	return option.Func[Config](func(c *Config) { c.Format = f })
}

func WithLogger(l *logging.Logger) Option {
	return option.Func[Config](func(c *Config) { c.Logger = l })
}

// FormatOf detects the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".env":
		return FormatDotenv, nil
	default:
		return "", ErrUnknownFormat.F("%s", path)
	}
}

// Parse reads the configuration data into flat key value pairs.
func Parse(format Format, data []byte) (map[string]string, error) {
	switch format {
	case FormatDotenv:
		return godotenv.Unmarshal(string(data))
	case FormatTOML:
		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return flatten(tree), nil
	case FormatYAML:
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return flatten(tree), nil
	default:
		return nil, ErrUnknownFormat.F("%q", format)
	}
}

// Load reads the file once, and returns its values as a provider.
func Load(path string, opts ...Option) (*provider.MapProvider[string, string], error) {
	c := option.ToConfig(opts)
	values, err := load(path, c.Format)
	if err != nil {
		return nil, err
	}
	return provider.FromMap(values), nil
}

func load(path string, format Format) (map[string]string, error) {
	if format == "" {
		f, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(format, data)
}

func flatten(tree map[string]any) map[string]string {
	out := make(map[string]string)
	for k, v := range tree {
		flattenInto(out, k, v)
	}
	return out
}

func flattenInto(out map[string]string, key string, v any) {
	join := func(sub string) string {
		if key == "" {
			return sub
		}
		return key + "." + sub
	}
	switch v := v.(type) {
	case map[string]any:
		for k, sub := range v {
			flattenInto(out, join(k), sub)
		}
	case map[any]any:
		for k, sub := range v {
			flattenInto(out, join(fmt.Sprint(k)), sub)
		}
	case []any:
		for i, sub := range v {
			flattenInto(out, join(strconv.Itoa(i)), sub)
		}
	case nil:
		out[key] = ""
	case time.Time:
		out[key] = v.Format(time.RFC3339Nano)
	default:
		out[key] = fmt.Sprint(v)
	}
}
