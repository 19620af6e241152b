// Package option holds the functional option idiom of the module.
//
//	func NewThing(opts ...option.Option[Config]) *Thing {
//		c := option.ToConfig(opts)
//		...
//	}
package option

// Option configures a Config value.
type Option[Config any] interface {
	Configure(*Config)
}

// Func is the plain function form of an Option.
type Func[Config any] func(*Config)

func (fn Func[Config]) Configure(c *Config) { fn(c) }

// ToConfig builds a Config from its zero value.
// When *Config has an Init method, Init sets the defaults before the options are applied.
func ToConfig[Config any, Opt Option[Config]](opts []Opt) Config {
	var c Config
	if init, ok := any(&c).(initer); ok {
		init.Init()
	}
	for _, opt := range opts {
		opt.Configure(&c)
	}
	return c
}

type initer interface {
	Init()
}
