package logging

import (
	"reflect"
)

// Detail enriches a log entry with contextual information.
type Detail interface {
	addTo(l *Logger, e entry)
}

// Field creates a single key value pair detail.
func Field(key string, value any) Detail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(l *Logger, e entry) {
	e[l.formatKey(f.Key)] = l.toFieldValue(f.Value)
}

// LazyDetail is evaluated only when the log entry is actually made.
// Use it for debug details that take effort to compute.
type LazyDetail func() Detail

func (fn LazyDetail) addTo(l *Logger, e entry) {
	if fn == nil {
		return
	}
	if d := fn(); d != nil {
		d.addTo(l, e)
	}
}

// Fields is a collection of key value pairs.
type Fields map[string]any

func (fields Fields) addTo(l *Logger, e entry) {
	for k, v := range fields {
		Field(k, v).addTo(l, e)
	}
}

// ErrField adds the error under the "error" key.
func ErrField(err error) Detail {
	if err == nil {
		return nullDetail{}
	}
	return Field("error", Fields{"message": err.Error()})
}

func (l *Logger) toFieldValue(val any) any {
	switch val := val.(type) {
	case nil:
		return nil
	case Fields:
		e := entry{}
		val.addTo(l, e)
		return map[string]any(e)
	case Detail:
		e := entry{}
		val.addTo(l, e)
		return map[string]any(e)
	case []Detail:
		e := entry{}
		for _, d := range val {
			d.addTo(l, e)
		}
		return map[string]any(e)
	case error:
		return val.Error()
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return l.toFieldValue(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return val
		}
		vs := map[string]any{}
		iter := rv.MapRange()
		for iter.Next() {
			vs[l.formatKey(iter.Key().String())] = l.toFieldValue(iter.Value().Interface())
		}
		return vs
	default:
		return val
	}
}

type entry map[string]any

type nullDetail struct{}

func (nullDetail) addTo(*Logger, entry) {}
