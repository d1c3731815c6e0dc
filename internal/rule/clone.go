package rule

import "reflect"

// Clone creates an independent copy of a rule so per-notebook settings never
// leak into the shared registry instance. Configurable rules are rebuilt
// from a zero value with their default settings applied; everything else
// gets a reflect-based shallow copy.
func Clone(r Rule) Rule {
	if c, ok := r.(Configurable); ok {
		rv := reflect.ValueOf(r)
		if rv.Kind() == reflect.Ptr {
			newPtr := reflect.New(rv.Elem().Type())
			clone := newPtr.Interface().(Rule)
			if cc, ok := clone.(Configurable); ok {
				_ = cc.ApplySettings(c.DefaultSettings())
			}
			return clone
		}
	}

	rv := reflect.ValueOf(r)
	if rv.Kind() == reflect.Ptr {
		newPtr := reflect.New(rv.Elem().Type())
		newPtr.Elem().Set(rv.Elem())
		return newPtr.Interface().(Rule)
	}

	return r
}
