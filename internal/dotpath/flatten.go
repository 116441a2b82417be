// Package dotpath turns sparse nested update payloads into dotted field paths
// so they can be applied as targeted writes without clobbering siblings.
package dotpath

import (
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Flatten maps every leaf of v to its fully-qualified dotted path under prefix.
//
// v may be a map with string keys or a struct (or a pointer to either). Struct
// fields are named by their bson tag. Nested maps, structs and non-nil pointers
// to structs are recursed into; slices, arrays, time values and scalars are
// leaves assigned wholesale. Nil pointers, nil slices and nil maps held in
// struct fields are absent and omitted. A nil value stored under a map key is
// an explicit null and is kept as a leaf.
func Flatten(prefix string, v any) map[string]any {
	out := make(map[string]any)
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return out
	}
	if !isObject(rv) {
		if prefix != "" {
			out[prefix] = rv.Interface()
		}
		return out
	}
	walk(out, prefix, rv)
	return out
}

// Join appends key to prefix with a dot, if prefix is not empty.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func walk(out map[string]any, prefix string, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() != reflect.String {
				continue
			}
			emit(out, Join(prefix, key.String()), iter.Value(), true)
		}
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			name, ok := fieldName(field)
			if !ok {
				continue
			}
			emit(out, Join(prefix, name), rv.Field(i), false)
		}
	}
}

// emit writes one entry. fromMap distinguishes a nil held by a map key (an
// explicit null) from a nil struct field (absent).
func emit(out map[string]any, path string, fv reflect.Value, fromMap bool) {
	if fv.Kind() == reflect.Interface {
		if fv.IsNil() {
			if fromMap {
				out[path] = nil
			}
			return
		}
		fv = fv.Elem()
	}

	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			if fromMap {
				out[path] = nil
			}
			return
		}
		elem := fv.Elem()
		if isObject(elem) {
			walk(out, path, elem)
			return
		}
		out[path] = elem.Interface()
	case reflect.Slice, reflect.Map:
		if fv.IsNil() {
			if fromMap {
				out[path] = nil
			}
			return
		}
		if fv.Kind() == reflect.Map && isObject(fv) {
			walk(out, path, fv)
			return
		}
		out[path] = fv.Interface()
	case reflect.Struct:
		if isObject(fv) {
			walk(out, path, fv)
			return
		}
		out[path] = fv.Interface()
	default:
		out[path] = fv.Interface()
	}
}

// isObject reports whether rv is a plain nested object rather than a leaf.
func isObject(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return rv.Type() != timeType
	default:
		return false
	}
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("bson")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(field.Name), true
	}
	return name, true
}
