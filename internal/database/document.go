package database

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Helpers for applying update operators to a decoded BSON document. They
// follow MongoDB's dot-notation rules for the operators Update supports.

func decodeDocument(raw []byte) (bson.M, error) {
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return normalize(m).(bson.M), nil
}

// normalize converts ordered documents into maps so paths can be walked
// uniformly.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[string]any:
		m := bson.M(t)
		for k, e := range m {
			m[k] = normalize(e)
		}
		return m
	case bson.D:
		m := make(bson.M, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case []any:
		a := bson.A(t)
		for i, e := range a {
			a[i] = normalize(e)
		}
		return a
	default:
		return v
	}
}

// canonical re-encodes v so values of different Go types that store
// identically compare equal.
func canonical(v any) any {
	raw, err := bson.Marshal(bson.M{"v": v})
	if err != nil {
		return v
	}
	m, err := decodeDocument(raw)
	if err != nil {
		return v
	}
	return m["v"]
}

func equalValues(a, b any) bool {
	return reflect.DeepEqual(canonical(a), canonical(b))
}

func lookup(doc bson.M, path string) (any, bool) {
	var cur any = doc
	for _, key := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case bson.M:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = v
		case bson.A:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// parent walks to the container of the last path segment, creating
// intermediate documents when create is set.
func parent(doc bson.M, path string, create bool) (bson.M, string, error) {
	keys := strings.Split(path, ".")
	cur := doc
	for i, key := range keys[:len(keys)-1] {
		next, ok := cur[key]
		if !ok || next == nil {
			if !create {
				return nil, "", nil
			}
			child := bson.M{}
			cur[key] = child
			cur = child
			continue
		}
		child, ok := next.(bson.M)
		if !ok {
			return nil, "", fmt.Errorf("cannot create field %q in element {%s: %v}",
				keys[i+1], key, next)
		}
		cur = child
	}
	return cur, keys[len(keys)-1], nil
}

func setPath(doc bson.M, path string, v any) error {
	p, key, err := parent(doc, path, true)
	if err != nil {
		return err
	}
	p[key] = v
	return nil
}

func unsetPath(doc bson.M, path string) error {
	p, key, err := parent(doc, path, false)
	if err != nil || p == nil {
		return err
	}
	delete(p, key)
	return nil
}

func incPath(doc bson.M, path string, delta int) error {
	cur, ok := lookup(doc, path)
	if !ok || cur == nil {
		return setPath(doc, path, delta)
	}
	var next any
	switch n := cur.(type) {
	case int32:
		next = int64(n) + int64(delta)
	case int64:
		next = n + int64(delta)
	case int:
		next = n + delta
	case float64:
		next = n + float64(delta)
	default:
		return fmt.Errorf("cannot apply $inc to %s: non-numeric value", path)
	}
	return setPath(doc, path, next)
}

func arrayAt(doc bson.M, path, op string) (bson.A, error) {
	cur, ok := lookup(doc, path)
	if !ok || cur == nil {
		return bson.A{}, nil
	}
	arr, ok := cur.(bson.A)
	if !ok {
		return nil, fmt.Errorf("cannot apply %s to %s: non-array value", op, path)
	}
	return arr, nil
}

func pushPath(doc bson.M, path string, v any) error {
	arr, err := arrayAt(doc, path, "$push")
	if err != nil {
		return err
	}
	return setPath(doc, path, append(arr, v))
}

func addToSetPath(doc bson.M, path string, v any) error {
	arr, err := arrayAt(doc, path, "$addToSet")
	if err != nil {
		return err
	}
	for _, e := range arr {
		if equalValues(e, v) {
			return nil
		}
	}
	return setPath(doc, path, append(arr, v))
}

func pullPath(doc bson.M, path string, v any) error {
	if _, ok := lookup(doc, path); !ok {
		return nil
	}
	arr, err := arrayAt(doc, path, "$pull")
	if err != nil {
		return err
	}
	kept := bson.A{}
	for _, e := range arr {
		if !equalValues(e, v) {
			kept = append(kept, e)
		}
	}
	return setPath(doc, path, kept)
}

// apply runs every operator of u against doc. Paths never overlap within one
// update, so operator order does not matter.
func apply(doc bson.M, u Update) error {
	for path, v := range u.Set {
		if err := setPath(doc, path, v); err != nil {
			return err
		}
	}
	for _, path := range u.Unset {
		if err := unsetPath(doc, path); err != nil {
			return err
		}
	}
	for path, n := range u.Inc {
		if err := incPath(doc, path, n); err != nil {
			return err
		}
	}
	for path, v := range u.Push {
		if err := pushPath(doc, path, v); err != nil {
			return err
		}
	}
	for path, v := range u.AddToSet {
		if err := addToSetPath(doc, path, v); err != nil {
			return err
		}
	}
	for path, v := range u.Pull {
		if err := pullPath(doc, path, v); err != nil {
			return err
		}
	}
	return nil
}

func matches(doc bson.M, f Filter) bool {
	for path, want := range f.Equal {
		got, ok := lookup(doc, path)
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	for path, after := range f.After {
		got, ok := lookup(doc, path)
		if !ok {
			return false
		}
		var at time.Time
		switch t := got.(type) {
		case primitive.DateTime:
			at = t.Time()
		case time.Time:
			at = t
		default:
			return false
		}
		if !at.After(after) {
			return false
		}
	}
	return true
}
