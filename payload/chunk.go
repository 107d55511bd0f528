package payload

import (
	"reflect"
	"strings"
)

// CountWords returns the number of whitespace-delimited words in v.
// Strings count their words, slices and string-keyed maps count the sum
// of their elements, anything else counts zero.
func CountWords(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		return len(strings.Fields(t))
	case *Payload:
		n := 0
		t.Each(func(_, value string) { n += len(strings.Fields(value)) })
		return n
	case []string:
		n := 0
		for _, s := range t {
			n += len(strings.Fields(s))
		}
		return n
	case map[string]string:
		n := 0
		for _, s := range t {
			n += len(strings.Fields(s))
		}
		return n
	case []any:
		n := 0
		for _, item := range t {
			n += CountWords(item)
		}
		return n
	case map[string]any:
		n := 0
		for _, item := range t {
			n += CountWords(item)
		}
		return n
	}
	return countReflect(reflect.ValueOf(v))
}

// countReflect handles named and nested container types the fast paths miss.
func countReflect(rv reflect.Value) int {
	switch rv.Kind() {
	case reflect.String:
		return len(strings.Fields(rv.String()))
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return 0
		}
		return countReflect(rv.Elem())
	case reflect.Slice, reflect.Array:
		n := 0
		for i := 0; i < rv.Len(); i++ {
			n += countReflect(rv.Index(i))
		}
		return n
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return 0
		}
		n := 0
		iter := rv.MapRange()
		for iter.Next() {
			n += countReflect(iter.Value())
		}
		return n
	}
	return 0
}

// Split partitions p into ordered chunks. A chunk is closed once its word
// count exceeds idealWords, once it holds maxItems entries, or when the
// last entry has been added. Every key lands in exactly one chunk and the
// original relative order is kept. An empty payload yields no chunks.
// Thresholds below 1 are treated as 1.
func Split(p *Payload, maxItems, idealWords int) []*Payload {
	if maxItems < 1 {
		maxItems = 1
	}
	if idealWords < 1 {
		idealWords = 1
	}

	total := p.Len()
	size := min(maxItems, total)
	var chunks []*Payload
	current := New(size)
	words := 0

	for i, key := range p.Keys() {
		value, _ := p.Get(key)
		current.Set(key, value)
		words += CountWords(value)

		if words > idealWords || current.Len() >= maxItems || i == total-1 {
			chunks = append(chunks, current)
			current = New(size)
			words = 0
		}
	}

	return chunks
}
