// Package payload provides the flat, ordered string mapping that every
// localization input is projected into, plus the word counter and chunker
// that split it into request-sized batches.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is a flat string-to-string mapping that remembers insertion order.
// The zero value is ready to use.
type Payload struct {
	keys   []string
	values map[string]string
}

// New creates an empty payload with room for n entries.
func New(n int) *Payload {
	return &Payload{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// FromPairs builds a payload from alternating key/value arguments.
// It panics on an odd argument count.
func FromPairs(kv ...string) *Payload {
	if len(kv)%2 != 0 {
		panic("payload: FromPairs needs an even number of arguments")
	}
	p := New(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// Set stores value under key. Overwriting keeps the key's original position.
func (p *Payload) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p *Payload) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Payload) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of entries.
func (p *Payload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (p *Payload) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Values returns the values in insertion order.
func (p *Payload) Values() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	for i, k := range p.keys {
		out[i] = p.values[k]
	}
	return out
}

// Each calls fn for every entry in insertion order.
func (p *Payload) Each(fn func(key, value string)) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}

// Merge copies every entry of other into p. Keys already present are
// overwritten in place, new keys are appended in other's order.
func (p *Payload) Merge(other *Payload) {
	other.Each(p.Set)
}

// Clone returns an independent copy.
func (p *Payload) Clone() *Payload {
	c := New(p.Len())
	c.Merge(p)
	return c
}

// Map returns the entries as a plain Go map. Order is lost.
func (p *Payload) Map() map[string]string {
	m := make(map[string]string, p.Len())
	p.Each(func(k, v string) { m[k] = v })
	return m
}

// MarshalJSON encodes the payload as a JSON object in insertion order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
// Entries whose value is not a string are skipped. A JSON null yields an
// empty payload.
func (p *Payload) UnmarshalJSON(data []byte) error {
	p.keys = nil
	p.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("payload: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("payload: expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("payload: decoding value of %q: %w", key, err)
		}

		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		p.Set(key, s)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
