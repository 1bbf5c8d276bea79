package datamodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Key is the set of key types an OrderedMap can serialize as a JSON object key.
type Key interface {
	string | int
}

// OrderedMap is a map that remembers insertion order. Every mapping in a tick uses it
// so that compressed telemetry arrays line up symbol-for-symbol with the input.
//
// The zero value is ready to use. Copies share storage; use Clone for an independent map.
type OrderedMap[K Key, V any] struct {
	keys []K
	vals map[K]V
}

// NewOrderedMap returns an empty map with room for capacity entries.
func NewOrderedMap[K Key, V any](capacity int) OrderedMap[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return OrderedMap[K, V]{
		keys: make([]K, 0, capacity),
		vals: make(map[K]V, capacity),
	}
}

// Set stores v under k. A new key is appended; an existing key keeps its position.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

// Get returns the value stored under k.
func (m OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Has reports whether k is present.
func (m OrderedMap[K, V]) Has(k K) bool {
	_, ok := m.vals[k]
	return ok
}

// Delete removes k, preserving the order of the remaining keys.
func (m *OrderedMap[K, V]) Delete(k K) {
	if _, ok := m.vals[k]; !ok {
		return
	}
	delete(m.vals, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (m OrderedMap[K, V]) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in insertion order.
func (m OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m OrderedMap[K, V]) Range(fn func(k K, v V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Clone returns a shallow copy that does not share storage with m.
func (m OrderedMap[K, V]) Clone() OrderedMap[K, V] {
	out := NewOrderedMap[K, V](len(m.keys))
	for _, k := range m.keys {
		out.Set(k, m.vals[k])
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.ConfigDefault.Marshal(keyString(k))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := sonic.ConfigDefault.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the document's key order. A JSON null leaves m empty.
func (m *OrderedMap[K, V]) UnmarshalJSON(data []byte) error {
	*m = NewOrderedMap[K, V](0)
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered map: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		raw, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered map: expected key, got %v", tok)
		}
		k, err := parseKey[K](raw)
		if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("ordered map: value for %q: %w", raw, err)
		}
		m.Set(k, v)
	}
	_, err = dec.Token()
	return err
}

func keyString[K Key](k K) string {
	switch v := any(k).(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func parseKey[K Key](raw string) (K, error) {
	var k K
	switch p := any(&k).(type) {
	case *string:
		*p = raw
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return k, fmt.Errorf("ordered map: key %q is not an integer: %w", raw, err)
		}
		*p = n
	}
	return k, nil
}
