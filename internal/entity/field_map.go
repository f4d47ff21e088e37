package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value extracted from a document section.
type Field struct {
	Key   string
	Value interface{}
}

// FieldMap is an insertion-ordered mapping of field name to value. Extraction
// results list fields in reading order and the review UI renders them in that
// order, so a plain map is not enough.
type FieldMap []Field

func (m FieldMap) Get(key string) (interface{}, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value for key in place, or appends the field if absent.
func (m *FieldMap) Set(key string, value interface{}) {
	for i, f := range *m {
		if f.Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Field{Key: key, Value: value})
}

func (m FieldMap) Clone() FieldMap {
	if m == nil {
		return nil
	}
	out := make(FieldMap, len(m))
	copy(out, m)
	return out
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping the key order of the payload.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("field map: expected JSON object, got %v", tok)
	}

	fields := FieldMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("field map: expected string key, got %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = fields
	return nil
}
