package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// indent is the indentation used when writing package.json.
const indent = "  "

var (
	errNotObject     = errors.New("top-level value is not an object")
	errTrailingData  = errors.New("unexpected data after the top-level object")
	errUnexpectedKey = errors.New("object key is not a string")
)

// field is one top-level member, value kept verbatim.
type field struct {
	key   string
	value json.RawMessage
}

// Document is an order-preserving view of a JSON object.
type Document struct {
	fields []field
}

// Parse decodes data, which must hold exactly one JSON object.
// Duplicate keys keep their first position and their last value.
func Parse(data []byte) (*Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	doc := new(Document)

	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return nil, err
		}

		key, ok := token.(string)
		if !ok {
			return nil, errUnexpectedKey
		}

		var value json.RawMessage
		if err = decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %q: %w", key, err)
		}

		doc.set(key, value)
	}

	// Closing brace.
	if _, err = decoder.Token(); err != nil {
		return nil, err
	}

	if _, err = decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return doc, nil
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.fields))
	for _, f := range d.fields {
		keys = append(keys, f.key)
	}

	return keys
}

// Raw returns the JSON text of key.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	for _, f := range d.fields {
		if f.key == key {
			return f.value, true
		}
	}

	return nil, false
}

// String returns key's value when it is a JSON string.
func (d *Document) String(key string) (string, bool) {
	raw, ok := d.Raw(key)
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

// IsBlank reports whether key is absent or holds a falsy JSON value:
// null, false, 0, "", [] or {}.
func (d *Document) IsBlank(key string) bool {
	raw, ok := d.Raw(key)
	if !ok {
		return true
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return true
	}

	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// SetString stores a string value under key, in place when the key exists
// and appended otherwise.
func (d *Document) SetString(key, value string) error {
	raw, err := marshalNoEscape(value)
	if err != nil {
		return err
	}

	d.set(key, raw)

	return nil
}

// Marshal renders the document with two-space indentation and no HTML escaping.
func (d *Document) Marshal() ([]byte, error) {
	if len(d.fields) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	buf.WriteString("{\n")

	for i, f := range d.fields {
		key, err := marshalNoEscape(f.key)
		if err != nil {
			return nil, err
		}

		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")

		if err = json.Indent(&buf, f.value, indent, indent); err != nil {
			return nil, fmt.Errorf("format %q: %w", f.key, err)
		}

		if i < len(d.fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (d *Document) set(key string, value json.RawMessage) {
	for i := range d.fields {
		if d.fields[i].key == key {
			d.fields[i].value = value
			return
		}
	}

	d.fields = append(d.fields, field{key: key, value: value})
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
