package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Parse decodes a package.json document, keeping top-level key order.
func Parse(data []byte) (*Package, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("manifest must be a JSON object")
	}

	p := &Package{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading manifest key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected manifest token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading manifest field %q: %w", key, err)
		}

		// A non-string identity field stays raw and reads as empty.
		switch key {
		case keyName:
			p.Name, _ = decodeString(raw)
		case keyDescription:
			p.Description, _ = decodeString(raw)
		}
		p.set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after manifest object")
	}

	return p, nil
}

// ReadFile reads and parses the manifest at path.
func ReadFile(fsys afero.Fs, path string) (*Package, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return p, nil
}

// Marshal encodes the manifest with two-space indentation and a trailing
// newline. Keys keep their original order; name and description are appended
// when they were not present in the source but have been set since.
func (p *Package) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')

	first := true
	writeField := func(key string, value []byte) error {
		if !first {
			compact.WriteByte(',')
		}
		first = false
		k, err := encodeString(key)
		if err != nil {
			return err
		}
		compact.Write(k)
		compact.WriteByte(':')
		compact.Write(value)
		return nil
	}

	seenName, seenDesc := false, false
	for _, f := range p.fields {
		value := []byte(f.Value)
		var err error
		switch f.Key {
		case keyName:
			seenName = true
			value, err = identityValue(p.Name, f.Value)
		case keyDescription:
			seenDesc = true
			value, err = identityValue(p.Description, f.Value)
		}
		if err != nil {
			return nil, err
		}
		if err := writeField(f.Key, value); err != nil {
			return nil, err
		}
	}

	if !seenName && p.Name != "" {
		v, err := encodeString(p.Name)
		if err != nil {
			return nil, err
		}
		if err := writeField(keyName, v); err != nil {
			return nil, err
		}
	}
	if !seenDesc && p.Description != "" {
		v, err := encodeString(p.Description)
		if err != nil {
			return nil, err
		}
		if err := writeField(keyDescription, v); err != nil {
			return nil, err
		}
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteFile marshals the manifest and writes it to path.
func (p *Package) WriteFile(fsys afero.Fs, path string, perm os.FileMode) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Patch stamps the project identity onto the manifest.
func (p *Package) Patch(projectName string) {
	p.Name = projectName
	p.Description = projectName + " project"
}

// Keys returns the top-level keys in document order.
func (p *Package) Keys() []string {
	keys := make([]string, len(p.fields))
	for i, f := range p.fields {
		keys[i] = f.Key
	}
	return keys
}

// Raw returns the raw JSON value of a passthrough field.
func (p *Package) Raw(key string) (json.RawMessage, bool) {
	for _, f := range p.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String returns a top-level field decoded as a string, e.g. "version".
func (p *Package) String(key string) (string, bool) {
	raw, ok := p.Raw(key)
	if !ok {
		return "", false
	}
	return decodeString(raw)
}

// set records a field, replacing the value of a duplicate key in place.
func (p *Package) set(key string, value json.RawMessage) {
	for i := range p.fields {
		if p.fields[i].Key == key {
			p.fields[i].Value = value
			return
		}
	}
	p.fields = append(p.fields, Field{Key: key, Value: value})
}

// identityValue encodes a name or description for output. An unset field
// whose source value was not a string is written back as it was.
func identityValue(typed string, raw json.RawMessage) ([]byte, error) {
	if _, isString := decodeString(raw); typed == "" && !isString {
		return raw, nil
	}
	return encodeString(typed)
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// encodeString JSON-encodes s without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding %q: %w", s, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
