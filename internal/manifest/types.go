package manifest

import "encoding/json"

// FileName is the manifest file looked up at a template or project root.
const FileName = "package.json"

// Field keys with typed accessors on Package.
const (
	keyName        = "name"
	keyDescription = "description"
)

// Field is one top-level manifest entry whose value is kept as raw JSON.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Package is an ordered package.json document. Name and Description are the
// only fields the scaffolder reads or writes; everything else lives in fields
// and is written back untouched.
type Package struct {
	Name        string
	Description string

	fields []Field
}
