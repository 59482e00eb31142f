// Package manifest reads, patches and writes the package.json manifest that
// sits at the root of a template. Only the name and description fields are
// interpreted; every other top-level key is carried through verbatim and in
// its original order. The rewritten manifest is checked against an embedded
// JSON Schema so problems surface as warnings.
package manifest
