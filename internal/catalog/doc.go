// Package catalog discovers the project templates available under a template
// root. Each immediate subdirectory of the root is one template; its optional
// package.json supplies the description shown to the operator. The catalog is
// rescanned on every query so it always reflects what is on disk.
package catalog
