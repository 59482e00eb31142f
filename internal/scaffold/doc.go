// Package scaffold materializes new projects from templates. It copies a
// template's file tree into a fresh directory, skipping the dependency-cache
// directory, then rewrites the copied package.json with the project's name.
// Engine ties name validation, interactive selection and materialization
// into the single create flow used by the CLI.
package scaffold
