// Package naming validates project names before anything is written to disk.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Reason identifies why a project name was rejected.
type Reason string

const (
	ReasonEmpty             Reason = "empty"
	ReasonInvalidCharacters Reason = "invalid_characters"
	ReasonDirectoryExists   Reason = "directory_exists"
)

// Sentinels for errors.Is checks against a *ValidationError.
var (
	ErrEmpty             = errors.New("project name cannot be empty")
	ErrInvalidCharacters = errors.New("project name may only contain letters, digits, hyphens and underscores")
	ErrDirectoryExists   = errors.New("directory already exists")
)

// ValidationError is returned when a name fails one of the checks.
type ValidationError struct {
	Reason Reason
	Name   string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return ErrEmpty.Error()
	case ReasonInvalidCharacters:
		return fmt.Sprintf("invalid project name %q: only letters, digits, hyphens and underscores are allowed", e.Name)
	case ReasonDirectoryExists:
		return fmt.Sprintf("directory %s already exists", e.Name)
	default:
		return fmt.Sprintf("invalid project name %q", e.Name)
	}
}

// Is matches the sentinel for the error's reason.
func (e *ValidationError) Is(target error) bool {
	switch e.Reason {
	case ReasonEmpty:
		return target == ErrEmpty
	case ReasonInvalidCharacters:
		return target == ErrInvalidCharacters
	case ReasonDirectoryExists:
		return target == ErrDirectoryExists
	}
	return false
}

// Validator checks candidate project names against a working directory.
type Validator struct {
	fs  afero.Fs
	cwd string
}

// New creates a validator resolving names relative to cwd.
func New(fsys afero.Fs, cwd string) *Validator {
	return &Validator{fs: fsys, cwd: cwd}
}

// Destination returns the directory a project with this name would occupy.
func (v *Validator) Destination(name string) string {
	return filepath.Join(v.cwd, name)
}

// Validate returns nil if name can be used for a new project. Checks run in a
// fixed order (empty, characters, collision) and stop at the first failure.
// The collision check races with other processes touching the same path.
func (v *Validator) Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Reason: ReasonEmpty, Name: name}
	}

	if !ValidChars(name) {
		return &ValidationError{Reason: ReasonInvalidCharacters, Name: name}
	}

	exists, err := afero.Exists(v.fs, v.Destination(name))
	if err != nil {
		return fmt.Errorf("checking %s: %w", v.Destination(name), err)
	}
	if exists {
		return &ValidationError{Reason: ReasonDirectoryExists, Name: name}
	}

	return nil
}

// ValidChars reports whether every rune of name is in [A-Za-z0-9_-].
func ValidChars(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
