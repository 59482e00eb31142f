package scaffold

import (
	"errors"
	"fmt"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
)

// Kind classifies a materialization failure.
type Kind string

const (
	KindTemplateNotFound Kind = "template_not_found"
	KindCopyIO           Kind = "copy_io"
)

var (
	// ErrTemplateNotFound matches failures where the template was missing
	// from the catalog at materialization time.
	ErrTemplateNotFound = catalog.ErrTemplateNotFound

	// ErrCopyIO matches failures while copying files to the destination.
	ErrCopyIO = errors.New("copying template failed")
)

// Error is the structured error returned by Create and Engine.Run for
// failures after validation. Err holds the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCopyIO) match any copy failure.
func (e *Error) Is(target error) bool {
	return e.Kind == KindCopyIO && target == ErrCopyIO
}

func templateNotFound(name string, cause error) *Error {
	if cause == nil {
		cause = fmt.Errorf("%w: %q", catalog.ErrTemplateNotFound, name)
	}
	return &Error{
		Kind:    KindTemplateNotFound,
		Message: fmt.Sprintf("template '%s' does not exist", name),
		Err:     cause,
	}
}

func copyFailed(path string, cause error) *Error {
	return &Error{
		Kind:    KindCopyIO,
		Message: fmt.Sprintf("copying %s", path),
		Err:     cause,
	}
}
