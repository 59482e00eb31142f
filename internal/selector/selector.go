// Package selector asks the operator to pick a template when none was given
// on the command line. It reads one line at a time from any io.Reader so the
// same loop serves a terminal and a scripted test.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

var (
	// ErrCancelled means no template was chosen: the catalog was empty, the
	// input ended, or the attempt limit was reached.
	ErrCancelled = errors.New("template selection cancelled")

	// ErrAttemptsExhausted is wrapped together with ErrCancelled when the
	// configured maximum number of invalid answers was reached.
	ErrAttemptsExhausted = errors.New("too many invalid choices")
)

type state int

const (
	statePrompting state = iota
	stateMatched
	stateCancelled
)

// Selector prompts for a template name on a line-oriented stream.
type Selector struct {
	reader      *bufio.Reader
	out         io.Writer
	maxAttempts int
}

// Option configures a Selector.
type Option func(*Selector)

// WithMaxAttempts bounds the number of invalid answers before giving up.
// Zero, the default, retries forever.
func WithMaxAttempts(n int) Option {
	return func(s *Selector) {
		s.maxAttempts = n
	}
}

// New creates a selector reading answers from r and writing prompts to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Selector {
	s := &Selector{
		reader: bufio.NewReader(r),
		out:    w,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the name of the chosen template. An empty list cancels
// immediately and a single template is chosen without reading any input.
func (s *Selector) Select(templates []catalog.Template) (string, error) {
	switch len(templates) {
	case 0:
		return "", ErrCancelled
	case 1:
		return templates[0].Name, nil
	}

	fold := cases.Fold()
	byKey := make(map[string]string, len(templates))
	names := make([]string, len(templates))
	for i, t := range templates {
		byKey[fold.String(t.Name)] = t.Name
		names[i] = t.Name
	}

	PrintTemplates(s.out, templates)

	var (
		st       = statePrompting
		chosen   string
		attempts int
		cause    error
	)
	for st == statePrompting {
		fmt.Fprintf(s.out, "Choose a template (%s): ", strings.Join(names, ", "))

		line, err := s.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading selection: %w", err)
		}
		eof := err != nil

		answer := strings.TrimSpace(line)
		if answer == "" && eof {
			st = stateCancelled
			continue
		}

		if name, ok := byKey[fold.String(answer)]; ok {
			chosen = name
			st = stateMatched
			continue
		}

		attempts++
		fmt.Fprintf(s.out, "%s\n", output.StyleError.Render(fmt.Sprintf("Invalid choice %q, please try again.", answer)))

		switch {
		case eof:
			st = stateCancelled
		case s.maxAttempts > 0 && attempts >= s.maxAttempts:
			cause = ErrAttemptsExhausted
			st = stateCancelled
		}
	}

	if st == stateCancelled {
		if cause != nil {
			return "", fmt.Errorf("%w: %w", ErrCancelled, cause)
		}
		return "", ErrCancelled
	}

	fmt.Fprintln(s.out)
	return chosen, nil
}

// PrintTemplates writes the template listing: colored bullet, name, description.
func PrintTemplates(w io.Writer, templates []catalog.Template) {
	fmt.Fprintf(w, "\n%s\n", output.StyleHeading.Render("Available project templates:"))
	for _, t := range templates {
		line := fmt.Sprintf("  %s %s - %s", output.Bullet(t.Color), output.StyleNoun.Render(t.Name), t.Description)
		if t.Version != "" {
			line += " " + output.StyleDim.Render("v"+t.Version)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
}
