package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "package.schema.json"

//go:embed schema/package.schema.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// loadSchema compiles the embedded schema on first use.
var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
})

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one failed schema rule.
type ValidationIssue struct {
	Path    string // JSON pointer into the manifest, e.g. "/scripts/dev"; empty for the root
	Message string
	Keyword string // e.g. "pattern", "required"
}

// String formats the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Validate checks manifest bytes against the embedded schema. The error is
// reserved for unreadable JSON or a broken schema; rule violations are
// reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var ve *jsonschema.ValidationError
	switch err := schema.Validate(inst); {
	case err == nil:
		return &ValidationResult{Valid: true}, nil
	case errors.As(err, &ve):
		return &ValidationResult{Issues: leafIssues(ve)}, nil
	default:
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
}

// ValidateFile reads path and validates it.
func ValidateFile(fsys afero.Fs, path string) (*ValidationResult, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Validate(data)
}

// leafIssues returns one issue per distinct leaf of the error tree, in tree
// order. Structural keywords ($ref, allOf) are not reported on their own.
func leafIssues(root *jsonschema.ValidationError) []ValidationIssue {
	var (
		issues []ValidationIssue
		seen   = map[ValidationIssue]bool{}
		stack  = []*jsonschema.ValidationError{root}
	)
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n := len(ve.Causes); n > 0 {
			for i := n - 1; i >= 0; i-- {
				stack = append(stack, ve.Causes[i])
			}
			continue
		}
		if ve.ErrorKind == nil {
			continue
		}

		issue := ValidationIssue{Message: ve.ErrorKind.LocalizedString(printer)}
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			issue.Keyword = kw[len(kw)-1]
		}
		switch issue.Keyword {
		case "", "$ref", "allOf":
			continue
		}
		if len(ve.InstanceLocation) > 0 {
			issue.Path = "/" + strings.Join(ve.InstanceLocation, "/")
		}

		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}
	return issues
}
