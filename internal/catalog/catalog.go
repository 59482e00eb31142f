package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/wyle-dev/wyle-gen/internal/manifest"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

// ErrTemplateNotFound is returned by Get when no template has the given name.
var ErrTemplateNotFound = errors.New("template not found")

// Template is a discovered scaffold unit.
type Template struct {
	Name        string       // subdirectory name, e.g. "react-ts"
	Description string       // from package.json, or "<name> project template"
	Color       output.Color // presentation hint derived from Name
	Version     string       // semver from package.json, empty if absent or invalid
	SourcePath  string       // absolute path to the template directory
}

// Catalog lists templates found under a root directory.
type Catalog struct {
	fs     afero.Fs
	root   string
	logger *log.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger that receives non-fatal manifest warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// New creates a catalog over root. A relative root is made absolute.
func New(fsys afero.Fs, root string, opts ...Option) *Catalog {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	c := &Catalog{
		fs:     fsys,
		root:   root,
		logger: output.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the absolute template root.
func (c *Catalog) Root() string {
	return c.root
}

// List scans the template root and returns one Template per subdirectory,
// in directory enumeration order. A missing root yields an empty list.
func (c *Catalog) List() ([]Template, error) {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading template root %s: %w", c.root, err)
	}

	var templates []Template
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		templates = append(templates, c.describe(entry.Name()))
	}
	return templates, nil
}

// Exists reports whether a template with exactly this name is present.
func (c *Catalog) Exists(name string) bool {
	_, err := c.Get(name)
	return err == nil
}

// Get returns the named template from a fresh scan.
func (c *Catalog) Get(name string) (Template, error) {
	templates, err := c.List()
	if err != nil {
		return Template{}, err
	}
	for _, t := range templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// describe builds a Template for the subdirectory name, enriching it with
// manifest metadata when the manifest can be read.
func (c *Catalog) describe(name string) Template {
	dir := filepath.Join(c.root, name)
	t := Template{
		Name:        name,
		Description: DefaultDescription(name),
		Color:       ColorFor(name),
		SourcePath:  dir,
	}

	manifestPath := filepath.Join(dir, manifest.FileName)
	if _, err := c.fs.Stat(manifestPath); err != nil {
		c.logger.Warn("template has no manifest, using default description",
			"template", name)
		return t
	}

	pkg, err := manifest.ReadFile(c.fs, manifestPath)
	if err != nil {
		c.logger.Warn("could not read template manifest, using default description",
			"template", name, "err", err)
		return t
	}

	if pkg.Description != "" {
		t.Description = pkg.Description
	}
	if v, ok := pkg.String("version"); ok {
		if sv, err := semver.NewVersion(v); err == nil {
			t.Version = sv.String()
		}
	}
	return t
}

// DefaultDescription is used when a template has no usable description.
func DefaultDescription(name string) string {
	return name + " project template"
}

// ColorFor picks a presentation color by substring of the template name.
// The checks run in order, so "react-ts" is blue rather than cyan.
func ColorFor(name string) output.Color {
	switch {
	case strings.Contains(name, "react"):
		return output.Blue
	case strings.Contains(name, "vue"):
		return output.Green
	case strings.Contains(name, "vanilla"):
		return output.Yellow
	case strings.Contains(name, "ts"):
		return output.Cyan
	default:
		return output.Blue
	}
}
