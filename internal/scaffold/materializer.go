package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/config"
	"github.com/wyle-dev/wyle-gen/internal/manifest"
	"github.com/wyle-dev/wyle-gen/internal/naming"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

// Request describes one project to create.
type Request struct {
	ProjectName  string
	TemplateName string
	Destination  string
}

// Result holds the outcome of a materialization.
type Result struct {
	ProjectName  string
	TemplateName string
	Destination  string
	Files        []string // relative paths, in copy order
	Skipped      []string // excluded dependency-cache directories
	Warnings     []string
}

// Materializer copies templates into new project directories.
type Materializer struct {
	fs         afero.Fs
	catalog    *catalog.Catalog
	validator  *naming.Validator
	excludeDir string
	logger     *log.Logger
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithExcludeDir overrides the dependency-cache directory name (default node_modules).
func WithExcludeDir(name string) Option {
	return func(m *Materializer) {
		if name != "" {
			m.excludeDir = name
		}
	}
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(l *log.Logger) Option {
	return func(m *Materializer) {
		m.logger = l
	}
}

// NewMaterializer creates a materializer writing projects under cwd.
func NewMaterializer(fsys afero.Fs, cat *catalog.Catalog, cwd string, opts ...Option) *Materializer {
	m := &Materializer{
		fs:         fsys,
		catalog:    cat,
		validator:  naming.New(fsys, cwd),
		excludeDir: config.DefaultExcludeDir,
		logger:     output.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create copies templateName into a new directory named projectName and
// patches its manifest.
//
// Name and template problems are reported before anything is written. A copy
// failure leaves whatever was already written in place. Manifest problems
// after a successful copy are returned as warnings, not errors.
func (m *Materializer) Create(projectName, templateName string) (*Result, error) {
	if err := m.validator.Validate(projectName); err != nil {
		return nil, err
	}

	tpl, err := m.catalog.Get(templateName)
	if err != nil {
		if errors.Is(err, catalog.ErrTemplateNotFound) {
			return nil, templateNotFound(templateName, err)
		}
		return nil, fmt.Errorf("resolving template %q: %w", templateName, err)
	}

	req := Request{
		ProjectName:  projectName,
		TemplateName: tpl.Name,
		Destination:  m.validator.Destination(projectName),
	}
	return m.materialize(req, tpl.SourcePath)
}

func (m *Materializer) materialize(req Request, sourcePath string) (*Result, error) {
	result := &Result{
		ProjectName:  req.ProjectName,
		TemplateName: req.TemplateName,
		Destination:  req.Destination,
	}

	m.logger.Debug("copying template", "template", req.TemplateName, "from", sourcePath, "to", req.Destination)
	if err := m.copyTree(sourcePath, req.Destination, "", result); err != nil {
		return nil, err
	}

	result.Warnings = append(result.Warnings, m.rewriteManifest(req.Destination, req.ProjectName)...)
	return result, nil
}

// rewriteManifest patches name and description of the project's manifest.
// A missing manifest is not an error. Every problem is returned as a warning.
func (m *Materializer) rewriteManifest(dest, projectName string) []string {
	path := filepath.Join(dest, manifest.FileName)
	info, err := m.fs.Stat(path)
	if err != nil {
		return nil
	}

	pkg, err := manifest.ReadFile(m.fs, path)
	if err != nil {
		return []string{fmt.Sprintf("Could not update %s: %v", manifest.FileName, err)}
	}

	pkg.Patch(projectName)
	if err := pkg.WriteFile(m.fs, path, info.Mode().Perm()); err != nil {
		return []string{fmt.Sprintf("Could not update %s: %v", manifest.FileName, err)}
	}

	var warnings []string
	valResult, err := manifest.ValidateFile(m.fs, path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Could not validate %s: %v", manifest.FileName, err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			warnings = append(warnings, manifest.FileName+" "+issue.String())
		}
	}
	return warnings
}
