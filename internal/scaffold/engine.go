package scaffold

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/naming"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

// Selector picks a template name from the catalog when none was given.
type Selector interface {
	Select(templates []catalog.Template) (string, error)
}

// Config wires an Engine.
type Config struct {
	FS           afero.Fs
	Cwd          string // projects are created under this directory
	TemplateRoot string
	ExcludeDir   string // dependency-cache directory name; empty means node_modules
	Logger       *log.Logger
	Selector     Selector
}

// Engine runs the create flow: validate the name, pick a template if none
// was given, confirm it exists, then materialize.
type Engine struct {
	Catalog      *catalog.Catalog
	Validator    *naming.Validator
	Materializer *Materializer
	Selector     Selector
}

// NewEngine builds an Engine and its collaborators from cfg.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = output.Logger
	}
	cat := catalog.New(cfg.FS, cfg.TemplateRoot, catalog.WithLogger(logger))
	return &Engine{
		Catalog:   cat,
		Validator: naming.New(cfg.FS, cfg.Cwd),
		Materializer: NewMaterializer(cfg.FS, cat, cfg.Cwd,
			WithExcludeDir(cfg.ExcludeDir),
			WithLogger(logger),
		),
		Selector: cfg.Selector,
	}
}

// Run creates projectName from templateName. An empty templateName asks the
// Selector. Every error before materialization leaves the filesystem untouched.
func (e *Engine) Run(projectName, templateName string) (*Result, error) {
	if err := e.Validator.Validate(projectName); err != nil {
		return nil, err
	}

	if templateName == "" {
		templates, err := e.Catalog.List()
		if err != nil {
			return nil, err
		}
		if e.Selector == nil {
			return nil, templateNotFound(templateName, nil)
		}
		templateName, err = e.Selector.Select(templates)
		if err != nil {
			return nil, err
		}
	}

	if !e.Catalog.Exists(templateName) {
		return nil, templateNotFound(templateName, nil)
	}

	return e.Materializer.Create(projectName, templateName)
}
