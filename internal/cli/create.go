package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/config"
	"github.com/wyle-dev/wyle-gen/internal/output"
	"github.com/wyle-dev/wyle-gen/internal/scaffold"
	"github.com/wyle-dev/wyle-gen/internal/selector"
)

var (
	createTemplate    string
	createMaxAttempts int
)

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "", "Template to use (prompted when omitted)")
	createCmd.Flags().IntVar(&createMaxAttempts, "max-attempts", 0, "Give up after this many invalid template choices (0 = keep asking)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:     "create <project-name>",
	Aliases: []string{"c"},
	Short:   "Create a new project from a template",
	Long: `Create a new project directory from one of the bundled templates.

The project name may contain letters, digits, hyphens and underscores, and
must not collide with an existing file or directory. Without --template you
are asked to pick one; with a single template available it is used directly.

Examples:
  wyle-gen create my-app --template react-ts
  wyle-gen c my-app`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	engine, err := newEngine(cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s\n", output.StyleHeading.Render("Creating project:"), output.StyleNoun.Render(name))

	result, err := engine.Run(name, createTemplate)
	if err != nil {
		if errors.Is(err, scaffold.ErrTemplateNotFound) {
			printAvailable(cmd.ErrOrStderr(), engine.Catalog)
		}
		return err
	}

	printResult(out, result)
	return nil
}

// newEngine wires the scaffold engine to the real filesystem and config.
func newEngine(in io.Reader, out io.Writer) (*scaffold.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	root, err := config.TemplatesDir()
	if err != nil {
		return nil, fmt.Errorf("resolving template directory: %w", err)
	}
	output.Debug("using templates", "root", root)

	return scaffold.NewEngine(scaffold.Config{
		FS:           afero.NewOsFs(),
		Cwd:          cwd,
		TemplateRoot: root,
		ExcludeDir:   config.ExcludeDir(),
		Logger:       output.Logger,
		Selector:     selector.New(in, out, selector.WithMaxAttempts(createMaxAttempts)),
	}), nil
}

func printAvailable(w io.Writer, cat *catalog.Catalog) {
	templates, err := cat.List()
	if err != nil || len(templates) == 0 {
		fmt.Fprintf(w, "No templates found in %s\n", cat.Root())
		return
	}
	selector.PrintTemplates(w, templates)
}

func printResult(w io.Writer, result *scaffold.Result) {
	fmt.Fprintf(w, "%s %s\n", output.StyleDim.Render("Using template:"), result.TemplateName)
	for _, warning := range result.Warnings {
		output.Warn(warning)
	}
	fmt.Fprintf(w, "%s\n", output.StyleSuccess.Render(fmt.Sprintf("✅ Project created at %s (%d files)", result.Destination, len(result.Files))))

	fmt.Fprintf(w, "\n%s\n", output.StyleHeading.Render("Next steps:"))
	fmt.Fprintf(w, "  cd %s\n", result.ProjectName)
	fmt.Fprintln(w, "  npm install")
	fmt.Fprintln(w, "  npm run dev")
}
