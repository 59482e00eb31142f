package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/config"
	"github.com/wyle-dev/wyle-gen/internal/output"
	"github.com/wyle-dev/wyle-gen/internal/selector"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available project templates",
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a template for JSON output.
type listEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Version     string `json:"version,omitempty"`
	Path        string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := config.TemplatesDir()
	if err != nil {
		return fmt.Errorf("resolving template directory: %w", err)
	}

	cat := catalog.New(afero.NewOsFs(), root, catalog.WithLogger(output.Logger))
	templates, err := cat.List()
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if listJSON {
		entries := make([]listEntry, 0, len(templates))
		for _, t := range templates {
			entries = append(entries, listEntry{
				Name:        t.Name,
				Description: t.Description,
				Color:       string(t.Color),
				Version:     t.Version,
				Path:        t.SourcePath,
			})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(templates) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No templates found in %s\n", root)
		return nil
	}

	selector.PrintTemplates(cmd.OutOrStdout(), templates)
	return nil
}
