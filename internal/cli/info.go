package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyle-dev/wyle-gen/internal/branding"
	"github.com/wyle-dev/wyle-gen/internal/config"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show CLI information and active settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root, err := config.TemplatesDir()
		if err != nil {
			return fmt.Errorf("resolving template directory: %w", err)
		}

		fmt.Fprintln(out, output.StyleHeading.Render("ℹ️  "+branding.DisplayName()))
		fmt.Fprintln(out, output.StyleDim.Render("version:     v"+displayVersion(buildVersion)))
		fmt.Fprintln(out, output.StyleDim.Render("author:      "+branding.Author()))
		fmt.Fprintln(out, output.StyleDim.Render("description: "+branding.Description()))
		fmt.Fprintln(out, output.StyleDim.Render("templates:   "+root))
		fmt.Fprintln(out, output.StyleDim.Render("excluded:    "+config.ExcludeDir()))
		fmt.Fprintln(out, output.StyleDim.Render("config:      "+config.FilePath()))
		return nil
	},
}
