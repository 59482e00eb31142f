package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wyle-dev/wyle-gen/internal/branding"
	"github.com/wyle-dev/wyle-gen/internal/config"
	"github.com/wyle-dev/wyle-gen/internal/naming"
	"github.com/wyle-dev/wyle-gen/internal/output"
	"github.com/wyle-dev/wyle-gen/internal/scaffold"
	"github.com/wyle-dev/wyle-gen/internal/selector"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates new front-end projects from bundled templates.

Templates live in a template/ directory next to the binary; override the
location with the ` + branding.EnvVar(config.KeyTemplatesDir) + ` environment variable or
the "` + config.KeyTemplatesDir + `" config key.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		output.SetupLogging(verbose || config.Verbose())

		// Skip the welcome line for machine-readable or config commands.
		switch cmd.Name() {
		case "version", "config", "get", "set", "help", "completion":
			return
		}
		if jsonFlag, err := cmd.Flags().GetBool("json"); err == nil && jsonFlag {
			return
		}
		printWelcome(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

func printWelcome(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", output.StyleHeading.Render("🚀 "+branding.DisplayName()), output.StyleDim.Render("v"+buildVersion))
	fmt.Fprintf(w, "%s\n\n", output.StyleDim.Render(branding.Description()))
}

// reportError renders an error by category so every failure reads the same.
func reportError(err error) {
	var (
		ve *naming.ValidationError
		se *scaffold.Error
	)
	switch {
	case errors.As(err, &ve):
		output.Error(ve.Error(), "reason", ve.Reason)
	case errors.Is(err, selector.ErrCancelled):
		output.Warn("No template selected, nothing was created")
	case errors.As(err, &se):
		output.Error(se.Error(), "kind", se.Kind)
	default:
		output.Error(err.Error())
	}
}
