package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/wyle-dev/wyle-gen/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

// mainModules are the libraries listed by the version command, in display order.
var mainModules = []string{
	"github.com/spf13/cobra",
	"github.com/spf13/viper",
	"github.com/spf13/afero",
	"github.com/charmbracelet/log",
	"github.com/charmbracelet/lipgloss",
	"github.com/santhosh-tekuri/jsonschema/v6",
	"github.com/Masterminds/semver/v3",
	"go.yaml.in/yaml/v3",
	"golang.org/x/text",
}

// dependency is one linked module and its version.
type dependency struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"ver"},
	Short:   "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		version := displayVersion(buildVersion)

		if versionShort {
			fmt.Fprintln(out, version)
			return nil
		}

		var deps []dependency
		if info, ok := debug.ReadBuildInfo(); ok {
			deps = mainDependencies(info)
		}

		if versionJSON {
			info := map[string]any{
				"version":      version,
				"commit":       buildCommit,
				"date":         buildDate,
				"go":           runtime.Version(),
				"platform":     runtime.GOOS + "/" + runtime.GOARCH,
				"dependencies": deps,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s details\n", branding.DisplayName())
		fmt.Fprintf(out, "  version:     %s\n", version)
		fmt.Fprintf(out, "  commit:      %s\n", buildCommit)
		fmt.Fprintf(out, "  built:       %s\n", buildDate)
		fmt.Fprintf(out, "  author:      %s\n", branding.Author())
		fmt.Fprintf(out, "  description: %s\n", branding.Description())
		fmt.Fprintf(out, "  license:     %s\n", branding.License())
		fmt.Fprintf(out, "  go:          %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform:    %s %s\n", runtime.GOOS, runtime.GOARCH)
		if len(deps) > 0 {
			fmt.Fprintln(out, "  dependencies:")
			for _, d := range deps {
				fmt.Fprintf(out, "    %s %s\n", d.Path, d.Version)
			}
		}
		return nil
	},
}

// displayVersion normalizes a semver build version ("1.2" → "1.2.0") and
// passes anything else ("dev") through unchanged.
func displayVersion(v string) string {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// mainDependencies picks the main libraries out of the linked modules,
// reporting the replacement version when a module is replaced.
func mainDependencies(info *debug.BuildInfo) []dependency {
	linked := make(map[string]string, len(info.Deps))
	for _, m := range info.Deps {
		v := m.Version
		if m.Replace != nil {
			v = m.Replace.Version
		}
		linked[m.Path] = v
	}

	var deps []dependency
	for _, path := range mainModules {
		if v, ok := linked[path]; ok {
			deps = append(deps, dependency{Path: path, Version: v})
		}
	}
	return deps
}
