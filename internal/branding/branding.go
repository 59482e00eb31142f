// Package branding provides compile-time identity values for the CLI.
//
// Values come from branding.yaml, embedded into the binary with //go:embed.
// Hard defaults cover a missing or partial file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	Author      string `yaml:"author"`
	License     string `yaml:"license"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "wyle-gen",
			DisplayName: "Wyle CLI",
			Description: "Modern front-end project scaffolding tool",
			HomeDir:     ".wyle",
			EnvPrefix:   "WYLE",
			Author:      "wyle",
			License:     "MIT",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "wyle-gen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Wyle CLI").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".wyle").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "WYLE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// Author returns the maintainer shown by the version command.
func Author() string { load(); return defaults.Author }

// License returns the SPDX license identifier (e.g., "MIT").
func License() string { load(); return defaults.License }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("templates_dir") → "WYLE_TEMPLATES_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
