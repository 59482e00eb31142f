package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/wyle-dev/wyle-gen/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys. Each can also be set through the environment with the
// branding prefix, e.g. WYLE_TEMPLATES_DIR.
const (
	KeyTemplatesDir = "templates_dir"
	KeyExcludeDir   = "exclude_dir"
	KeyVerbose      = "verbose"
)

// DefaultExcludeDir is the dependency-cache directory never copied out of a template.
const DefaultExcludeDir = "node_modules"

// templateDirName is the bundled template root shipped next to the binary.
const templateDirName = "template"

// Dir returns the path to the config directory (~/.wyle/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.wyle/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyExcludeDir, DefaultExcludeDir)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ExcludeDir returns the dependency-cache directory name skipped during copy.
func ExcludeDir() string {
	if v := viper.GetString(KeyExcludeDir); v != "" {
		return v
	}
	return DefaultExcludeDir
}

// Verbose reports whether debug logging was requested through config or env.
func Verbose() bool {
	return viper.GetBool(KeyVerbose)
}

// TemplatesDir returns the template root, checking (in order):
// 1. WYLE_TEMPLATES_DIR env var / config key "templates_dir"
// 2. a template/ directory next to the executable or one level above it
// 3. ./template relative to the working directory
func TemplatesDir() (string, error) {
	if v := viper.GetString(KeyTemplatesDir); v != "" {
		return filepath.Abs(v)
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir := filepath.Dir(exe)
		for _, candidate := range []string{
			filepath.Join(exeDir, templateDirName),
			filepath.Join(exeDir, "..", templateDirName),
		} {
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return filepath.Clean(candidate), nil
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(cwd, templateDirName), nil
}
