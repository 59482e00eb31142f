package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestTemplatesDirFromEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Setenv("WYLE_TEMPLATES_DIR", dir)

	Load()

	got, err := TemplatesDir()
	if err != nil {
		t.Fatalf("TemplatesDir() error: %v", err)
	}
	if got != dir {
		t.Errorf("TemplatesDir() = %q, want %q", got, dir)
	}
}

func TestTemplatesDirFallsBackToWorkingDir(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WYLE_TEMPLATES_DIR", "")

	cwd := t.TempDir()
	t.Chdir(cwd)

	Load()

	got, err := TemplatesDir()
	if err != nil {
		t.Fatalf("TemplatesDir() error: %v", err)
	}
	if filepath.Base(got) != "template" {
		t.Errorf("TemplatesDir() = %q, want a path ending in template", got)
	}
}

func TestExcludeDirDefault(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())

	Load()

	if got := ExcludeDir(); got != DefaultExcludeDir {
		t.Errorf("ExcludeDir() = %q, want %q", got, DefaultExcludeDir)
	}
}

func TestSetPersistsValue(t *testing.T) {
	resetViper(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	Load()
	if err := Set(KeyExcludeDir, "vendor"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".wyle", "config.yaml"))
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if got := string(data); got == "" {
		t.Fatal("config file is empty")
	}

	viper.Reset()
	Load()
	if got := ExcludeDir(); got != "vendor" {
		t.Errorf("ExcludeDir() after reload = %q, want %q", got, "vendor")
	}
}
