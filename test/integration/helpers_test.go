//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/wyle-dev/wyle-gen/internal/output"
	"github.com/wyle-dev/wyle-gen/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	TemplateRoot string // the template/ directory shipped with the repo
	ProjectDir   string // working directory where projects are created
}

// setupTestEnv points the engine at the bundled templates and an empty
// working directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("locating test source")
	}
	root := filepath.Join(filepath.Dir(file), "..", "..", "template")
	assertDirExists(t, root)

	return &testEnv{
		TemplateRoot: filepath.Clean(root),
		ProjectDir:   t.TempDir(),
	}
}

// newEngine builds an engine over the real filesystem.
func newEngine(env *testEnv, sel scaffold.Selector) *scaffold.Engine {
	return scaffold.NewEngine(scaffold.Config{
		FS:           afero.NewOsFs(),
		Cwd:          env.ProjectDir,
		TemplateRoot: env.TemplateRoot,
		Logger:       output.Discard(),
		Selector:     sel,
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory to exist: %s", path)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q", path, substr)
	}
}
