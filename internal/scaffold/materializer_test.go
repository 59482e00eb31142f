package scaffold

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/wyle-dev/wyle-gen/internal/catalog"
	"github.com/wyle-dev/wyle-gen/internal/manifest"
	"github.com/wyle-dev/wyle-gen/internal/naming"
	"github.com/wyle-dev/wyle-gen/internal/output"
)

const (
	templateRoot = "/tool/template"
	workDir      = "/work"
)

func newMaterializer(fsys afero.Fs, opts ...Option) *Materializer {
	cat := catalog.New(fsys, templateRoot, catalog.WithLogger(output.Discard()))
	opts = append([]Option{WithLogger(output.Discard())}, opts...)
	return NewMaterializer(fsys, cat, workDir, opts...)
}

func TestCreateCopiesTreeAndSkipsCache(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/package.json", `{"name":"vue-tpl","description":"x","version":"1.0"}`)
	writeFile(t, fsys, templateRoot+"/vue/src/main.js", "console.log('hi')\n")
	writeFile(t, fsys, templateRoot+"/vue/src/components/App.vue", "<template></template>\n")
	writeFile(t, fsys, templateRoot+"/vue/node_modules/vite/index.js", "module.exports = {}\n")
	writeFile(t, fsys, templateRoot+"/vue/src/node_modules/nested/x.js", "nested cache\n")
	writeFile(t, fsys, templateRoot+"/vue/.gitignore", "node_modules\n")

	result, err := newMaterializer(fsys).Create("demo-app", "vue")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if result.Destination != filepath.Join(workDir, "demo-app") {
		t.Errorf("Destination = %q", result.Destination)
	}

	wantFiles := []string{
		".gitignore",
		"package.json",
		filepath.Join("src", "components", "App.vue"),
		filepath.Join("src", "main.js"),
	}
	got := append([]string(nil), result.Files...)
	sort.Strings(got)
	if strings.Join(got, ",") != strings.Join(wantFiles, ",") {
		t.Errorf("Files = %v, want %v", got, wantFiles)
	}

	if len(result.Skipped) != 2 {
		t.Errorf("Skipped = %v, want two node_modules directories", result.Skipped)
	}

	assertContent(t, fsys, "/work/demo-app/src/main.js", "console.log('hi')\n")
	assertContent(t, fsys, "/work/demo-app/.gitignore", "node_modules\n")
	assertMissing(t, fsys, "/work/demo-app/node_modules")
	assertMissing(t, fsys, "/work/demo-app/src/node_modules")

	pkg, err := manifest.ReadFile(fsys, "/work/demo-app/package.json")
	if err != nil {
		t.Fatalf("reading patched manifest: %v", err)
	}
	if pkg.Name != "demo-app" || pkg.Description != "demo-app project" {
		t.Errorf("manifest name=%q description=%q", pkg.Name, pkg.Description)
	}

	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCreateEmptyTemplateCreatesDestination(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(templateRoot+"/empty", 0755); err != nil {
		t.Fatal(err)
	}

	result, err := newMaterializer(fsys).Create("blank", "empty")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want none", result.Files)
	}

	info, err := fsys.Stat("/work/blank")
	if err != nil || !info.IsDir() {
		t.Fatalf("destination not created: %v", err)
	}
}

func TestCreateCustomExcludeDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/go/vendor/lib/lib.go", "package lib\n")
	writeFile(t, fsys, templateRoot+"/go/node_modules/keep.txt", "kept\n")

	if _, err := newMaterializer(fsys, WithExcludeDir("vendor")).Create("svc", "go"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	assertMissing(t, fsys, "/work/svc/vendor")
	assertContent(t, fsys, "/work/svc/node_modules/keep.txt", "kept\n")
}

func TestCreateExcludesOnlyDirectories(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/odd/node_modules", "a plain file named like the cache\n")

	if _, err := newMaterializer(fsys).Create("odd-app", "odd"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	assertContent(t, fsys, "/work/odd-app/node_modules", "a plain file named like the cache\n")
}

func TestCreateWithoutManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vanilla/index.html", "<html></html>\n")

	result, err := newMaterializer(fsys).Create("site", "vanilla")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	assertMissing(t, fsys, "/work/site/package.json")
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCreateBadManifestIsWarning(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/package.json", `{"name": broken`)
	writeFile(t, fsys, templateRoot+"/vue/main.js", "x\n")

	result, err := newMaterializer(fsys).Create("demo", "vue")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "package.json") {
		t.Errorf("Warnings = %v, want one package.json warning", result.Warnings)
	}
	// The unparseable manifest is still copied verbatim.
	assertContent(t, fsys, "/work/demo/package.json", `{"name": broken`)
	assertContent(t, fsys, "/work/demo/main.js", "x\n")
}

func TestCreatePatchesNonStringIdentity(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/package.json", `{"name":"vue-tpl","description":42,"version":"1.0"}`)

	result, err := newMaterializer(fsys).Create("demo-app", "vue")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	assertContent(t, fsys, "/work/demo-app/package.json",
		"{\n  \"name\": \"demo-app\",\n  \"description\": \"demo-app project\",\n  \"version\": \"1.0\"\n}\n")
}

func TestCreateSchemaIssuesAreWarnings(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/package.json", `{"name":"vue-tpl","description":"x","scripts":{"dev":1}}`)

	result, err := newMaterializer(fsys).Create("DemoApp", "vue")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "/scripts/dev") {
		t.Errorf("Warnings = %v, want one /scripts/dev schema warning", result.Warnings)
	}

	pkg, err := manifest.ReadFile(fsys, "/work/DemoApp/package.json")
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if pkg.Name != "DemoApp" {
		t.Errorf("Name = %q, want DemoApp", pkg.Name)
	}
}

func TestCreateTemplateNotFound(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/main.js", "")

	_, err := newMaterializer(fsys).Create("demo", "react")

	var se *Error
	if !errors.As(err, &se) || se.Kind != KindTemplateNotFound {
		t.Fatalf("Create() error = %v, want KindTemplateNotFound", err)
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Error("errors.Is(err, ErrTemplateNotFound) = false")
	}
	assertMissing(t, fsys, "/work/demo")
}

func TestCreateRejectsNameBeforeWriting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, templateRoot+"/vue/main.js", "")
	if err := fsys.MkdirAll("/work/taken", 0755); err != nil {
		t.Fatal(err)
	}

	m := newMaterializer(fsys)

	if _, err := m.Create("bad name!", "vue"); !errors.Is(err, naming.ErrInvalidCharacters) {
		t.Errorf("Create(bad name!) error = %v, want ErrInvalidCharacters", err)
	}
	if _, err := m.Create("taken", "vue"); !errors.Is(err, naming.ErrDirectoryExists) {
		t.Errorf("Create(taken) error = %v, want ErrDirectoryExists", err)
	}

	entries, err := afero.ReadDir(fsys, workDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("work dir has %d entries, want only the pre-existing one", len(entries))
	}
}

func TestCreateCopyFailureIsFatal(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, templateRoot+"/vue/a.txt", "a\n")
	writeFile(t, base, templateRoot+"/vue/b.txt", "b\n")

	fsys := &failingFs{Fs: base, failOn: "/work/demo/b.txt"}
	_, err := newMaterializer(fsys).Create("demo", "vue")

	var se *Error
	if !errors.As(err, &se) || se.Kind != KindCopyIO {
		t.Fatalf("Create() error = %v, want KindCopyIO", err)
	}
	if !errors.Is(err, ErrCopyIO) {
		t.Error("errors.Is(err, ErrCopyIO) = false")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("underlying error not preserved: %v", err)
	}

	// No rollback: the file copied before the failure stays.
	assertContent(t, base, "/work/demo/a.txt", "a\n")
}

func TestCreateReadOnlyDestination(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, templateRoot+"/vue/a.txt", "a\n")

	_, err := newMaterializer(afero.NewReadOnlyFs(base)).Create("demo", "vue")
	if !errors.Is(err, ErrCopyIO) {
		t.Fatalf("Create() error = %v, want ErrCopyIO", err)
	}
}

func TestCreatePreservesBytesOnDisk(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "template")
	cwd := filepath.Join(dir, "work")
	if err := os.MkdirAll(cwd, 0755); err != nil {
		t.Fatal(err)
	}

	binary := []byte{0x00, 0xff, 0x10, '\r', '\n', 0x7f}
	writeOSFile(t, filepath.Join(root, "app", "assets", "logo.bin"), binary, 0644)
	writeOSFile(t, filepath.Join(root, "app", "bin", "run.sh"), []byte("#!/bin/sh\necho hi\n"), 0755)
	writeOSFile(t, filepath.Join(root, "app", "node_modules", "dep", "index.js"), []byte("x"), 0644)

	fsys := afero.NewOsFs()
	cat := catalog.New(fsys, root, catalog.WithLogger(output.Discard()))
	m := NewMaterializer(fsys, cat, cwd, WithLogger(output.Discard()))

	if _, err := m.Create("demo", "app"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(cwd, "demo", "assets", "logo.bin"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, binary) {
		t.Errorf("binary content changed: %v", got)
	}

	info, err := os.Stat(filepath.Join(cwd, "demo", "bin", "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Errorf("executable bit lost: %v", info.Mode())
	}

	if _, err := os.Stat(filepath.Join(cwd, "demo", "node_modules")); !os.IsNotExist(err) {
		t.Errorf("node_modules should not be copied: %v", err)
	}
}

func TestCreateFromReadOnlyTemplate(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "template")
	cwd := filepath.Join(dir, "work")
	if err := os.MkdirAll(cwd, 0755); err != nil {
		t.Fatal(err)
	}

	tplDir := filepath.Join(root, "vue")
	writeOSFile(t, filepath.Join(tplDir, "package.json"), []byte(`{"name":"vue-tpl","description":"x"}`), 0444)
	writeOSFile(t, filepath.Join(tplDir, "src", "main.js"), []byte("app\n"), 0444)
	for _, d := range []string{filepath.Join(tplDir, "src"), tplDir} {
		if err := os.Chmod(d, 0555); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(func() {
		_ = os.Chmod(tplDir, 0755)
		_ = os.Chmod(filepath.Join(tplDir, "src"), 0755)
	})

	fsys := afero.NewOsFs()
	cat := catalog.New(fsys, root, catalog.WithLogger(output.Discard()))
	result, err := NewMaterializer(fsys, cat, cwd, WithLogger(output.Discard())).Create("demo", "vue")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	dest := filepath.Join(cwd, "demo")
	for _, d := range []string{dest, filepath.Join(dest, "src")} {
		info, err := os.Stat(d)
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != 0755 {
			t.Errorf("%s mode = %v, want 0755", d, got)
		}
	}
	for _, f := range []string{"package.json", filepath.Join("src", "main.js")} {
		info, err := os.Stat(filepath.Join(dest, f))
		if err != nil {
			t.Fatal(err)
		}
		if got := info.Mode().Perm(); got != 0644 {
			t.Errorf("%s mode = %v, want 0644", f, got)
		}
	}

	pkg, err := manifest.ReadFile(fsys, filepath.Join(dest, "package.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if pkg.Name != "demo" {
		t.Errorf("Name = %q, want demo", pkg.Name)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

// failingFs fails OpenFile for one destination path.
type failingFs struct {
	afero.Fs
	failOn string
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if name == f.failOn {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeOSFile(t *testing.T, path string, data []byte, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatal(err)
	}
}

func assertContent(t *testing.T, fsys afero.Fs, path, want string) {
	t.Helper()
	got, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(got) != want {
		t.Errorf("%s = %q, want %q", path, got, want)
	}
}

func assertMissing(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if exists, _ := afero.Exists(fsys, path); exists {
		t.Errorf("%s should not exist", path)
	}
}
