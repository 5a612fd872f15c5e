package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInitThenLoad(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "geometry"); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir, "geometry"); err == nil {
		t.Fatal("second Init should refuse to overwrite")
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package != "geometry" {
		t.Errorf("package = %q", m.Package)
	}
	if !reflect.DeepEqual(m.Sources, DefaultSources) {
		t.Errorf("sources = %v", m.Sources)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, TOMLFile, `
package = "shapes"
sources = ["src/*.envy"]
output = "shapes.ll"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := &Manifest{Package: "shapes", Sources: []string{"src/*.envy"}, Output: "shapes.ll"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("got %+v, want %+v", m, want)
	}
}

func TestYAMLWins(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, YAMLFile, "Package: from-yaml\n")
	write(t, dir, TOMLFile, `package = "from-toml"`)

	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package != "from-yaml" {
		t.Errorf("package = %q", m.Package)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		t.Errorf("empty dir: got %v", err)
	}

	dir := t.TempDir()
	write(t, dir, TOMLFile, `output = "x.ll"`)
	if _, err := Load(dir); err == nil {
		t.Error("expected an error for a manifest without package")
	}

	dir = t.TempDir()
	write(t, dir, YAMLFile, "Package: [unclosed\n")
	if _, err := Load(dir); err == nil {
		t.Error("expected a YAML syntax error")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.envy", "a.envy", "notes.txt"} {
		write(t, dir, name, "")
	}

	m := &Manifest{Package: "p", Sources: []string{"*.envy", "a.*"}}
	files, err := m.Files(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.envy"), filepath.Join(dir, "b.envy")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("got %v, want %v", files, want)
	}
}
