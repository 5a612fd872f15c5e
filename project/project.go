// Package project reads and writes the Envy Module Information manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

const (
	YAMLFile = "envy.yaml"
	TOMLFile = "envy.toml"
)

var DefaultSources = []string{"*.envy"}

type Manifest struct {
	Package string   `yaml:"Package" toml:"package"`
	Sources []string `yaml:"Sources,omitempty" toml:"sources"`
	Output  string   `yaml:"Output,omitempty" toml:"output"`
}

// ErrNoManifest is returned by Load when dir holds neither manifest file.
var ErrNoManifest = errors.New("no envy.yaml or envy.toml found")

// Load reads envy.yaml from dir, falling back to envy.toml.
func Load(dir string) (*Manifest, error) {
	m, err := loadYAML(filepath.Join(dir, YAMLFile))
	if errors.Is(err, os.ErrNotExist) {
		m, err = loadTOML(filepath.Join(dir, TOMLFile))
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoManifest)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(m.Package) == "" {
		return nil, fmt.Errorf("%s: missing package name", dir)
	}
	if len(m.Sources) == 0 {
		m.Sources = append([]string(nil), DefaultSources...)
	}
	return m, nil
}

func loadYAML(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error reading Envy Module Information: %s: %w", path, err)
	}
	return &m, nil
}

func loadTOML(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing package", path)
	}
	return &m, nil
}

// Init writes a fresh envy.yaml for name into dir. It refuses to overwrite
// an existing manifest.
func Init(dir, name string) error {
	path := filepath.Join(dir, YAMLFile)
	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("error creating Envy Module Information: %w", err)
	}
	defer fi.Close()

	out, err := yaml.Marshal(Manifest{Package: name, Sources: DefaultSources})
	if err != nil {
		return fmt.Errorf("error creating Envy Module Information: %w", err)
	}
	if _, err := fi.Write(out); err != nil {
		return fmt.Errorf("error creating Envy Module Information: %w", err)
	}
	return nil
}

// Files expands the source globs relative to dir. The result is sorted and
// holds every file once.
func (m *Manifest) Files(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range m.Sources {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
