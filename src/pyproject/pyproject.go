// Package pyproject reads the parts of a PEP 621 pyproject.toml the
// install step needs: the project name and its declared extras.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the manifest filename probed at the checkout root.
const FileName = "pyproject.toml"

// Project describes the package under test.
type Project struct {
	Name           string   // [project] name
	RequiresPython string   // [project] requires-python constraint
	Extras         []string // sorted keys of [project.optional-dependencies]
}

// Load reads and parses pyproject.toml from dir.
func Load(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes pyproject.toml content.
func Parse(data []byte) (*Project, error) {
	var manifest struct {
		Project struct {
			Name                 string              `toml:"name"`
			RequiresPython       string              `toml:"requires-python"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	p := &Project{
		Name:           manifest.Project.Name,
		RequiresPython: manifest.Project.RequiresPython,
	}
	for extra := range manifest.Project.OptionalDependencies {
		p.Extras = append(p.Extras, extra)
	}
	sort.Strings(p.Extras)
	return p, nil
}

// HasExtra reports whether the project declares the named extra.
func (p *Project) HasExtra(name string) bool {
	for _, e := range p.Extras {
		if e == name {
			return true
		}
	}
	return false
}

// Requirement renders a pip requirement string for the given extras,
// e.g. ".[test]" for a local install or "t5x[test]" for a named one.
func Requirement(pkg string, extras []string) string {
	if len(extras) == 0 {
		return pkg
	}
	req := pkg + "["
	for i, e := range extras {
		if i > 0 {
			req += ","
		}
		req += e
	}
	return req + "]"
}
