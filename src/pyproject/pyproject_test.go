package pyproject

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `
[project]
name = "widgets"
requires-python = ">=3.8"

[project.optional-dependencies]
test = ["pytest", "pytest-cov"]
docs = ["sphinx"]
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Name != "widgets" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.RequiresPython != ">=3.8" {
		t.Errorf("RequiresPython = %q", p.RequiresPython)
	}
	if len(p.Extras) != 2 || p.Extras[0] != "docs" || p.Extras[1] != "test" {
		t.Errorf("Extras = %v, want sorted [docs test]", p.Extras)
	}
	if !p.HasExtra("test") || p.HasExtra("dev") {
		t.Error("HasExtra mismatch")
	}
}

func TestParseMissingProjectTable(t *testing.T) {
	p, err := Parse([]byte(`[build-system]` + "\n" + `requires = ["setuptools"]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "" || len(p.Extras) != 0 {
		t.Errorf("got %+v, want empty project", p)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "widgets" {
		t.Errorf("Name = %q", p.Name)
	}

	if _, err := Load(t.TempDir()); err == nil {
		t.Error("want error for missing manifest")
	}
}

func TestRequirement(t *testing.T) {
	cases := []struct {
		pkg    string
		extras []string
		want   string
	}{
		{".", nil, "."},
		{".", []string{"test"}, ".[test]"},
		{"widgets", []string{"test", "docs"}, "widgets[test,docs]"},
	}

	for _, c := range cases {
		if got := Requirement(c.pkg, c.extras); got != c.want {
			t.Errorf("Requirement(%q, %v) = %q, want %q", c.pkg, c.extras, got, c.want)
		}
	}
}
