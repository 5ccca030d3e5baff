package pipeline

import "testing"

func TestCheckVersion(t *testing.T) {
	cases := []struct {
		version    string
		constraint string
		ok         bool
	}{
		{"3.11.4", ">= 3.8", true},
		{"3.7.0", ">= 3.8", false},
		{"3.8.0", ">= 3.8, < 4", true},
		{"2.7.18", ">= 3.8", false},
		{"3.12.0", "~3.12", true},
	}

	for _, c := range cases {
		err := CheckVersion(c.version, c.constraint)
		if c.ok && err != nil {
			t.Errorf("CheckVersion(%q, %q): %v", c.version, c.constraint, err)
		}
		if !c.ok && err == nil {
			t.Errorf("CheckVersion(%q, %q): want error", c.version, c.constraint)
		}
	}
}

func TestCheckVersionRejectsBadInput(t *testing.T) {
	if err := CheckVersion("3.11.4", "not-a-constraint"); err == nil {
		t.Error("want error for invalid constraint")
	}
	if err := CheckVersion("snake", ">= 3.8"); err == nil {
		t.Error("want error for invalid version")
	}
}

func TestVersionRegexp(t *testing.T) {
	cases := []struct {
		out  string
		want string
	}{
		{"Python 3.11.4", "3.11.4"},
		{"Python 3.13", "3.13"},
		{"PyPy 7.3.12 (Python 3.9.17)", "7.3.12"},
	}

	for _, c := range cases {
		m := versionRe.FindStringSubmatch(c.out)
		if m == nil {
			t.Errorf("no match in %q", c.out)
			continue
		}
		if m[0] != c.want {
			t.Errorf("match in %q = %q, want %q", c.out, m[0], c.want)
		}
	}
}
