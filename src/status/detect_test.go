package status

import "testing"

func TestDetectProvider(t *testing.T) {
	cases := []struct {
		url  string
		want Provider
	}{
		{"git@github.com:octo/widgets.git", GitHub},
		{"https://github.com/octo/widgets", GitHub},
		{"https://gitlab.com/group/project.git", GitLab},
		{"git@gitlab.internal.example.com:group/project.git", GitLab},
		{"https://codeberg.org/octo/widgets.git", Gitea},
		{"git@forgejo.example.com:octo/widgets.git", Gitea},
		{"https://git.example.com/octo/widgets.git", Unknown},
	}

	for _, c := range cases {
		if got := DetectProvider(c.url); got != c.want {
			t.Errorf("DetectProvider(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestBaseURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"git@github.com:octo/widgets.git", "https://github.com"},
		{"https://gitlab.example.com/group/project.git", "https://gitlab.example.com"},
		{"http://gitea.local/octo/widgets", "http://gitea.local"},
		{"https://github.com", "https://github.com"},
	}

	for _, c := range cases {
		if got := BaseURL(c.url); got != c.want {
			t.Errorf("BaseURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestNewReporterUnknownProvider(t *testing.T) {
	if _, ok := NewReporter(Unknown, "", "octo/widgets", "tok"); ok {
		t.Error("want no reporter for unknown provider")
	}
	if r, ok := NewReporter(GitHub, "", "octo/widgets", "tok"); !ok || r.Provider() != GitHub {
		t.Error("want github reporter")
	}
}
