package config

// PipelineConfig defines the linear step sequence: checkout, setup,
// install, test. Steps with an empty config section still run with
// defaults; set skip: true on a section to leave it out.
type PipelineConfig struct {
	// Workdir is where the checkout lands and later steps execute.
	// Default: current directory (no clone unless checkout.url is set).
	Workdir string `yaml:"workdir,omitempty"`

	Checkout CheckoutConfig `yaml:"checkout,omitempty"`
	Setup    SetupConfig    `yaml:"setup,omitempty"`
	Install  InstallConfig  `yaml:"install,omitempty"`
	Test     TestConfig     `yaml:"test,omitempty"`
}

// CheckoutConfig configures the source checkout step.
type CheckoutConfig struct {
	Skip bool `yaml:"skip,omitempty"`

	// URL is the clone URL. Empty means the workdir is already a checkout
	// and only the SHA (if any) is checked out in place.
	URL string `yaml:"url,omitempty"`

	// SHA pins the commit to check out. Default: resolved from the CI
	// environment (GITHUB_SHA / CI_COMMIT_SHA), falling back to HEAD.
	SHA string `yaml:"sha,omitempty"`

	// Depth limits clone history. 0 means full history.
	Depth int `yaml:"depth,omitempty"`
}

// SetupConfig configures the environment setup step.
type SetupConfig struct {
	Skip bool `yaml:"skip,omitempty"`

	// Interpreter is the language runtime binary to probe.
	Interpreter string `yaml:"interpreter,omitempty"`

	// Requires is a semver constraint the interpreter version must
	// satisfy, e.g. ">= 3.8".
	Requires string `yaml:"requires,omitempty"`
}

// InstallConfig configures the dependency install step.
type InstallConfig struct {
	Skip bool `yaml:"skip,omitempty"`

	// Package is the pip requirement to install. Default: "." (the
	// checked-out project itself, name discovered from pyproject.toml).
	Package string `yaml:"package,omitempty"`

	// Extras are the optional-dependency groups to include, producing
	// pip install ".[test]". Default: ["test"] when pyproject.toml
	// declares a test extra.
	Extras []string `yaml:"extras,omitempty"`

	// IndexURL overrides the primary package index.
	IndexURL string `yaml:"index_url,omitempty"`

	// ExtraIndexURLs are additional PEP 503 indexes passed as
	// --extra-index-url.
	ExtraIndexURLs []string `yaml:"extra_index_urls,omitempty"`

	// FindLinks are HTML links pages (e.g. a hosted wheel listing)
	// passed as --find-links.
	FindLinks []string `yaml:"find_links,omitempty"`

	// Upgrade passes --upgrade to pip.
	Upgrade bool `yaml:"upgrade,omitempty"`
}

// TestConfig configures the test execution step.
type TestConfig struct {
	Skip bool `yaml:"skip,omitempty"`

	// Command is the test runner binary. Default: "pytest".
	Command string `yaml:"command,omitempty"`

	// Args are passed verbatim after the command.
	Args []string `yaml:"args,omitempty"`
}

// DefaultPipelineConfig returns pipeline defaults matching a Python
// package under test: python3 interpreter, pip install of the project
// with its test extras, pytest.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Setup: SetupConfig{
			Interpreter: "python3",
		},
		Install: InstallConfig{
			Package: ".",
		},
		Test: TestConfig{
			Command: "pytest",
		},
	}
}
