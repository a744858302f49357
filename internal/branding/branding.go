// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	DefaultTemplate  string `yaml:"default_template"`
	TemplateRepoBase string `yaml:"template_repo_base"`
	DocsURL          string `yaml:"docs_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "skelgen",
			DisplayName:      "Skelgen",
			Description:      "Conditional project scaffolding from parameterized templates",
			HomeDir:          ".skelgen",
			EnvPrefix:        "SKELGEN",
			DefaultTemplate:  "webpack",
			TemplateRepoBase: "https://github.com",
			DocsURL:          "https://vuejs-templates.github.io/webpack",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "skelgen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".skelgen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SKELGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultTemplate returns the template reference used when none is given.
func DefaultTemplate() string { load(); return defaults.DefaultTemplate }

// TemplateRepoBase returns the base URL that "owner/repo" template
// references are resolved against.
func TemplateRepoBase() string { load(); return defaults.TemplateRepoBase }

// DocsURL returns the documentation link printed after generation.
func DocsURL() string { load(); return defaults.DocsURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("test") → "SKELGEN_TEST".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
