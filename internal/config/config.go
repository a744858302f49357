package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/skelgen-labs/skelgen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// templatesDir holds cached git templates under the config directory.
	templatesDir = "templates"
)

// Recognized configuration keys.
const (
	KeyTemplate         = "template"
	KeyConcurrency      = "concurrency"
	KeyLogLevel         = "log_level"
	KeyGlobalManager    = "global_manager"
	KeyTemplateRepoBase = "template_repo_base"
	KeyTemplatesDir     = "templates_dir"
)

// Keys lists every recognized key in display order.
var Keys = []string{
	KeyTemplate,
	KeyConcurrency,
	KeyLogLevel,
	KeyGlobalManager,
	KeyTemplateRepoBase,
	KeyTemplatesDir,
}

// DefaultConcurrency bounds parallel file processing when unset.
const DefaultConcurrency = 8

// Dir returns the path to the config directory (~/.skelgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skelgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing file is not an error; a file that exists but cannot be parsed
// is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplate, branding.DefaultTemplate())
	viper.SetDefault(KeyConcurrency, DefaultConcurrency)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyGlobalManager, "npm")
	viper.SetDefault(KeyTemplateRepoBase, branding.TemplateRepoBase())
	viper.SetDefault(KeyTemplatesDir, filepath.Join(Dir(), templatesDir))

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is a recognized configuration key.
func IsKnown(key string) bool {
	return slices.Contains(Keys, key)
}

// Template returns the default template reference.
func Template() string { return viper.GetString(KeyTemplate) }

// Concurrency returns the file-processing parallelism, at least 1.
func Concurrency() int {
	if n := viper.GetInt(KeyConcurrency); n > 0 {
		return n
	}
	return DefaultConcurrency
}

// LogLevel returns the configured log level name.
func LogLevel() string { return viper.GetString(KeyLogLevel) }

// GlobalManager returns the package manager used for global tools.
func GlobalManager() string { return viper.GetString(KeyGlobalManager) }

// TemplateRepoBase returns the base URL for "owner/repo" references.
func TemplateRepoBase() string { return viper.GetString(KeyTemplateRepoBase) }

// TemplatesDir returns the directory caching cloned templates.
func TemplatesDir() string { return viper.GetString(KeyTemplatesDir) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
