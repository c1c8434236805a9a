// Package config provides configuration loading for Willie.
// It supports a layered configuration approach with priority:
// CLI flags > environment variables (WILLIE_*) > config file (./.willie.yaml, then ~/.willie.yaml).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the working and home directories.
const FileName = ".willie.yaml"

// Profile is a named bundle of rule overrides selected with --profile.
type Profile struct {
	Name          string   `mapstructure:"name" yaml:"name"`
	DisabledRules []string `mapstructure:"disabled_rules" yaml:"disabled_rules,omitempty"`
	MaxLineLength int      `mapstructure:"max_line_length" yaml:"max_line_length,omitempty"`
}

// Config holds all Willie configuration options.
type Config struct {
	OutputFormat      string        `mapstructure:"output_format" yaml:"output_format"`
	Concurrency       int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxLineLength     int           `mapstructure:"max_line_length" yaml:"max_line_length"`
	MaxIterations     int           `mapstructure:"max_iterations" yaml:"max_iterations"`
	ProvenanceComment bool          `mapstructure:"provenance_comment" yaml:"provenance_comment"`
	AllFiles          bool          `mapstructure:"all_files" yaml:"all_files"`
	IgnoreDirs        []string      `mapstructure:"ignore_dirs" yaml:"ignore_dirs"`
	IgnoreFiles       []string      `mapstructure:"ignore_files" yaml:"ignore_files"`
	DisabledRules     []string      `mapstructure:"disabled_rules" yaml:"disabled_rules"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	Profiles          []Profile     `mapstructure:"profiles" yaml:"profiles,omitempty"`
}

// Defaults returns a Config populated with default values.
func Defaults() Config {
	return Config{
		OutputFormat:      "table",
		Concurrency:       8,
		Timeout:           5 * time.Minute,
		MaxLineLength:     120,
		MaxIterations:     10,
		ProvenanceComment: true,
		IgnoreDirs:        []string{},
		IgnoreFiles:       []string{},
		DisabledRules:     []string{},
		LogLevel:          "warn",
	}
}

// Load reads configuration from ./.willie.yaml or ~/.willie.yaml and
// environment variables. It does NOT apply CLI flag overrides; call
// ApplyFlags for that.
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName(".willie")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("WILLIE")
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// ApplyFlags overrides config values with any CLI flags that were explicitly set.
func ApplyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.OutputFormat, _ = flags.GetString("output")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("max-line-length") {
		cfg.MaxLineLength, _ = flags.GetInt("max-line-length")
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	if flags.Changed("all-files") {
		cfg.AllFiles, _ = flags.GetBool("all-files")
	}
	if flags.Changed("no-provenance") {
		off, _ := flags.GetBool("no-provenance")
		cfg.ProvenanceComment = !off
	}
	if flags.Changed("disable") {
		extra, _ := flags.GetStringSlice("disable")
		cfg.DisabledRules = append(cfg.DisabledRules, extra...)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("verbose") {
		if verbose, _ := flags.GetBool("verbose"); verbose {
			cfg.LogLevel = "debug"
		}
	}
	if flags.Changed("profile") {
		name, _ := flags.GetString("profile")
		if err := cfg.UseProfile(name); err != nil {
			return err
		}
	}
	return nil
}

// GetProfile returns the profile with the given name, or nil if not found.
func (c *Config) GetProfile(name string) *Profile {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i]
		}
	}
	return nil
}

// UseProfile layers the named profile over the config.
func (c *Config) UseProfile(name string) error {
	p := c.GetProfile(name)
	if p == nil {
		return fmt.Errorf("profile %q not found", name)
	}
	c.DisabledRules = append(c.DisabledRules, p.DisabledRules...)
	if p.MaxLineLength > 0 {
		c.MaxLineLength = p.MaxLineLength
	}
	return nil
}

// ConfigFilePath returns the default config file path (~/.willie.yaml).
func ConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DisabledRuleIDs returns the disabled rule ids upper-cased with blanks removed.
func (c *Config) DisabledRuleIDs() []string {
	out := make([]string, 0, len(c.DisabledRules))
	for _, id := range c.DisabledRules {
		if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("max_line_length", d.MaxLineLength)
	v.SetDefault("max_iterations", d.MaxIterations)
	v.SetDefault("provenance_comment", d.ProvenanceComment)
	v.SetDefault("all_files", d.AllFiles)
	v.SetDefault("ignore_dirs", d.IgnoreDirs)
	v.SetDefault("ignore_files", d.IgnoreFiles)
	v.SetDefault("disabled_rules", d.DisabledRules)
	v.SetDefault("log_level", d.LogLevel)
}
