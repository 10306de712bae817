// Package config provides hierarchical configuration management for
// relnotes using koanf. Values are loaded with priority: environment
// variables > project config (.relnotes.yml) > user config
// (~/.config/relnotes/config.yml) > defaults. A legacy JSON project
// config is still accepted with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raveheart1/relnotes/internal/changelog"
)

// Configuration holds everything a generate run needs outside the
// repository itself.
type Configuration struct {
	// Mode is the classification mode: "sections" or "references".
	Mode string `koanf:"mode"`
	// Title is the heading of the rendered document.
	Title string `koanf:"title"`
	// Output is the path the markdown document is written to.
	Output string `koanf:"output"`
	// BaseURL prefixes ticket links in references mode.
	BaseURL string `koanf:"base_url"`
	// AllowBareTicket accepts labels glued directly to digits (US123).
	AllowBareTicket bool `koanf:"allow_bare_ticket"`
	// ScanRevertBody also checks commit bodies for the revert keyword.
	ScanRevertBody bool `koanf:"scan_revert_body"`
	// Timeout bounds the git log invocation, in seconds.
	Timeout int `koanf:"timeout"`
	// Sections is the rule list for sections mode. Empty means built-ins.
	Sections []changelog.SectionRule `koanf:"sections"`
	// References is the rule list for references mode. Empty means built-ins.
	References []changelog.SectionRule `koanf:"references"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path.
	ProjectConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr).
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings.
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadUserConfig loads the XDG user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project config. YAML is preferred; a
// legacy JSON file is honored with a migration warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	if fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		if customPath == "" && fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config at %s is ignored (using %s)\n", legacyPath, yamlPath)
		}
		return nil
	}

	if customPath == "" && fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Rewrite it as %s to silence this warning.\n", ProjectConfigPath())
		}
	}
	return nil
}

// Rules returns the rule list for the configured mode, falling back to
// the built-in defaults when the list is empty.
func (c *Configuration) Rules() []changelog.SectionRule {
	mode := changelog.Mode(c.Mode)
	if mode == changelog.ModeReferences {
		if len(c.References) > 0 {
			return c.References
		}
	} else if len(c.Sections) > 0 {
		return c.Sections
	}
	return changelog.DefaultRules(mode)
}

// GenerateOptions converts the configuration into core pipeline options.
func (c *Configuration) GenerateOptions() changelog.Options {
	return changelog.Options{
		Mode:            changelog.Mode(c.Mode),
		Rules:           c.Rules(),
		AllowBareTicket: c.AllowBareTicket,
		ScanRevertBody:  c.ScanRevertBody,
	}
}

// envTransform converts environment variable names to config keys.
// Example: RELNOTES_BASE_URL -> base_url
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
